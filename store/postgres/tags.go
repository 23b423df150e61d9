// store/postgres/tags.go
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/noteful/noteful-server/domain"
)

func (s *Store) Tags(ctx context.Context, userID string) ([]domain.Tag, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM tags WHERE user_id = $1 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) TagByID(ctx context.Context, userID, id string) (*domain.Tag, error) {
	var t domain.Tag
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM tags WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tags (id, user_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		t.ID, t.UserID, t.Name,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Conflict("Tag `%s` already exists (name must be unique).", t.Name)
	}
	return err
}

func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE tags SET name = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 RETURNING created_at, updated_at`,
		t.Name, t.ID, t.UserID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if isUniqueViolation(err) {
		return domain.Conflict("Tag `%s` already exists (name must be unique).", t.Name)
	}
	return err
}

func (s *Store) DeleteTag(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) RemoveTagFromNotes(ctx context.Context, userID, tagID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notes SET tags = array_remove(tags, $2), updated_at = now()
		 WHERE user_id = $1 AND $2 = ANY(tags)`,
		userID, tagID)
	return err
}

func (s *Store) CountTags(ctx context.Context, userID string, ids []string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM tags WHERE user_id = $1 AND id = ANY($2)`,
		userID, ids,
	).Scan(&n)
	return n, err
}
