// store/postgres/notes.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noteful/noteful-server/domain"
)

const noteColumns = `id, user_id, title, content, COALESCE(folder_id, ''), tags, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a search term matches
// literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.FolderID, &n.Tags, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

func (s *Store) Notes(ctx context.Context, userID string, q domain.NoteQuery) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1`
	args := []any{userID}

	if q.FolderID != "" {
		args = append(args, q.FolderID)
		query += fmt.Sprintf(" AND folder_id = $%d", len(args))
	}
	if q.TagID != "" {
		args = append(args, q.TagID)
		query += fmt.Sprintf(" AND $%d = ANY(tags)", len(args))
	}
	if q.SearchTerm != "" {
		args = append(args, escapeLike(q.SearchTerm))
		query += fmt.Sprintf(" AND title ILIKE '%%' || $%d || '%%'", len(args))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *Store) NoteByID(ctx context.Context, userID, id string) (*domain.Note, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	n, err := scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO notes (id, user_id, title, content, folder_id, tags)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		 RETURNING created_at, updated_at`,
		n.ID, n.UserID, n.Title, n.Content, n.FolderID, n.Tags,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

func (s *Store) UpdateNote(ctx context.Context, n *domain.Note) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE notes
		 SET title = $1, content = $2, folder_id = NULLIF($3, ''), tags = $4, updated_at = now()
		 WHERE id = $5 AND user_id = $6
		 RETURNING created_at, updated_at`,
		n.Title, n.Content, n.FolderID, n.Tags, n.ID, n.UserID,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (s *Store) DeleteNote(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
