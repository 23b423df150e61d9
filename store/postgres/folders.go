// store/postgres/folders.go
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/noteful/noteful-server/domain"
)

func (s *Store) Folders(ctx context.Context, userID string) ([]domain.Folder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM folders WHERE user_id = $1 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []domain.Folder{}
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (s *Store) FolderByID(ctx context.Context, userID, id string) (*domain.Folder, error) {
	var f domain.Folder
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM folders WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO folders (id, user_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		f.ID, f.UserID, f.Name,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Conflict("Folder `%s` already exists (name must be unique).", f.Name)
	}
	return err
}

func (s *Store) UpdateFolder(ctx context.Context, f *domain.Folder) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE folders SET name = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 RETURNING created_at, updated_at`,
		f.Name, f.ID, f.UserID,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if isUniqueViolation(err) {
		return domain.Conflict("Folder `%s` already exists (name must be unique).", f.Name)
	}
	return err
}

func (s *Store) DeleteFolder(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM folders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ClearFolderFromNotes(ctx context.Context, userID, folderID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notes SET folder_id = NULL, updated_at = now()
		 WHERE user_id = $1 AND folder_id = $2`,
		userID, folderID)
	return err
}
