// store/postgres/users.go
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/noteful/noteful-server/domain"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, full_name, username, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		u.ID, u.FullName, u.Username, u.PasswordHash,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Conflict("The username `%s` already exists.", u.Username)
	}
	return err
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, full_name, username, password_hash, created_at, updated_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.FullName, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
