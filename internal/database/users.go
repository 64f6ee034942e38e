package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT id, username, password_hash, role, created_at FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, role Role) (User, error) {
	var u User
	q := `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id, username, password_hash, role, created_at`
	err := s.db.GetContext(ctx, &u, q, username, passwordHash, string(role))
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return User{}, ErrUsernameTaken
	}
	return u, err
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.db.SelectContext(ctx, &users, `SELECT id, username, password_hash, role, created_at FROM users ORDER BY id`)
	return users, err
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
