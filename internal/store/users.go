package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// UserStore manages tb_user rows.
type UserStore struct {
	db *sqlx.DB
}

// Create inserts a new user. The email must be unique among live users;
// a duplicate returns a ConflictError.
func (s *UserStore) Create(ctx context.Context, email, passwordHash, nickname string) (*User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tb_user (email, password, nickname) VALUES (?, ?, ?)`,
		email, passwordHash, nickname)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &errors.ConflictError{Resource: "user", Field: "email", Message: "email already registered"}
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns a live user by ID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		`SELECT * FROM tb_user WHERE id = ? AND del_yn = 'N'`, id)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// GetByEmail returns a live user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		`SELECT * FROM tb_user WHERE email = ? AND del_yn = 'N'`, email)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// UpdateNickname changes a user's nickname.
func (s *UserStore) UpdateNickname(ctx context.Context, id int64, nickname string) (*User, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tb_user SET nickname = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		 WHERE id = ? AND del_yn = 'N'`, nickname, id)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, &errors.NotFoundError{Resource: "user", ID: id}
	}
	return s.GetByID(ctx, id)
}

// UpdatePassword replaces a user's password hash.
func (s *UserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tb_user SET password = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		 WHERE id = ? AND del_yn = 'N'`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

// Delete soft-deletes a user.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tb_user SET del_yn = 'Y', updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		 WHERE id = ? AND del_yn = 'N'`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}
