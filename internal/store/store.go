// Package store implements SQLite persistence for users, posts, comments,
// likes, views, and images.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and provides typed accessors per entity.
type Store struct {
	db *sqlx.DB

	Users    *UserStore
	Posts    *PostStore
	Comments *CommentStore
	Likes    *LikeStore
	Views    *ViewStore
	Images   *ImageStore
}

// Open opens (or creates) the SQLite database at path and applies the
// schema. Pass ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// modernc's driver serializes writes anyway; a single connection avoids
	// SQLITE_BUSY under concurrent writers and keeps :memory: databases
	// from silently becoming one-per-connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	s.Users = &UserStore{db: db}
	s.Posts = &PostStore{db: db}
	s.Comments = &CommentStore{db: db}
	s.Likes = &LikeStore{db: db}
	s.Views = &ViewStore{db: db}
	s.Images = &ImageStore{db: db}

	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate applies the schema. All statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// tx runs fn inside a transaction, committing on nil error and rolling back
// otherwise.
func tx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	t, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(t); err != nil {
		if rbErr := t.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
