package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ViewStore manages tb_view rows. Each (post, user) pair counts toward
// tb_post.view_count exactly once.
type ViewStore struct {
	db *sqlx.DB
}

// Record registers a view by the user and increments the post's view
// counter if this is the user's first view. Repeat views are a no-op.
func (s *ViewStore) Record(ctx context.Context, postID, userID int64) error {
	return tx(ctx, s.db, func(t *sqlx.Tx) error {
		res, err := t.ExecContext(ctx,
			`INSERT OR IGNORE INTO tb_view (post_id, user_id) VALUES (?, ?)`, postID, userID)
		if err != nil {
			return fmt.Errorf("inserting view: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading rows affected: %w", err)
		}
		if n == 0 {
			return nil
		}

		_, err = t.ExecContext(ctx,
			`UPDATE tb_post SET view_count = view_count + 1 WHERE id = ?`, postID)
		if err != nil {
			return fmt.Errorf("incrementing view count: %w", err)
		}
		return nil
	})
}
