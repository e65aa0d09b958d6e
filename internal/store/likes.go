package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// LikeStore manages tb_like rows and keeps tb_post.like_count in step.
// A user can like a given post at most once.
type LikeStore struct {
	db *sqlx.DB
}

// Like records a like and increments the post's like counter. Liking the
// same post twice returns ErrAlreadyExists.
func (s *LikeStore) Like(ctx context.Context, postID, userID int64) error {
	return tx(ctx, s.db, func(t *sqlx.Tx) error {
		var exists int
		if err := t.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM tb_post WHERE id = ? AND del_yn = 'N'`, postID); err != nil {
			return fmt.Errorf("checking post: %w", err)
		}
		if exists == 0 {
			return &errors.NotFoundError{Resource: "post", ID: postID}
		}

		_, err := t.ExecContext(ctx,
			`INSERT INTO tb_like (post_id, user_id) VALUES (?, ?)`, postID, userID)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: post already liked", errors.ErrAlreadyExists)
		}
		if err != nil {
			return fmt.Errorf("inserting like: %w", err)
		}

		_, err = t.ExecContext(ctx,
			`UPDATE tb_post SET like_count = like_count + 1 WHERE id = ?`, postID)
		if err != nil {
			return fmt.Errorf("incrementing like count: %w", err)
		}
		return nil
	})
}

// Unlike removes a like and decrements the post's like counter. Unliking a
// post the user never liked returns ErrNotFound.
func (s *LikeStore) Unlike(ctx context.Context, postID, userID int64) error {
	return tx(ctx, s.db, func(t *sqlx.Tx) error {
		res, err := t.ExecContext(ctx,
			`DELETE FROM tb_like WHERE post_id = ? AND user_id = ?`, postID, userID)
		if err != nil {
			return fmt.Errorf("deleting like: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: like not found", errors.ErrNotFound)
		}

		_, err = t.ExecContext(ctx,
			`UPDATE tb_post SET like_count = MAX(like_count - 1, 0) WHERE id = ?`, postID)
		if err != nil {
			return fmt.Errorf("decrementing like count: %w", err)
		}
		return nil
	})
}

// Liked reports whether the user has liked the post.
func (s *LikeStore) Liked(ctx context.Context, postID, userID int64) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM tb_like WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("querying like: %w", err)
	}
	return n > 0, nil
}
