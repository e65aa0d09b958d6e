package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// CommentStore manages tb_comment rows and keeps tb_post.comment_count in
// step.
type CommentStore struct {
	db *sqlx.DB
}

// Create inserts a comment and increments the post's comment counter in one
// transaction.
func (s *CommentStore) Create(ctx context.Context, postID, userID int64, content string) (*Comment, error) {
	var id int64
	err := tx(ctx, s.db, func(t *sqlx.Tx) error {
		var exists int
		if err := t.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM tb_post WHERE id = ? AND del_yn = 'N'`, postID); err != nil {
			return fmt.Errorf("checking post: %w", err)
		}
		if exists == 0 {
			return &errors.NotFoundError{Resource: "post", ID: postID}
		}

		res, err := t.ExecContext(ctx,
			`INSERT INTO tb_comment (post_id, user_id, content) VALUES (?, ?, ?)`,
			postID, userID, content)
		if err != nil {
			return fmt.Errorf("inserting comment: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading comment id: %w", err)
		}

		_, err = t.ExecContext(ctx,
			`UPDATE tb_post SET comment_count = comment_count + 1 WHERE id = ?`, postID)
		if err != nil {
			return fmt.Errorf("incrementing comment count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByID returns a live comment with the author nickname joined in.
func (s *CommentStore) GetByID(ctx context.Context, id int64) (*Comment, error) {
	var c Comment
	err := s.db.GetContext(ctx, &c,
		`SELECT c.*, u.nickname
		 FROM tb_comment c JOIN tb_user u ON u.id = c.user_id
		 WHERE c.id = ? AND c.del_yn = 'N'`, id)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "comment", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("querying comment: %w", err)
	}
	return &c, nil
}

// ListByPost returns all live comments on a post, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	comments := []Comment{}
	err := s.db.SelectContext(ctx, &comments,
		`SELECT c.*, u.nickname
		 FROM tb_comment c JOIN tb_user u ON u.id = c.user_id
		 WHERE c.post_id = ? AND c.del_yn = 'N'
		 ORDER BY c.id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Update modifies a comment's content. The comment must belong to postID
// and only the author may update.
func (s *CommentStore) Update(ctx context.Context, postID, id, userID int64, content string) (*Comment, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, &errors.NotFoundError{Resource: "comment", ID: id}
	}
	if c.UserID != userID {
		return nil, &errors.ForbiddenError{Message: "only the author can modify this comment"}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tb_comment SET content = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		 WHERE id = ?`, content, id)
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a comment and decrements the post's comment counter.
// The comment must belong to postID and only the author may delete.
func (s *CommentStore) Delete(ctx context.Context, postID, id, userID int64) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.PostID != postID {
		return &errors.NotFoundError{Resource: "comment", ID: id}
	}
	if c.UserID != userID {
		return &errors.ForbiddenError{Message: "only the author can delete this comment"}
	}

	return tx(ctx, s.db, func(t *sqlx.Tx) error {
		_, err := t.ExecContext(ctx,
			`UPDATE tb_comment SET del_yn = 'Y', updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
			 WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting comment: %w", err)
		}
		_, err = t.ExecContext(ctx,
			`UPDATE tb_post SET comment_count = MAX(comment_count - 1, 0) WHERE id = ?`, c.PostID)
		if err != nil {
			return fmt.Errorf("decrementing comment count: %w", err)
		}
		return nil
	})
}
