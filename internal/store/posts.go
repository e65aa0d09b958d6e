package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// DefaultPageSize is the number of posts returned per page.
const DefaultPageSize = 10

// PostStore manages tb_post rows.
type PostStore struct {
	db *sqlx.DB
}

// Create inserts a new post for the given author.
func (s *PostStore) Create(ctx context.Context, userID int64, title, content string) (*Post, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tb_post (user_id, title, content) VALUES (?, ?, ?)`,
		userID, title, content)
	if err != nil {
		return nil, fmt.Errorf("inserting post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading post id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns a live post with the author nickname joined in.
func (s *PostStore) GetByID(ctx context.Context, id int64) (*Post, error) {
	var p Post
	err := s.db.GetContext(ctx, &p,
		`SELECT p.*, u.nickname
		 FROM tb_post p JOIN tb_user u ON u.id = p.user_id
		 WHERE p.id = ? AND p.del_yn = 'N'`, id)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "post", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("querying post: %w", err)
	}
	return &p, nil
}

// List returns up to limit live posts newest first. A cursor of 0 starts
// from the top; otherwise only posts with id < cursor are returned.
// next_cursor is the id of the last returned post, or 0 when the page is
// not full.
func (s *PostStore) List(ctx context.Context, cursor int64, limit int) ([]Post, int64, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := `SELECT p.*, u.nickname
	          FROM tb_post p JOIN tb_user u ON u.id = p.user_id
	          WHERE p.del_yn = 'N'`
	args := []any{}
	if cursor > 0 {
		query += ` AND p.id < ?`
		args = append(args, cursor)
	}
	query += ` ORDER BY p.id DESC LIMIT ?`
	args = append(args, limit)

	posts := []Post{}
	if err := s.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}

	var next int64
	if len(posts) == limit {
		next = posts[len(posts)-1].ID
	}
	return posts, next, nil
}

// Update modifies a post's title and content. Only the author may update;
// someone else's post returns a ForbiddenError.
func (s *PostStore) Update(ctx context.Context, id, userID int64, title, content string) (*Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, &errors.ForbiddenError{Message: "only the author can modify this post"}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tb_post SET title = ?, content = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		 WHERE id = ?`, title, content, id)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a post. Only the author may delete.
func (s *PostStore) Delete(ctx context.Context, id, userID int64) error {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return &errors.ForbiddenError{Message: "only the author can delete this post"}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tb_post SET del_yn = 'Y', updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}
