package store

import "database/sql"

// User is a row in tb_user. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        int64  `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Password  string `db:"password" json:"-"`
	Nickname  string `db:"nickname" json:"nickname"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
	DelYN     string `db:"del_yn" json:"-"`
}

// Post is a row in tb_post. The counter columns are maintained
// transactionally alongside their source tables.
type Post struct {
	ID           int64  `db:"id" json:"id"`
	UserID       int64  `db:"user_id" json:"user_id"`
	Title        string `db:"title" json:"title"`
	Content      string `db:"content" json:"content"`
	ViewCount    int64  `db:"view_count" json:"view_count"`
	LikeCount    int64  `db:"like_count" json:"like_count"`
	CommentCount int64  `db:"comment_count" json:"comment_count"`
	CreatedAt    string `db:"created_at" json:"created_at"`
	UpdatedAt    string `db:"updated_at" json:"updated_at"`
	DelYN        string `db:"del_yn" json:"-"`

	// Nickname is joined from tb_user for list and detail responses.
	Nickname string `db:"nickname" json:"nickname,omitempty"`
}

// Comment is a row in tb_comment.
type Comment struct {
	ID        int64  `db:"id" json:"id"`
	PostID    int64  `db:"post_id" json:"post_id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	Content   string `db:"content" json:"content"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
	DelYN     string `db:"del_yn" json:"-"`

	Nickname string `db:"nickname" json:"nickname,omitempty"`
}

// Image is a row in tb_image. PostID is NULL until the image is attached to
// a post.
type Image struct {
	ID          int64         `db:"id" json:"id"`
	PostID      sql.NullInt64 `db:"post_id" json:"-"`
	UserID      int64         `db:"user_id" json:"user_id"`
	FileName    string        `db:"file_name" json:"file_name"`
	FilePath    string        `db:"file_path" json:"file_path"`
	ContentType string        `db:"content_type" json:"content_type"`
	Size        int64         `db:"size" json:"size"`
	Ord         int           `db:"ord" json:"ord"`
	CreatedAt   string        `db:"created_at" json:"created_at"`
	DelYN       string        `db:"del_yn" json:"-"`
}
