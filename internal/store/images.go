package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// ImageStore manages tb_image rows. Uploaded images start detached
// (post_id NULL) and are attached to a post afterwards.
type ImageStore struct {
	db *sqlx.DB
}

// Create records an uploaded image owned by the user, not yet attached to
// any post.
func (s *ImageStore) Create(ctx context.Context, userID int64, fileName, filePath, contentType string, size int64) (*Image, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tb_image (user_id, file_name, file_path, content_type, size)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, fileName, filePath, contentType, size)
	if err != nil {
		return nil, fmt.Errorf("inserting image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading image id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns a live image by ID.
func (s *ImageStore) GetByID(ctx context.Context, id int64) (*Image, error) {
	var img Image
	err := s.db.GetContext(ctx, &img,
		`SELECT * FROM tb_image WHERE id = ? AND del_yn = 'N'`, id)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "image", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("querying image: %w", err)
	}
	return &img, nil
}

// Attach links the given images to a post, assigning display order by the
// order of ids. Images owned by another user return a ForbiddenError.
func (s *ImageStore) Attach(ctx context.Context, postID, userID int64, imageIDs []int64) error {
	return tx(ctx, s.db, func(t *sqlx.Tx) error {
		for ord, imgID := range imageIDs {
			var img Image
			err := t.GetContext(ctx, &img,
				`SELECT * FROM tb_image WHERE id = ? AND del_yn = 'N'`, imgID)
			if err == sql.ErrNoRows {
				return &errors.NotFoundError{Resource: "image", ID: imgID}
			}
			if err != nil {
				return fmt.Errorf("querying image: %w", err)
			}
			if img.UserID != userID {
				return &errors.ForbiddenError{Message: "cannot attach another user's image"}
			}

			_, err = t.ExecContext(ctx,
				`UPDATE tb_image SET post_id = ?, ord = ? WHERE id = ?`, postID, ord, imgID)
			if err != nil {
				return fmt.Errorf("attaching image: %w", err)
			}
		}
		return nil
	})
}

// ListByPost returns the live images attached to a post in display order.
func (s *ImageStore) ListByPost(ctx context.Context, postID int64) ([]Image, error) {
	images := []Image{}
	err := s.db.SelectContext(ctx, &images,
		`SELECT * FROM tb_image WHERE post_id = ? AND del_yn = 'N' ORDER BY ord ASC, id ASC`,
		postID)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	return images, nil
}

// Delete soft-deletes an image. Only the owner may delete. The stored file
// path is returned so the caller can remove the file.
func (s *ImageStore) Delete(ctx context.Context, id, userID int64) (string, error) {
	img, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if img.UserID != userID {
		return "", &errors.ForbiddenError{Message: "only the owner can delete this image"}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tb_image SET del_yn = 'Y' WHERE id = ?`, id)
	if err != nil {
		return "", fmt.Errorf("deleting image: %w", err)
	}
	return img.FilePath, nil
}
