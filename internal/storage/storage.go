// Package storage saves uploaded image files on an afero filesystem.
// Production uses the OS filesystem; tests swap in an in-memory one.
package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// allowedTypes maps accepted image MIME types to their file extension.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Storage writes uploaded files under a base directory with generated
// names.
type Storage struct {
	fs       afero.Fs
	baseDir  string
	maxBytes int64
}

// New creates a Storage rooted at baseDir on fs, creating the directory if
// needed. maxBytes caps the size of a single upload.
func New(fs afero.Fs, baseDir string, maxBytes int64) (*Storage, error) {
	if err := fs.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Storage{fs: fs, baseDir: baseDir, maxBytes: maxBytes}, nil
}

// SavedFile describes a stored upload.
type SavedFile struct {
	// Name is the generated filename under the base directory.
	Name string
	// Path is the storage path (baseDir joined with Name).
	Path string
	// Size is the number of bytes written.
	Size int64
}

// Save validates the content type, enforces the size cap, and writes the
// upload under a fresh UUID-based name. Unsupported types return
// ErrInvalidInput.
func (s *Storage) Save(r io.Reader, contentType string) (*SavedFile, error) {
	ext, ok := allowedTypes[normalizeType(contentType)]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported content type %q", contentType),
		}
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.baseDir, name)

	f, err := s.fs.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	// +1 so a stream exactly at the cap passes and one byte over fails.
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(dst)
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if n > s.maxBytes {
		_ = s.fs.Remove(dst)
		return nil, &errors.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxBytes),
		}
	}

	return &SavedFile{Name: name, Path: dst, Size: n}, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Storage) Remove(filePath string) error {
	err := s.fs.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// Open opens a stored file by its generated name for serving.
func (s *Storage) Open(name string) (afero.File, error) {
	// Reject anything that would escape the base directory.
	if name != path.Base(name) || strings.HasPrefix(name, ".") {
		return nil, &errors.NotFoundError{Resource: "image"}
	}
	f, err := s.fs.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, &errors.NotFoundError{Resource: "image"}
	}
	return f, nil
}

// FileServer returns an http.Handler serving the stored files.
func (s *Storage) FileServer() http.Handler {
	httpFs := afero.NewHttpFs(s.fs)
	return http.FileServer(httpFs.Dir(s.baseDir))
}

func normalizeType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
