// Package upload persists product images on local disk.
// The store hands out generated filenames; callers keep the filename in
// the product record and never expose disk paths.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ErrUnsupportedType indicates the uploaded file extension is not allowed.
var ErrUnsupportedType = errors.New("unsupported image type")

// allowedExtensions whitelists image extensions we accept.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store saves uploaded files under a single directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the uploaded content to disk under a fresh ULID filename,
// keeping the original extension, and returns the stored filename.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	filename := ulid.Make().String() + ext

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filename, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// Path returns the on-disk path for a stored filename.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}
