// Package storage persists uploaded files on the local filesystem and maps
// them to public URLs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const businessSubdir = "businesses"

// UploadStore writes business image files under dir/businesses and serves
// them under baseURL.
type UploadStore struct {
	dir     string
	baseURL string
}

func NewUploadStore(dir, baseURL string) (*UploadStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, businessSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir, baseURL: baseURL}, nil
}

// Dir returns the root directory the store writes into, for static serving.
func (s *UploadStore) Dir() string {
	return s.dir
}

// SaveBusinessImage streams src into the business image directory under the
// given filename, replacing any previous file with that name.
func (s *UploadStore) SaveBusinessImage(filename string, src io.Reader) error {
	path := filepath.Join(s.dir, businessSubdir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("write upload file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close upload file: %w", err)
	}

	return nil
}

// RemoveBusinessImage deletes a stored file. A missing file is not an error;
// the database row is the source of truth.
func (s *UploadStore) RemoveBusinessImage(filename string) error {
	err := os.Remove(filepath.Join(s.dir, businessSubdir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

// BusinessImageURL returns the public URL a stored file is served under.
func (s *UploadStore) BusinessImageURL(filename string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, businessSubdir, filename)
}
