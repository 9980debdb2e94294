package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"newsline/internal/pkg/env"
)

// FileStore stores uploaded files and returns a public URL for each.
type FileStore interface {
	Store(originalName string, data []byte) (string, error)
	Remove(url string) error
}

// LocalStore writes files to the upload directory on disk; they are served
// statically under /uploads.
type LocalStore struct {
	dir string
}

func NewLocalStore() (*LocalStore, error) {
	dir := env.GetEnv("UPLOAD_DIR", "./uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Store writes the file under a random name, keeping the original extension.
func (s *LocalStore) Store(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes the file behind a URL previously returned by Store.
// A missing file is not an error.
func (s *LocalStore) Remove(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", name, err)
	}
	return nil
}
