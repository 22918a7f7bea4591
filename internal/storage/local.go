package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore saves uploaded files on the local filesystem. Stored names are
// prefixed with a UUID so identical upload names never collide.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the uploaded file to disk and returns its stored name. Only the
// base of the client-supplied filename is used, so path segments in it cannot
// escape the upload directory.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	storedName := uuid.NewString() + "_" + filepath.Base(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return storedName, nil
}

// Path returns the on-disk path for a stored name
func (s *LocalStore) Path(storedName string) string {
	return filepath.Join(s.dir, filepath.Base(storedName))
}

// Remove deletes a stored file. A missing file is not an error; the record
// may outlive the file after a partial cleanup.
func (s *LocalStore) Remove(storedName string) error {
	err := os.Remove(s.Path(storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
