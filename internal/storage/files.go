package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrFileNotFound = errors.New("file not found")

// FileStore keeps uploaded artifacts (book files, covers, child images,
// generated personalized books) on disk under a base directory. Stored names
// are opaque uuids; the caller persists the returned relative path.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// SaveUpload copies a multipart file part into the store and returns the
// stored relative path. The original extension is kept for content-type
// sniffing on download.
func (s *FileStore) SaveUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := s.writeFile(name, src); err != nil {
		return "", err
	}
	return name, nil
}

// Save writes an arbitrary stream into the store under a fresh uuid name.
func (s *FileStore) Save(r io.Reader, ext string) (string, error) {
	name := uuid.New().String() + ext
	if err := s.writeFile(name, r); err != nil {
		return "", err
	}
	return name, nil
}

func (s *FileStore) writeFile(name string, r io.Reader) error {
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Open returns a reader over a stored file. The caller must close it.
func (s *FileStore) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// Path resolves a stored name to its absolute location on disk.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.baseDir, name)
}

// Delete removes a stored file. A missing file is not an error: entity
// deletion must stay idempotent.
func (s *FileStore) Delete(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
