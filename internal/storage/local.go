package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LocalStorage stores blobs on the local filesystem under a base directory.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	slog.Info("initializing local storage", "dir", baseDir)

	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Save(path string, r io.Reader) error {
	full := filepath.Join(s.baseDir, path)

	err := os.MkdirAll(filepath.Dir(full), 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return f.Close()
}

func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

func (s *LocalStorage) Delete(path string) error {
	err := os.Remove(filepath.Join(s.baseDir, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
