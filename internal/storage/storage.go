package storage

import (
	"errors"
	"fmt"
	"io"

	cfg "github.com/guardline/guardline/internal/config"
)

// ErrBlobNotFound is returned by Open when no blob exists at the given path.
var ErrBlobNotFound = errors.New("blob not found")

// Storage defines the interface for attachment blob operations.
type Storage interface {
	// Save stores a blob at the given path, creating parents as needed
	Save(path string, r io.Reader) error

	// Open returns a reader over the blob at the given path
	Open(path string) (io.ReadCloser, error)

	// Delete removes the blob at the given path. Deleting a missing
	// blob is not an error.
	Delete(path string) error
}

// New selects a storage backend from config. Local disk is the default;
// the S3 backend covers MinIO, R2 and other S3-compatible services.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case "", "local":
		return NewLocalStorage(c.UploadDir)
	case "s3":
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
