package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

type FileStorage interface {
	// Upload stores a file and returns its key
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key
	URL(key string) string
}
