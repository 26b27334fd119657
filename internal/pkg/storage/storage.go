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

// FileStorage stores uploaded employee documents and admin logos.
type FileStorage interface {
	// Upload writes a file and returns its storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op for missing files
	Delete(ctx context.Context, path string) error

	// URL is the public address the key is served from
	URL(path string) string

	Exists(ctx context.Context, path string) (bool, error)
}
