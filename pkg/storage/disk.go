// Package storage is the object store for product images.
//
// Two drivers are available:
//   - "local": files under STORAGE_LOCAL_ROOT, served by the API under /storage
//   - "s3":    any S3-compatible bucket (AWS S3, MinIO, R2)
//
//	if err := storage.Connect(ctx); err != nil { ... }
//	err := storage.Default().Put(ctx, "products/abc.jpg", r, "image/jpeg")
//	url := storage.Default().URL("products/abc.jpg")
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInvalidPath is returned for keys that are empty, absolute or escape the root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Disk is the driver interface.
type Disk interface {
	// Put writes r to path with the given content type, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Get opens the object at path. Caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// CleanPath validates an object key and returns it without a leading slash.
func CleanPath(path string) (string, error) {
	p := strings.TrimLeft(strings.TrimSpace(path), "/")
	if p == "" || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidPath
		}
	}
	return p, nil
}
