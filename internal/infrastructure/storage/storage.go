// Package storage is the object-storage sink for profile photos. The core
// only keeps the descriptor (key + URL) a backend returns.
package storage

import (
	"context"
	"io"
)

// Upload is a stored object descriptor.
type Upload struct {
	Key string
	URL string
}

type PhotoStorage interface {
	// Put stores the object and returns its descriptor.
	Put(ctx context.Context, key, contentType string, body io.Reader) (*Upload, error)
	Delete(ctx context.Context, key string) error
}
