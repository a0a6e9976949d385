package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is the interface the asset domain needs from an object store.
// Presigned URLs let clients transfer bytes directly, keeping the API
// server out of the data path.
type Storage interface {
	// PresignPut returns a presigned PUT URL for direct client upload.
	PresignPut(ctx context.Context, key string, contentType string, size int64, expires time.Duration) (string, error)

	// PresignGet returns a presigned GET URL for direct client download.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)

	// Put stores an object server-side (used for generated thumbnails).
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get streams an object's bytes (used when generating thumbnails).
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Head returns object metadata.
	Head(ctx context.Context, key string) (*ObjectInfo, error)
}
