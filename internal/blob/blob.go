package blob

import "context"

// Store is the object-storage collaborator for raw uploads. Put returns a
// retrievable public URL for the stored object; Get reads it back by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}
