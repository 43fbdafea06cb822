package interfaces

import "context"

// KeyValueInterface is a small string-keyed store for JSON documents.
// Get reports false for a key that was never written.
type KeyValueInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close()
}
