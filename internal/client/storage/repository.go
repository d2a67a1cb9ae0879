// Package storage is the durable key/value slot behind the session store.
package storage

import "context"

// Repository is a small key/value store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error

	// Replace atomically swaps the whole content for values.
	Replace(ctx context.Context, values map[string][]byte) error
}
