package cache

import "context"

// Store is the key-value backing for listing results. Set overwrites
// unconditionally; Get reports ErrMiss for absent or expired keys.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Clear(ctx context.Context) error
}
