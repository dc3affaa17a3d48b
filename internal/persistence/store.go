// Package persistence defines the secure key-value store the lifecycle
// manager writes credentials to, plus two adapters: an encrypted file
// keystore and an in-memory store.
package persistence

import "context"

// PutOptions carry platform hints for a stored value.
type PutOptions struct {
	RequireBiometric       bool
	AccessibleWhenUnlocked bool
}

// Store is an opaque key -> string store with platform-backed encryption.
// Implementations report failures as *walleterr.StorageError. Get returns
// ok=false (not an error) for an absent key.
type Store interface {
	Put(ctx context.Context, key, value string, opts PutOptions) error
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Remove(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	IsAvailable(ctx context.Context) bool
}
