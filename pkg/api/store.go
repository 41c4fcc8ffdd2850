package api

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Store.Get when no value exists for a key.
var ErrKeyNotFound = errors.New("key not found")

// Store is a persistent string key-value store.
//
// Values are opaque strings; callers serialize before Set and parse after Get.
// Implementations assume a single writer per key. Concurrent writers race and
// the last write wins.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
