package autosave

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the debounce window used when Config.Interval is zero.
const DefaultInterval = 30 * time.Second

// KeyPrefix is prepended to Config.Key to form the store key and record ID.
const KeyPrefix = "autosave_"

// ErrMissingKey is returned by New when Config.Key is empty.
var ErrMissingKey = errors.New("autosave: key is required")

// Config configures an Engine.
type Config[T any] struct {
	// Key namespaces the saved record. Required.
	Key string

	// Interval is the debounce window between the last change and the
	// automatic save. Zero means DefaultInterval.
	Interval time.Duration

	// Enabled turns the engine on or off. nil means enabled. A disabled
	// engine never reads or writes the store.
	Enabled *bool

	// OnSave is called with the saved value after every successful write.
	OnSave func(T)

	// OnRestore is called by Apply. The engine never calls it on its own.
	OnRestore func(ctx context.Context, data T)
}

// Bool returns a pointer to b, for Config.Enabled.
func Bool(b bool) *bool { return &b }

// StorageKey returns the store key used for key.
func StorageKey(key string) string {
	return KeyPrefix + key
}
