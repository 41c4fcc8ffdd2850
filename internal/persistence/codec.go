package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petrijr/draftflow/pkg/api"
)

// EncodeJSON serializes v for storage.
func EncodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeJSON parses raw into a T. Parse failures wrap ErrCorrupt.
func DecodeJSON[T any](raw string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return v, nil
}

// SaveJSON serializes v and writes it under key.
func SaveJSON(ctx context.Context, store api.Store, key string, v any) error {
	raw, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// LoadJSON reads key and parses it into a T.
//
// It returns ErrKeyNotFound when the key is absent and an error wrapping
// ErrCorrupt when the stored value is not valid JSON for T.
func LoadJSON[T any](ctx context.Context, store api.Store, key string) (T, error) {
	var zero T
	raw, err := store.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	return DecodeJSON[T](raw)
}
