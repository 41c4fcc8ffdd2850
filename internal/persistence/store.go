// Package persistence provides api.Store implementations for the draftflow
// components together with the JSON helpers they use to read and write
// records.
//
// Every backend stores plain strings under string keys. The in-memory store
// is non-durable and mostly useful in tests; SQLite, PostgreSQL, Redis and
// MongoDB give the same contract durable storage.
package persistence

import (
	"errors"

	"github.com/petrijr/draftflow/pkg/api"
)

var (
	// ErrKeyNotFound is returned when no value exists for a key.
	ErrKeyNotFound = api.ErrKeyNotFound

	// ErrQuotaExceeded is returned by a quota-limited in-memory store when a
	// write would exceed its configured size.
	ErrQuotaExceeded = errors.New("store quota exceeded")

	// ErrCorrupt is returned when a stored value cannot be parsed.
	ErrCorrupt = errors.New("corrupt stored value")
)
