package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/api"
)

// Record is what an Engine writes to the store.
type Record[T any] struct {
	Data T `json:"data"`
	// Timestamp is the write time in epoch milliseconds.
	Timestamp int64  `json:"timestamp"`
	ID        string `json:"id"`
}

// SavedAt returns Timestamp as a time.Time.
func (r Record[T]) SavedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Status is the read-only view of an Engine consumed by status displays.
type Status struct {
	HasUnsavedChanges bool
	// LastSaved is nil until the first successful save.
	LastSaved *time.Time
}

// Engine tracks one value and persists it under a single store key.
// It is safe for concurrent use.
type Engine[T any] struct {
	store    api.Store
	clock    api.Clock
	observer api.Observer

	id       string
	interval time.Duration
	onSave   func(T)
	onRes    func(context.Context, T)

	mu             sync.Mutex
	enabled        bool
	closed         bool
	current        T
	hasValue       bool
	lastSerialized string
	lastTracked    string
	dirty          bool
	lastSaved      time.Time
	timer          api.Timer
	generation     uint64
}

// New returns an Engine with no observer.
func New[T any](store api.Store, clk api.Clock, cfg Config[T]) (*Engine[T], error) {
	return NewWithObserver(store, clk, cfg, nil)
}

// NewWithObserver returns an Engine that reports to obs.
func NewWithObserver[T any](store api.Store, clk api.Clock, cfg Config[T], obs api.Observer) (*Engine[T], error) {
	if cfg.Key == "" {
		return nil, ErrMissingKey
	}
	if store == nil || clk == nil {
		return nil, errors.New("autosave: store and clock are required")
	}
	if obs == nil {
		obs = api.NoopObserver{}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	enabled := true
	if cfg.Enabled != nil {
		enabled = *cfg.Enabled
	}

	return &Engine[T]{
		store:    store,
		clock:    clk,
		observer: obs,
		id:       StorageKey(cfg.Key),
		interval: interval,
		onSave:   cfg.OnSave,
		onRes:    cfg.OnRestore,
		enabled:  enabled,
	}, nil
}

// ID returns the record ID, which is also the store key.
func (e *Engine[T]) ID() string { return e.id }

// Track records v as the current value and updates the dirty flag by
// comparing its JSON form with the last saved one. While dirty, a change of
// value replaces any pending save timer with a fresh one; tracking the same
// value again leaves the pending timer alone.
func (e *Engine[T]) Track(v T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.current = v
	e.hasValue = true
	if !e.enabled {
		return
	}

	serialized, err := json.Marshal(v)
	if err == nil && e.timer != nil && string(serialized) == e.lastTracked {
		// Same value as last time: the pending save keeps its deadline.
		return
	}
	e.lastTracked = ""
	if err == nil {
		e.lastTracked = string(serialized)
	}
	// An unencodable value is kept dirty; the save reports the error.
	e.dirty = err != nil || string(serialized) != e.lastSerialized
	e.rearmLocked()
}

// rearmLocked cancels the pending timer and, while dirty, arms a new one.
func (e *Engine[T]) rearmLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.generation++
	if !e.dirty || !e.enabled || e.closed {
		return
	}
	gen := e.generation
	e.timer = e.clock.AfterFunc(e.interval, func() {
		e.fire(gen)
	})
}

func (e *Engine[T]) fire(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.generation || !e.dirty {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	e.mu.Unlock()

	e.SaveNow(context.Background())
}

// SaveNow writes the current value immediately. It does nothing when the
// engine is disabled, closed or has never been given a value. A failed write
// is reported to the observer and leaves the dirty flag as it was.
func (e *Engine[T]) SaveNow(ctx context.Context) {
	e.mu.Lock()
	if !e.enabled || e.closed || !e.hasValue {
		e.mu.Unlock()
		return
	}

	data := e.current
	now := e.clock.Now()
	rec := Record[T]{Data: data, Timestamp: now.UnixMilli(), ID: e.id}

	serialized, err := json.Marshal(data)
	if err == nil {
		err = persistence.SaveJSON(ctx, e.store, e.id, rec)
	}
	if err != nil {
		e.mu.Unlock()
		e.observer.OnSaveFailed(ctx, e.id, fmt.Errorf("autosave: %w", err))
		return
	}

	e.lastSerialized = string(serialized)
	e.dirty = false
	e.lastSaved = now
	e.rearmLocked()
	onSave := e.onSave
	e.mu.Unlock()

	e.observer.OnSaved(ctx, e.id, now)
	if onSave != nil {
		onSave(data)
	}
}

// RestoreData returns the saved record, if any. A record older than
// api.StaleAfter is removed from the store and reported as absent, as is a
// record that cannot be parsed. The engine's own state is not changed.
func (e *Engine[T]) RestoreData(ctx context.Context) (Record[T], bool) {
	var zero Record[T]

	e.mu.Lock()
	enabled := e.enabled
	e.mu.Unlock()
	if !enabled {
		return zero, false
	}

	rec, err := persistence.LoadJSON[Record[T]](ctx, e.store, e.id)
	switch {
	case errors.Is(err, persistence.ErrKeyNotFound):
		e.observer.OnRestore(ctx, e.id, api.RestoreMissing, nil)
		return zero, false
	case errors.Is(err, persistence.ErrCorrupt):
		e.observer.OnRestore(ctx, e.id, api.RestoreCorrupt, err)
		return zero, false
	case err != nil:
		e.observer.OnRestore(ctx, e.id, api.RestoreFailed, err)
		return zero, false
	}

	if api.IsStale(rec.SavedAt(), e.clock.Now()) {
		if err := e.store.Remove(ctx, e.id); err != nil {
			e.observer.OnRestore(ctx, e.id, api.RestoreFailed, fmt.Errorf("autosave: remove stale record: %w", err))
		}
		e.observer.OnRestore(ctx, e.id, api.RestoreStale, nil)
		return zero, false
	}

	e.observer.OnRestore(ctx, e.id, api.RestoreHit, nil)
	return rec, true
}

// Apply hands rec.Data to Config.OnRestore, if one was configured.
func (e *Engine[T]) Apply(ctx context.Context, rec Record[T]) {
	if e.onRes != nil {
		e.onRes(ctx, rec.Data)
	}
}

// ClearSavedData removes the saved record and resets the dirty flag and the
// last save time, whatever the record's age.
func (e *Engine[T]) ClearSavedData(ctx context.Context) {
	e.mu.Lock()
	enabled := e.enabled
	e.dirty = false
	e.lastSaved = time.Time{}
	e.rearmLocked()
	e.mu.Unlock()

	if !enabled {
		return
	}
	if err := e.store.Remove(ctx, e.id); err != nil {
		e.observer.OnSaveFailed(ctx, e.id, fmt.Errorf("autosave: clear: %w", err))
	}
}

// SetEnabled turns the engine on or off. Disabling cancels a pending save;
// enabling re-evaluates the current value against the last save.
func (e *Engine[T]) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.enabled == enabled || e.closed {
		e.enabled = enabled
		return
	}
	e.enabled = enabled
	if enabled && e.hasValue {
		serialized, err := json.Marshal(e.current)
		e.lastTracked = ""
		if err == nil {
			e.lastTracked = string(serialized)
		}
		e.dirty = err != nil || string(serialized) != e.lastSerialized
	}
	e.rearmLocked()
}

// Status returns the dirty flag and last save time.
func (e *Engine[T]) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{HasUnsavedChanges: e.dirty}
	if !e.lastSaved.IsZero() {
		t := e.lastSaved
		st.LastSaved = &t
	}
	return st
}

// Indicator returns the current status wired to a manual save that uses ctx.
func (e *Engine[T]) Indicator(ctx context.Context) Indicator {
	return Indicator{
		Status:    e.Status(),
		OnSaveNow: func() { e.SaveNow(ctx) },
	}
}

// Close cancels any pending save. Later calls to Track and SaveNow, and any
// timer that already started firing, do nothing.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.rearmLocked()
}
