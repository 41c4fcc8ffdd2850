package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the autosave engine and the workflow
// machine for logging and metrics.
//
// Implementations should be fast and non-blocking; callbacks run on the
// caller's goroutine, or on the timer goroutine for scheduled saves.
type Observer interface {
	// OnSaved is called after a value was written to the store under key.
	OnSaved(ctx context.Context, key string, at time.Time)

	// OnSaveFailed is called when serializing or writing the value under
	// key failed. The failure is not reported anywhere else.
	OnSaveFailed(ctx context.Context, key string, err error)

	// OnRestore is called after a restore attempt for key. err is set for
	// RestoreCorrupt and RestoreFailed.
	OnRestore(ctx context.Context, key string, outcome RestoreOutcome, err error)

	// OnTransition is called after the workflow machine reduced an action.
	// from and to are the current step before and after the action.
	OnTransition(ctx context.Context, action string, from, to string)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnSaved(ctx context.Context, key string, at time.Time)   {}
func (NoopObserver) OnSaveFailed(ctx context.Context, key string, err error) {}
func (NoopObserver) OnRestore(ctx context.Context, key string, outcome RestoreOutcome, err error) {
}
func (NoopObserver) OnTransition(ctx context.Context, action string, from, to string) {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnSaved(ctx context.Context, key string, at time.Time) {
	for _, o := range c.observers {
		o.OnSaved(ctx, key, at)
	}
}

func (c *CompositeObserver) OnSaveFailed(ctx context.Context, key string, err error) {
	for _, o := range c.observers {
		o.OnSaveFailed(ctx, key, err)
	}
}

func (c *CompositeObserver) OnRestore(ctx context.Context, key string, outcome RestoreOutcome, err error) {
	for _, o := range c.observers {
		o.OnRestore(ctx, key, outcome, err)
	}
}

func (c *CompositeObserver) OnTransition(ctx context.Context, action string, from, to string) {
	for _, o := range c.observers {
		o.OnTransition(ctx, action, from, to)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs save, restore and
// transition events using the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnSaved(ctx context.Context, key string, at time.Time) {
	o.Logger.DebugContext(ctx, "store_saved",
		slog.String("key", key),
		slog.Time("at", at),
	)
}

func (o *LoggingObserver) OnSaveFailed(ctx context.Context, key string, err error) {
	o.Logger.ErrorContext(ctx, "store_save_failed",
		slog.String("key", key),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnRestore(ctx context.Context, key string, outcome RestoreOutcome, err error) {
	level := slog.LevelInfo
	switch outcome {
	case RestoreMissing:
		level = slog.LevelDebug
	case RestoreCorrupt, RestoreFailed:
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.String("key", key),
		slog.String("outcome", string(outcome)),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	o.Logger.LogAttrs(ctx, level, "store_restore", attrs...)
}

func (o *LoggingObserver) OnTransition(ctx context.Context, action string, from, to string) {
	o.Logger.DebugContext(ctx, "workflow_transition",
		slog.String("action", action),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// BasicMetrics collects simple counters. It implements Observer, and can be
// combined with LoggingObserver via NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	saves        atomic.Int64
	saveFailures atomic.Int64
	restored     atomic.Int64
	missing      atomic.Int64
	stale        atomic.Int64
	corrupt      atomic.Int64
	transitions  atomic.Int64
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Saves        int64
	SaveFailures int64

	Restored       int64
	RestoreMissing int64
	RestoreStale   int64
	// RestoreCorrupt also counts store read failures.
	RestoreCorrupt int64

	Transitions int64
}

func (m *BasicMetrics) OnSaved(ctx context.Context, key string, at time.Time) {
	m.saves.Add(1)
}

func (m *BasicMetrics) OnSaveFailed(ctx context.Context, key string, err error) {
	m.saveFailures.Add(1)
}

func (m *BasicMetrics) OnRestore(ctx context.Context, key string, outcome RestoreOutcome, err error) {
	switch outcome {
	case RestoreHit:
		m.restored.Add(1)
	case RestoreMissing:
		m.missing.Add(1)
	case RestoreStale:
		m.stale.Add(1)
	case RestoreCorrupt, RestoreFailed:
		m.corrupt.Add(1)
	}
}

func (m *BasicMetrics) OnTransition(ctx context.Context, action string, from, to string) {
	m.transitions.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	return BasicMetricsSnapshot{
		Saves:          m.saves.Load(),
		SaveFailures:   m.saveFailures.Load(),
		Restored:       m.restored.Load(),
		RestoreMissing: m.missing.Load(),
		RestoreStale:   m.stale.Load(),
		RestoreCorrupt: m.corrupt.Load(),
		Transitions:    m.transitions.Load(),
	}
}
