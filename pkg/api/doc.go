// Package api contains the narrow contracts shared by the draftflow
// components. It defines what the autosave engine and the workflow machine
// consume from the outside world and how they report what they do.
//
// Most users interact with the higher-level draftflow package, which
// re-exports selected types and helpers from this package.
//
// # Consumed interfaces
//
//   - Store: a persistent string key-value store (get/set/remove).
//   - Clock: wall-clock time plus cancellable one-shot timers.
//
// Both components are constructed with explicit references to a Store and a
// Clock, so tests can supply in-memory stores and manual clocks.
//
// # Observability
//
// The Observer interface receives save, restore and transition callbacks.
// LoggingObserver writes them with log/slog, BasicMetrics counts them, and
// CompositeObserver fans out to several observers. Store failures never
// propagate past the component boundary; the Observer is the only place they
// surface.
package api
