// Package autosave persists a continuously changing value with dirty
// tracking and a debounced timer.
//
// An Engine is fed the latest value through Track. When the value differs
// from what was last saved, the engine marks itself dirty and arms a single
// timer for the configured interval; every further change cancels that timer
// and arms a fresh one, so a burst of edits produces one write. SaveNow
// writes immediately. RestoreData reads the saved record back on request and
// drops it once it is older than 24 hours. The engine never applies restored
// data on its own.
//
// Write and read failures are reported to the configured api.Observer and
// otherwise swallowed: a failed save leaves the engine dirty, and the next
// change or manual save tries again.
//
// Label and Indicator turn an engine's Status into the text shown next to an
// editor.
package autosave
