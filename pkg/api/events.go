package api

import "time"

// StaleAfter is the age past which a stored autosave record or workflow
// state is no longer restored.
const StaleAfter = 24 * time.Hour

// RestoreOutcome describes what a restore attempt found in the store.
type RestoreOutcome string

const (
	RestoreHit     RestoreOutcome = "restored"
	RestoreMissing RestoreOutcome = "missing"
	RestoreStale   RestoreOutcome = "stale"
	RestoreCorrupt RestoreOutcome = "corrupt"
	// RestoreFailed means the store itself returned an error.
	RestoreFailed RestoreOutcome = "failed"
)

// IsStale reports whether a record written at savedAt is older than
// StaleAfter at now.
func IsStale(savedAt, now time.Time) bool {
	return now.Sub(savedAt) > StaleAfter
}
