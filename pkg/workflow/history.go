package workflow

import (
	"encoding/json"
	"time"
)

// HistoryCapacity is the number of history entries kept.
const HistoryCapacity = 10

// HistoryEntry records one history-producing action.
type HistoryEntry struct {
	Step Step `json:"step"`
	// Timestamp is the action time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
	Data      any   `json:"data"`
}

// At returns Timestamp as a time.Time.
func (e HistoryEntry) At() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// History is a fixed-capacity deque of the most recent entries. Pushing
// onto a full deque evicts the oldest entry. Entries are kept oldest first
// from index 0, so two histories with the same entries compare equal. The
// zero value is an empty history, and copying a History copies its entries.
type History struct {
	buf [HistoryCapacity]HistoryEntry
	n   int
}

// Push appends e, evicting the oldest entry when the deque is full.
func (h *History) Push(e HistoryEntry) {
	if h.n < HistoryCapacity {
		h.buf[h.n] = e
		h.n++
		return
	}
	copy(h.buf[:], h.buf[1:])
	h.buf[HistoryCapacity-1] = e
}

// Len returns the number of entries.
func (h History) Len() int { return h.n }

// Entries returns the entries oldest first.
func (h History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, h.n)
	copy(out, h.buf[:h.n])
	return out
}

// Last returns the most recent entry.
func (h History) Last() (HistoryEntry, bool) {
	if h.n == 0 {
		return HistoryEntry{}, false
	}
	return h.buf[h.n-1], true
}

// MarshalJSON encodes the history as an array, oldest first.
func (h History) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Entries())
}

// UnmarshalJSON decodes an array of entries, keeping the newest
// HistoryCapacity of them.
func (h *History) UnmarshalJSON(data []byte) error {
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*h = History{}
	for _, e := range entries {
		h.Push(e)
	}
	return nil
}
