package workflow

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func pushN(h *History, n int) {
	for i := 0; i < n; i++ {
		h.Push(HistoryEntry{Step: StepKeyword, Timestamp: int64(i), Data: fmt.Sprintf("k%d", i)})
	}
}

func TestHistory_ZeroValueIsEmpty(t *testing.T) {
	var h History
	require.Equal(t, 0, h.Len())
	require.Empty(t, h.Entries())
	_, ok := h.Last()
	require.False(t, ok)
}

func TestHistory_EvictsOldestFirst(t *testing.T) {
	var h History
	pushN(&h, 13)

	require.Equal(t, HistoryCapacity, h.Len())
	entries := h.Entries()
	require.Equal(t, "k3", entries[0].Data)
	require.Equal(t, "k12", entries[len(entries)-1].Data)

	last, ok := h.Last()
	require.True(t, ok)
	require.Equal(t, int64(12), last.Timestamp)
}

func TestHistory_CopyIsIndependent(t *testing.T) {
	var a History
	pushN(&a, 3)

	b := a
	b.Push(HistoryEntry{Step: StepTitle, Data: "extra"})

	require.Equal(t, 3, a.Len())
	require.Equal(t, 4, b.Len())
}

func TestHistory_EntriesIsACopy(t *testing.T) {
	var h History
	pushN(&h, 2)

	entries := h.Entries()
	entries[0].Data = "mutated"

	require.Equal(t, "k0", h.Entries()[0].Data)
}

func TestHistory_JSONRoundTripKeepsNewest(t *testing.T) {
	var h History
	pushN(&h, 4)

	raw, err := json.Marshal(h)
	require.NoError(t, err)

	var back History
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, h, back)

	// An oversized stored array is trimmed to the newest entries.
	var entries []HistoryEntry
	for i := 0; i < 15; i++ {
		entries = append(entries, HistoryEntry{Step: StepTitle, Timestamp: int64(i), Data: "t"})
	}
	raw, err = json.Marshal(entries)
	require.NoError(t, err)

	var trimmed History
	require.NoError(t, json.Unmarshal(raw, &trimmed))
	require.Equal(t, HistoryCapacity, trimmed.Len())
	require.Equal(t, int64(5), trimmed.Entries()[0].Timestamp)
}

func TestHistory_UnmarshalNull(t *testing.T) {
	h := History{}
	pushN(&h, 2)
	require.NoError(t, json.Unmarshal([]byte(`null`), &h))
	require.Equal(t, 0, h.Len())
}
