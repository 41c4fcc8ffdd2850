package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/draftflow/internal/persistence"
)

type codecSample struct {
	Title string `json:"title"`
	N     int    `json:"n"`
}

func TestDecodeJSON_MalformedWrapsErrCorrupt(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "truncated", raw: `{"title":"x"`},
		{name: "not json", raw: `hello`},
		{name: "wrong shape", raw: `["a","b"]`},
		{name: "empty", raw: ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := persistence.DecodeJSON[codecSample](tc.raw)
			require.ErrorIs(t, err, persistence.ErrCorrupt)
		})
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewInMemoryStore()

	require.NoError(t, persistence.SaveJSON(ctx, store, "k", codecSample{Title: "Top 10 Tips", N: 3}))

	raw, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Top 10 Tips","n":3}`, raw)

	got, err := persistence.LoadJSON[codecSample](ctx, store, "k")
	require.NoError(t, err)
	require.Equal(t, codecSample{Title: "Top 10 Tips", N: 3}, got)
}

func TestLoadJSON_MissingKey(t *testing.T) {
	_, err := persistence.LoadJSON[codecSample](context.Background(), persistence.NewInMemoryStore(), "nope")
	require.ErrorIs(t, err, persistence.ErrKeyNotFound)
}

func TestSaveJSON_UnencodableValue(t *testing.T) {
	store := persistence.NewInMemoryStore()

	err := persistence.SaveJSON(context.Background(), store, "k", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	require.Equal(t, 0, store.Len())
}
