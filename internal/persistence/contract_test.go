package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/api"
)

// runStoreContract exercises the api.Store contract shared by every backend.
func runStoreContract(t *testing.T, store api.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "contract_missing")
		require.ErrorIs(t, err, persistence.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract_a", `{"n":1}`))
		got, err := store.Get(ctx, "contract_a")
		require.NoError(t, err)
		require.Equal(t, `{"n":1}`, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract_b", "first"))
		require.NoError(t, store.Set(ctx, "contract_b", "second"))
		got, err := store.Get(ctx, "contract_b")
		require.NoError(t, err)
		require.Equal(t, "second", got)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract_c", "x"))
		require.NoError(t, store.Remove(ctx, "contract_c"))
		_, err := store.Get(ctx, "contract_c")
		require.True(t, errors.Is(err, persistence.ErrKeyNotFound), "expected ErrKeyNotFound, got %v", err)
	})

	t.Run("remove missing is not an error", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "contract_never_set"))
	})

	t.Run("keys do not collide", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "autosave_draft", "draft"))
		require.NoError(t, store.Set(ctx, "content_workflow_state", "state"))

		a, err := store.Get(ctx, "autosave_draft")
		require.NoError(t, err)
		b, err := store.Get(ctx, "content_workflow_state")
		require.NoError(t, err)
		require.Equal(t, "draft", a)
		require.Equal(t, "state", b)
	})
}
