package persistence_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/draftflow/internal/persistence"
)

func TestInMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, persistence.NewInMemoryStore())
}

func TestInMemoryStore_QuotaRejectsOversizedWrite(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewInMemoryStoreWithQuota(16)

	require.NoError(t, store.Set(ctx, "k", "short"))

	err := store.Set(ctx, "k2", strings.Repeat("x", 32))
	require.ErrorIs(t, err, persistence.ErrQuotaExceeded)

	// The failed write leaves the store unchanged.
	_, err = store.Get(ctx, "k2")
	require.ErrorIs(t, err, persistence.ErrKeyNotFound)
	require.Equal(t, 1, store.Len())
}

func TestInMemoryStore_QuotaAccountsForOverwriteAndRemove(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewInMemoryStoreWithQuota(10)

	require.NoError(t, store.Set(ctx, "k", "123456789"))
	// Replacing the value frees the old bytes first.
	require.NoError(t, store.Set(ctx, "k", "987654321"))
	require.ErrorIs(t, store.Set(ctx, "j", "1"), persistence.ErrQuotaExceeded)

	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Set(ctx, "j", "1"))
}
