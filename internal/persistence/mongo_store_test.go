package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/internal/testutil"
)

func TestMongoStore_Contract(t *testing.T) {
	uri := testutil.GetMongoURI(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Database("draftflow_test").Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	require.NoError(t, client.Ping(ctx, nil))

	runStoreContract(t, persistence.NewMongoStore(client, "draftflow_test", "kv_store"))
}
