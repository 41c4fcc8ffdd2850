package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	_ "modernc.org/sqlite"

	"github.com/petrijr/draftflow/internal/config"
	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/api"
)

type closeFunc func() error

func noClose() error { return nil }

// openStore connects the backend named by cfg. The returned closeFunc
// releases the underlying connection.
func openStore(ctx context.Context, cfg config.StoreConfig) (api.Store, closeFunc, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return persistence.NewInMemoryStore(), noClose, nil

	case config.BackendSQLite:
		db, err := sql.Open("sqlite", "file:"+cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)
		store, err := persistence.NewSQLiteStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("init sqlite store: %w", err)
		}
		return store, db.Close, nil

	case config.BackendPostgres:
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store, err := persistence.NewPostgresStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("init postgres store: %w", err)
		}
		return store, db.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return persistence.NewRedisStore(client, cfg.RedisPrefix), client.Close, nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		disconnect := func() error { return client.Disconnect(context.Background()) }
		return persistence.NewMongoStore(client, cfg.MongoDB, ""), disconnect, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
