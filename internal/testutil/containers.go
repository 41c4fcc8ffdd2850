// Package testutil holds helpers shared by tests across draftflow packages:
// throwaway database containers and store doubles with injectable failures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	pgOnce sync.Once
	pgDSN  string
	pgErr  error

	mongoOnce sync.Once
	mongoURI  string
	mongoErr  error
)

// GetPostgresDSN returns a DSN for a disposable PostgreSQL database.
// DRAFTFLOW_TEST_POSTGRES_DSN takes precedence over starting a container.
// The test is skipped when neither is available.
func GetPostgresDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("DRAFTFLOW_TEST_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if testing.Short() {
		t.Skip("skipping postgres container in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(func() {
		// Give generous timeout in CI environments
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		postgresC, err := testcontainers.Run(
			ctx, "postgres:16",
			testcontainers.WithExposedPorts("5432/tcp"),
			testcontainers.WithWaitStrategy(
				wait.ForAll(
					wait.ForListeningPort("5432/tcp"),
					wait.ForLog("ready to accept connections"),
					wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
						return fmt.Sprintf("postgres://draftflow:draftflow@%s:%s/draftflow_test?sslmode=disable", host, port.Port())
					}).WithQuery("SELECT 1"),
				).WithDeadline(2*time.Minute),
			),
			testcontainers.WithEnv(map[string]string{
				"POSTGRES_USER":     "draftflow",
				"POSTGRES_PASSWORD": "draftflow",
				"POSTGRES_DB":       "draftflow_test",
			}),
		)
		if err != nil {
			pgErr = err
			return
		}

		endpoint, err := postgresC.Endpoint(ctx, "")
		if err != nil {
			_ = postgresC.Terminate(context.Background()) // best-effort cleanup
			pgErr = err
			return
		}
		pgDSN = fmt.Sprintf("postgres://draftflow:draftflow@%s/draftflow_test?sslmode=disable", endpoint)
	})

	if pgErr != nil {
		t.Skipf("postgres container unavailable: %v", pgErr)
	}
	return pgDSN
}

// GetMongoURI returns a URI for a disposable MongoDB server.
// DRAFTFLOW_TEST_MONGO_URI takes precedence over starting a container.
// The test is skipped when neither is available.
func GetMongoURI(t *testing.T) string {
	t.Helper()
	if uri := os.Getenv("DRAFTFLOW_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	if testing.Short() {
		t.Skip("skipping mongo container in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		mongoC, err := testcontainers.Run(
			ctx, "mongo:7",
			testcontainers.WithExposedPorts("27017/tcp"),
			testcontainers.WithWaitStrategy(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			),
		)
		if err != nil {
			mongoErr = err
			return
		}

		endpoint, err := mongoC.Endpoint(ctx, "")
		if err != nil {
			_ = mongoC.Terminate(context.Background())
			mongoErr = err
			return
		}
		mongoURI = fmt.Sprintf("mongodb://%s", endpoint)
	})

	if mongoErr != nil {
		t.Skipf("mongo container unavailable: %v", mongoErr)
	}
	return mongoURI
}
