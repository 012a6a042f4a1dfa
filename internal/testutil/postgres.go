// Package testutil holds helpers shared by package tests: a throwaway
// Postgres container and testify mocks.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const pgImage = "postgres:15-alpine"

// migrationScripts lists every up migration in apply order.
func migrationScripts(t testing.TB) []string {
	t.Helper()
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "migrations")

	scripts, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, scripts, "no migrations under %s", dir)
	sort.Strings(scripts)
	return scripts
}

// NewPostgres returns a pool on a disposable database with the schema
// migrated. The container and pool go away with the test. Skipped under
// -short or without a docker daemon.
func NewPostgres(t testing.TB) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in -short mode")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, pgImage,
		postgres.WithDatabase("labdb"),
		postgres.WithUsername("labuser"),
		postgres.WithPassword("labpass"),
		postgres.WithInitScripts(migrationScripts(t)...),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	return pool
}

// ResetPages empties the queue and restarts its id sequence.
func ResetPages(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE pages RESTART IDENTITY")
	require.NoError(t, err)
}

// SeedPages queues n pending pages in one batch and returns their ids in
// insertion order.
func SeedPages(t testing.TB, pool *pgxpool.Pool, n int) []int64 {
	t.Helper()

	batch := &pgx.Batch{}
	for i := 1; i <= n; i++ {
		batch.Queue(`INSERT INTO pages (url) VALUES ($1) RETURNING id`,
			fmt.Sprintf("http://seed.test/page-%d", i))
	}

	results := pool.SendBatch(context.Background(), batch)
	defer results.Close()

	ids := make([]int64, n)
	for i := range ids {
		require.NoError(t, results.QueryRow().Scan(&ids[i]))
	}
	return ids
}
