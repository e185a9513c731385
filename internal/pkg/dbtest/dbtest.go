// Package dbtest opens a migrated Postgres pool for integration tests.
// Tests are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"os"
	"testing"

	"print3d-order-admin/internal/migrations"

	"github.com/jackc/pgx"
	"github.com/stretchr/testify/require"
)

const envDSN = "TEST_DATABASE_URL"

// Pool returns a pool on a freshly truncated schema.
func Pool(t *testing.T) *pgx.ConnPool {
	t.Helper()

	dsn := os.Getenv(envDSN)
	if dsn == "" {
		t.Skipf("%s is not set", envDSN)
	}

	require.NoError(t, migrations.Up(context.Background(), dsn))

	connCfg, err := pgx.ParseConnectionString(dsn)
	require.NoError(t, err)
	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig:     connCfg,
		MaxConnections: 4,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec("TRUNCATE order_messages, order_files, orders, bot_config RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return pool
}

// InsertOrder stores an order the way the bot does and returns its id.
func InsertOrder(t *testing.T, pool *pgx.ConnPool, userID int64, status, payload string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(
		`INSERT INTO orders (user_id, username, full_name, branch, status, order_payload, summary)
		 VALUES ($1, 'client', 'Test Client', 'print', $2, $3::jsonb, 'summary')
		 RETURNING id`,
		userID, status, payload,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func InsertFile(t *testing.T, pool *pgx.ConnPool, orderID int64, telegramFileID, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(
		`INSERT INTO order_files (order_id, telegram_file_id, original_name, mime_type)
		 VALUES ($1, $2, $3, 'application/octet-stream')
		 RETURNING id`,
		orderID, telegramFileID, name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
