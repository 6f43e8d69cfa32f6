package app

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/pkg/config"
)

// lazyPool pool sin conexiones abiertas (pgxpool conecta bajo demanda).
func lazyPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://u:p@127.0.0.1:1/inventory?connect_timeout=1")
	require.NoError(t, err)
	return pool
}

func TestOpenStorage_Memoria(t *testing.T) {
	s, closeFn, err := OpenStorage(context.Background(), config.StorageMemory, config.DBConfig{}, true, nil)
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.NotNil(t, s.Tx)
	assert.NotNil(t, s.Products)
	closeFn()
}

// Si la migración falla el pool se cierra antes de devolver el error.
func TestOpenPostgres_MigracionFallidaCierraElPool(t *testing.T) {
	pool := lazyPool(t)
	open := func(context.Context, config.DBConfig) (*pgxpool.Pool, error) { return pool, nil }
	failing := func(context.Context, *pgxpool.Pool) ([]string, error) { return nil, errors.New("0001_init.sql: syntax error") }

	_, closeFn, err := openPostgres(context.Background(), config.DBConfig{}, true, nil, open, failing)
	require.Error(t, err)
	assert.ErrorContains(t, err, "migraciones")
	assert.Nil(t, closeFn)

	_, err = pool.Acquire(context.Background())
	assert.ErrorContains(t, err, "closed pool")
}

func TestOpenPostgres_SinMigrar(t *testing.T) {
	pool := lazyPool(t)
	open := func(context.Context, config.DBConfig) (*pgxpool.Pool, error) { return pool, nil }
	called := false
	run := func(context.Context, *pgxpool.Pool) ([]string, error) { called = true; return nil, nil }

	s, closeFn, err := openPostgres(context.Background(), config.DBConfig{}, false, nil, open, run)
	require.NoError(t, err)
	assert.False(t, called)
	assert.NotNil(t, s.Transactions)
	closeFn()

	_, err = pool.Acquire(context.Background())
	assert.ErrorContains(t, err, "closed pool")
}

func TestOpenPostgres_ErrorDeConexion(t *testing.T) {
	open := func(context.Context, config.DBConfig) (*pgxpool.Pool, error) { return nil, errors.New("ping DB: refused") }
	_, closeFn, err := openPostgres(context.Background(), config.DBConfig{}, true, nil, open, nil)
	assert.ErrorContains(t, err, "conexión a PostgreSQL")
	assert.Nil(t, closeFn)
}
