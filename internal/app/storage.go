package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

type (
	poolOpener func(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error)
	migrator   func(ctx context.Context, pool *pgxpool.Pool) ([]string, error)
)

// OpenStorage abre el adaptador indicado por driver. Con migrate=true aplica las migraciones pendientes.
// closeFn libera el pool y nunca es nil; si devuelve error no queda nada abierto.
func OpenStorage(ctx context.Context, driver string, db config.DBConfig, migrate bool, log *logger.Logger) (Storage, func(), error) {
	if driver == config.StorageMemory {
		return MemoryStorage(memory.NewStore()), func() {}, nil
	}
	return openPostgres(ctx, db, migrate, log, postgres.NewPool, postgres.Migrate)
}

func openPostgres(ctx context.Context, db config.DBConfig, migrate bool, log *logger.Logger, open poolOpener, run migrator) (Storage, func(), error) {
	if log == nil {
		log = logger.NewNop()
	}
	pool, err := open(ctx, db)
	if err != nil {
		return Storage{}, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if migrate {
		applied, err := run(ctx, pool)
		if err != nil {
			pool.Close()
			return Storage{}, nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return PostgresStorage(pool), pool.Close, nil
}
