package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/rollup/config"
	"github.com/guttosm/rollup/internal/logger"
	"github.com/guttosm/rollup/internal/storage"
)

// Indirections overridden in tests to avoid real connections.
var (
	postgresOpener = InitPostgres
	sqliteOpener   = InitSQLite
	mongoOpener    = InitMongo
	migrator       = storage.Migrate
)

// OpenStore connects the backend selected by cfg.Store.Driver. SQL backends
// are migrated before use.
func OpenStore(ctx context.Context, cfg config.Config) (storage.SummaryStore, error) {
	switch cfg.Store.Driver {
	case storage.DriverMongo:
		client, err := mongoOpener(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.L().Info().Str("driver", storage.DriverMongo).Str("database", cfg.Mongo.Database).Msg("store connected")
		return storage.NewMongoStore(client.Database(cfg.Mongo.Database)), nil

	case storage.DriverPostgres:
		db, err := postgresOpener(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return sqlStore(ctx, db, storage.DriverPostgres)

	case storage.DriverSQLite:
		db, err := sqliteOpener(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return sqlStore(ctx, db, storage.DriverSQLite)

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func sqlStore(ctx context.Context, db *sql.DB, driver string) (storage.SummaryStore, error) {
	if err := migrator(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.L().Info().Str("driver", driver).Msg("store connected")
	return storage.NewSQLStore(db, driver), nil
}
