package ingestion

import (
	"context"
	"fmt"

	"github.com/guttosm/rollup/config"
	"github.com/guttosm/rollup/internal/export"
	"github.com/guttosm/rollup/internal/logger"
	"github.com/guttosm/rollup/internal/storage"
)

// Run executes one full load:
//   - reads the input artifact (fatal on failure),
//   - checks the store is reachable (fatal on failure),
//   - builds and persists every target,
//   - removes the artifact only if every target succeeded.
//
// Per-target problems never make Run return an error; they are in the Report.
func Run(ctx context.Context, cfg config.Config, store storage.SummaryStore, opts ...Option) (Report, error) {
	records, err := ReadArtifact(cfg.Loader.InputPath, cfg.Loader.SourceLimit)
	if err != nil {
		return Report{}, err
	}

	if err := store.Ping(ctx); err != nil {
		return Report{}, fmt.Errorf("store unreachable: %w", err)
	}

	if cfg.Export.Dir != "" {
		exp, err := export.New(cfg.Export.Dir, cfg.Export.Format)
		if err != nil {
			logger.L().Error().Err(err).Msg("export disabled")
		} else {
			opts = append([]Option{WithExporter(exp)}, opts...)
		}
	}

	report := NewLoader(store, cfg.Loader, opts...).Run(ctx, records)

	if err := FinalizeArtifact(cfg.Loader.InputPath, report); err != nil {
		logger.L().Error().Err(err).Msg("finalize input artifact")
	}

	logger.L().Info().
		Str("run_id", report.RunID).
		Str("database", databaseName(cfg)).
		Int("total_inserted", report.TotalInserted).
		Int("successful_targets", report.SuccessfulTargets).
		Int("total_targets", report.TotalTargets).
		Dur("elapsed", report.Elapsed).
		Msg("load summary")

	return report, nil
}

func databaseName(cfg config.Config) string {
	switch cfg.Store.Driver {
	case storage.DriverPostgres:
		return cfg.Postgres.DBName
	case storage.DriverSQLite:
		return cfg.SQLite.Path
	default:
		return cfg.Mongo.Database
	}
}
