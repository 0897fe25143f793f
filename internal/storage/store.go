package storage

import (
	"context"

	"github.com/guttosm/rollup/internal/domain/models"
)

// Store drivers selectable through STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// SummaryStore persists period summaries, one logical collection per target.
//
// InsertBatch is best effort: a document that cannot be written must not stop
// the rest of the batch. It returns how many documents landed, together with
// an error describing the ones that did not.
type SummaryStore interface {
	Ping(ctx context.Context) error
	InsertBatch(ctx context.Context, collection string, docs []models.PeriodSummary) (int, error)
	FindByTicker(ctx context.Context, collection, ticker string) ([]models.PeriodSummary, error)
	DistinctTickers(ctx context.Context, collection string) ([]string, error)
	Close(ctx context.Context) error
}
