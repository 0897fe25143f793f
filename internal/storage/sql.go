package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	pq "github.com/lib/pq"

	"github.com/guttosm/rollup/internal/domain/models"
)

const summaryTable = "period_summaries"

var summaryColumns = []string{
	"collection",
	"ticker",
	"label",
	"start_date",
	"end_date",
	"open",
	"close",
	"low",
	"high",
	"avg_volume",
	"max_volume",
}

const insertSummarySQL = `
	INSERT INTO period_summaries
		(collection, ticker, label, start_date, end_date, open, close, low, high, avg_volume, max_volume)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

var placeholderRe = regexp.MustCompile(`\$\d+`)

type sqlStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore keeps every collection in the period_summaries table, told
// apart by its collection column. driver is DriverPostgres or DriverSQLite.
func NewSQLStore(db *sql.DB, driver string) SummaryStore {
	return &sqlStore{db: db, driver: driver}
}

// rebind rewrites $n placeholders to ? for SQLite.
func (s *sqlStore) rebind(q string) string {
	if s.driver == DriverSQLite {
		return placeholderRe.ReplaceAllString(q, "?")
	}
	return q
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStore) Close(_ context.Context) error {
	return s.db.Close()
}

// InsertBatch writes a batch on a best-effort basis.
//
// On Postgres the batch goes through COPY in one transaction; if that fails
// the rows are retried one by one so a single bad row only loses itself.
// On SQLite rows are inserted one by one inside a transaction, which a failed
// statement does not abort.
func (s *sqlStore) InsertBatch(ctx context.Context, collection string, docs []models.PeriodSummary) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	if s.driver == DriverPostgres {
		copyErr := s.copyBatch(ctx, collection, docs)
		if copyErr == nil {
			return len(docs), nil
		}
		n, err := s.insertRows(ctx, s.db, collection, docs)
		if err != nil {
			return n, fmt.Errorf("copy failed (%v), row fallback: %w", copyErr, err)
		}
		return n, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	n, rowsErr := s.insertRows(ctx, tx, collection, docs)
	if err := tx.Commit(); err != nil {
		return 0, errors.Join(rowsErr, err)
	}
	return n, rowsErr
}

// copyBatch inserts the batch with COPY in a single transaction.
func (s *sqlStore) copyBatch(ctx context.Context, collection string, docs []models.PeriodSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(summaryTable, summaryColumns...))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, rowArgs(collection, d)...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertRows inserts docs one statement at a time and keeps going past failures.
func (s *sqlStore) insertRows(ctx context.Context, ex execer, collection string, docs []models.PeriodSummary) (int, error) {
	query := s.rebind(insertSummarySQL)
	inserted := 0
	var errs []error
	for i, d := range docs {
		if _, err := ex.ExecContext(ctx, query, rowArgs(collection, d)...); err != nil {
			errs = append(errs, fmt.Errorf("row %d (%s %s): %w", i, d.Ticker, d.Label, err))
			continue
		}
		inserted++
	}
	return inserted, errors.Join(errs...)
}

func rowArgs(collection string, d models.PeriodSummary) []any {
	return []any{
		collection,
		d.Ticker,
		d.Label,
		d.StartDate,
		d.EndDate,
		d.Open,
		d.Close,
		d.Low,
		d.High,
		d.AvgVolume,
		d.MaxVolume,
	}
}

func (s *sqlStore) FindByTicker(ctx context.Context, collection, ticker string) ([]models.PeriodSummary, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT ticker, label, start_date, end_date, open, close, low, high, avg_volume, max_volume
		FROM period_summaries
		WHERE collection = $1 AND ticker = $2
		ORDER BY label, id`), collection, ticker)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.PeriodSummary
	for rows.Next() {
		var d models.PeriodSummary
		if err := rows.Scan(&d.Ticker, &d.Label, &d.StartDate, &d.EndDate, &d.Open, &d.Close, &d.Low, &d.High, &d.AvgVolume, &d.MaxVolume); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *sqlStore) DistinctTickers(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT DISTINCT ticker FROM period_summaries WHERE collection = $1 ORDER BY ticker`), collection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
