// Package ingestion loads the fetch step's artifact into the summary store,
// one collection per configured target.
package ingestion

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/rollup/config"
	"github.com/guttosm/rollup/internal/domain/models"
	"github.com/guttosm/rollup/internal/logger"
	"github.com/guttosm/rollup/internal/rollup"
	"github.com/guttosm/rollup/internal/storage"
)

// Exporter receives each target's documents before they are stored.
type Exporter interface {
	Export(collection string, docs []models.PeriodSummary) (string, error)
}

// TargetReport is the outcome of one target.
type TargetReport struct {
	Collection    string
	Granularity   models.Granularity
	Documents     int
	Inserted      int
	Batches       int
	FailedBatches int
	ExportPath    string
	Err           error
	Elapsed       time.Duration
}

// Succeeded reports whether at least one document reached the store.
func (r TargetReport) Succeeded() bool {
	return r.Inserted > 0
}

// Report summarizes one multi-target run.
type Report struct {
	RunID             string
	Targets           []TargetReport
	TotalInserted     int
	SuccessfulTargets int
	TotalTargets      int
	Elapsed           time.Duration
}

// Complete reports whether every target succeeded.
func (r Report) Complete() bool {
	return r.TotalTargets > 0 && r.SuccessfulTargets == r.TotalTargets
}

// Option customizes a Loader.
type Option func(*Loader)

// WithExporter writes every target's documents through e before persisting.
func WithExporter(e Exporter) Option {
	return func(l *Loader) { l.exporter = e }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(l *Loader) { l.runID = id }
}

// Loader builds and persists every configured target from one record set.
type Loader struct {
	store    storage.SummaryStore
	cfg      config.LoaderConfig
	exporter Exporter
	runID    string
}

// NewLoader returns a Loader that writes to store using cfg's targets and batch size.
func NewLoader(store storage.SummaryStore, cfg config.LoaderConfig, opts ...Option) *Loader {
	l := &Loader{store: store, cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	if l.runID == "" {
		l.runID = uuid.NewString()
	}
	if l.cfg.BatchSize <= 0 {
		l.cfg.BatchSize = 1000
	}
	return l
}

// Run processes the targets in configured order. A failure in one target,
// including a panic, is recorded in its report and never stops the others.
func (l *Loader) Run(ctx context.Context, records []models.TickerRecord) Report {
	start := time.Now()
	report := Report{
		RunID:        l.runID,
		TotalTargets: len(l.cfg.Targets),
	}

	log := logger.For("loader").With().Str("run_id", l.runID).Logger()
	log.Info().
		Int("records", len(records)).
		Int("targets", len(l.cfg.Targets)).
		Int("batch_size", l.cfg.BatchSize).
		Msg("load start")

	for i, target := range l.cfg.Targets {
		tlog := log.With().
			Str("collection", target.Collection).
			Str("granularity", string(target.Granularity)).
			Logger()
		tlog.Info().Int("idx", i+1).Int("total", len(l.cfg.Targets)).Msg("target start")

		tr := l.runTarget(ctx, tlog, records, target)

		if tr.Err != nil {
			tlog.Error().Err(tr.Err).Int("inserted", tr.Inserted).Dur("elapsed", tr.Elapsed).Msg("target failed")
		} else {
			tlog.Info().
				Int("documents", tr.Documents).
				Int("inserted", tr.Inserted).
				Int("failed_batches", tr.FailedBatches).
				Dur("elapsed", tr.Elapsed).
				Msg("target done")
		}

		report.Targets = append(report.Targets, tr)
		report.TotalInserted += tr.Inserted
		if tr.Succeeded() {
			report.SuccessfulTargets++
		}
	}

	report.Elapsed = time.Since(start)
	return report
}

func (l *Loader) runTarget(ctx context.Context, log zerolog.Logger, records []models.TickerRecord, target models.Target) (tr TargetReport) {
	start := time.Now()
	tr = TargetReport{Collection: target.Collection, Granularity: target.Granularity}

	defer func() {
		if r := recover(); r != nil {
			tr.Err = fmt.Errorf("panic: %v", r)
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("target panicked")
		}
		tr.Elapsed = time.Since(start)
	}()

	res := rollup.Transform(records, target)
	tr.Documents = len(res.Documents)
	if len(res.Documents) == 0 {
		log.Warn().Int("tickers", res.Tickers).Msg("no documents produced")
		return tr
	}

	if l.exporter != nil {
		path, err := l.exporter.Export(target.Collection, res.Documents)
		if err != nil {
			log.Error().Err(err).Msg("export failed")
		} else {
			tr.ExportPath = path
			log.Info().Str("path", path).Msg("exported")
		}
	}

	tr.Inserted, tr.Batches, tr.FailedBatches, tr.Err = l.persist(ctx, log, target.Collection, res.Documents)
	return tr
}

// persist stores docs in fixed-size batches. A failed batch is logged and
// the remaining batches still run; only context cancellation stops early.
func (l *Loader) persist(ctx context.Context, log zerolog.Logger, collection string, docs []models.PeriodSummary) (inserted, batches, failed int, err error) {
	size := l.cfg.BatchSize
	for from := 0; from < len(docs); from += size {
		if err := ctx.Err(); err != nil {
			return inserted, batches, failed, err
		}

		to := min(from+size, len(docs))
		batches++

		n, berr := l.store.InsertBatch(ctx, collection, docs[from:to])
		inserted += n
		if berr != nil {
			failed++
			log.Error().
				Err(berr).
				Int("batch", batches).
				Int("size", to-from).
				Int("inserted", n).
				Msg("batch insert failed")
			continue
		}
		log.Debug().Int("batch", batches).Int("inserted", n).Msg("batch inserted")
	}
	return inserted, batches, failed, nil
}
