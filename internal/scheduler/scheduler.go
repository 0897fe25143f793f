// Package scheduler triggers the load on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/rollup/internal/logger"
)

// RunFunc performs one load.
type RunFunc func(ctx context.Context) error

// Scheduler runs a RunFunc on a cron spec once the input artifact exists.
// Ticks never overlap: a tick that fires while the previous one is still
// running is dropped.
type Scheduler struct {
	cron  *cron.Cron
	spec  string
	input string
	run   RunFunc
	log   zerolog.Logger
}

// New validates spec and builds a stopped Scheduler.
func New(spec, inputPath string, run RunFunc) (*Scheduler, error) {
	if run == nil {
		return nil, errors.New("scheduler: nil run func")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("scheduler: invalid spec %q: %w", spec, err)
	}

	log := logger.For("scheduler")
	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		spec:  spec,
		input: inputPath,
		run:   run,
		log:   log,
	}
	return s, nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running tick to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Str("input", s.input).Msg("scheduler started")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
	return nil
}

// tick runs one load if the input artifact is present.
func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := os.Stat(s.input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info().Str("input", s.input).Msg("input artifact not found, tick skipped")
			return
		}
		s.log.Error().Err(err).Str("input", s.input).Msg("stat input artifact")
		return
	}

	start := time.Now()
	if err := s.run(ctx); err != nil {
		s.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("scheduled load failed")
		return
	}
	s.log.Info().Dur("elapsed", time.Since(start)).Msg("scheduled load done")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
