package main

//
//  @title           rollup API
//  @version         1.0
//  @description     Period rollups (daily to five-year) of equity price series.
//  @termsOfService  https://github.com/guttosm/rollup
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/rollup
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        summaries
//  @tag.description Endpoints for reading stored period rollups
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/rollup/config"
	_ "github.com/guttosm/rollup/docs" // swagger docs
	"github.com/guttosm/rollup/internal/app"
	"github.com/guttosm/rollup/internal/ingestion"
	"github.com/guttosm/rollup/internal/logger"
	"github.com/guttosm/rollup/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// newServer builds the HTTP server for router on port.
func newServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs server until ctx is done, then shuts it down gracefully.
// A listen failure is returned immediately.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.L().Info().Str("addr", server.Addr).Msg("server starting")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.L().Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// runLoad performs a single pipeline run.
func runLoad(ctx context.Context, cfg config.Config) error {
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	report, err := ingestion.Run(ctx, cfg, store)
	if err != nil {
		return err
	}
	if !report.Complete() {
		logger.L().Warn().
			Int("successful", report.SuccessfulTargets).
			Int("total", report.TotalTargets).
			Msg("load finished with failed targets")
	}
	return nil
}

// runAPI serves the read API until ctx is done.
func runAPI(ctx context.Context, cfg config.Config) error {
	a, cleanup, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return serve(ctx, newServer(a.Router, cfg.Server.Port))
}

// runSchedule runs the cron-driven loader and the read API side by side.
// Either one failing stops the other.
func runSchedule(ctx context.Context, cfg config.Config) error {
	a, cleanup, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sched, err := scheduler.New(cfg.Schedule.Spec, cfg.Loader.InputPath, func(ctx context.Context) error {
		_, err := ingestion.Run(ctx, cfg, a.Store)
		return err
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(gctx) })
	g.Go(func() error { return serve(gctx, newServer(a.Router, cfg.Server.Port)) })
	return g.Wait()
}

func run(ctx context.Context, mode string, cfg config.Config) error {
	switch mode {
	case "load":
		logger.L().Info().Str("input", cfg.Loader.InputPath).Str("store", cfg.Store.Driver).Msg("running load")
		return runLoad(ctx, cfg)
	case "api":
		logger.L().Info().Msg("starting API server")
		return runAPI(ctx, cfg)
	case "schedule":
		logger.L().Info().Str("spec", cfg.Schedule.Spec).Msg("starting scheduler")
		return runSchedule(ctx, cfg)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// applyFlags lets non-empty CLI flags override configuration.
func applyFlags(cfg *config.Config, input, port string) {
	if input != "" {
		cfg.Loader.InputPath = input
	}
	if port != "" {
		cfg.Server.Port = port
	}
}

// main is the entry point of the rollup service.
//
// Modes (selected via --mode flag):
//   - load:     one pipeline run over the input artifact, then exit.
//   - api:      REST API over the stored rollups.
//   - schedule: load on SCHEDULE_SPEC plus the REST API.
//
// Flags:
//   - --mode:  Execution mode. Default: "load".
//   - --input: Input artifact path. Defaults to INPUT_PATH.
//   - --port:  Port for the API server. Defaults to SERVER_PORT.
func main() {
	logger.Init()

	mode := flag.String("mode", "load", "Mode: load, api or schedule")
	input := flag.String("input", "", "Input artifact path (overrides INPUT_PATH)")
	port := flag.String("port", "", "Port for API mode (overrides SERVER_PORT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("config error")
	}
	applyFlags(&cfg, *input, *port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, *mode, cfg)
	stop()
	if err != nil {
		logger.L().Fatal().Err(err).Str("mode", *mode).Msg("run failed")
	}
}
