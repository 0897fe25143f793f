package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/rollup/config"
	"github.com/guttosm/rollup/internal/api"
	"github.com/guttosm/rollup/internal/service"
	"github.com/guttosm/rollup/internal/storage"
)

// storeOpener is an indirection used by InitializeApp; overridden in tests.
var storeOpener = OpenStore

// App bundles the wired components shared by every process mode.
type App struct {
	Config config.Config
	Store  storage.SummaryStore
	Router *gin.Engine
}

// InitializeApp opens the store and wires service, handlers and router.
//
// Returns:
//   - *App: the wired application.
//   - func(): cleanup that closes the store; run it on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, func(), error) {
	store, err := storeOpener(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}

	return &App{Config: cfg, Store: store, Router: NewRouter(cfg, store)}, cleanup, nil
}

// NewRouter builds the HTTP router over an already open store.
func NewRouter(cfg config.Config, store storage.SummaryStore) *gin.Engine {
	svc := service.NewSummaryService(store, cfg.Loader)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	api.NewHealthHandler(store.Ping).Register(router)
	return router
}
