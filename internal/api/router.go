package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/rollup/internal/middleware"
)

// RequestTimeout bounds every API request, store reads included.
const RequestTimeout = 10 * time.Second

// NewRouter builds the read API engine around handler.
//
// Responsibilities:
//   - Installs the middleware chain in order: RequestID, RequestLogger,
//     RecoveryMiddleware, ErrorHandler, RateLimiter, Timeout.
//   - Serves the generated OpenAPI docs under /swagger/*any.
//   - Mounts the summary endpoints under /api/v1 via Handler.Register.
//
// Note:
//   - /healthz and /readyz need the store, so app.NewRouter adds them.
func NewRouter(handler *Handler) *gin.Engine {
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
		middleware.Timeout(RequestTimeout),
	)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.Register(engine.Group("/api/v1"))

	return engine
}
