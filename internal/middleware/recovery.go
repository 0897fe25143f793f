package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/rollup/internal/logger"
)

// RecoveryMiddleware is gin's recovery with zerolog output: the panic value
// and stack are logged once against the request id, and the client gets the
// usual ErrorResponse with status 500. Broken client connections are left to
// gin, which aborts without a body.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, onPanic)
}

func onPanic(c *gin.Context, recovered any) {
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Interface("panic", recovered).
		Bytes("stack", debug.Stack()).
		Msg("panic recovered")

	AbortWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("%v", recovered))
}
