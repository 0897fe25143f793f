package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/rollup/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		status int
		want   zerolog.Level
	}{
		{http.StatusOK, zerolog.InfoLevel},
		{http.StatusNotFound, zerolog.WarnLevel},
		{http.StatusTooManyRequests, zerolog.WarnLevel},
		{http.StatusServiceUnavailable, zerolog.ErrorLevel},
	}
	for _, tc := range cases {
		if got := levelFor(tc.status); got != tc.want {
			t.Fatalf("levelFor(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestRequestLogger_Fields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger.SetOutput(&buf, zerolog.DebugLevel)
	defer logger.Init()

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/tickers", func(c *gin.Context) { c.String(http.StatusNotFound, "none") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tickers?granularity=daily", nil))

	line := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"route":"/api/v1/tickers"`,
		`"query":"granularity=daily"`,
		`"status":404`,
		`"request_id":"` + w.Header().Get(RequestIDHeader) + `"`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %s", line, want)
		}
	}
}
