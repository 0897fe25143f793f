package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/rollup/internal/domain/dto"
	"github.com/guttosm/rollup/internal/middleware"
	"github.com/guttosm/rollup/internal/service"
)

// Handler serves the read endpoints over stored rollups.
type Handler struct {
	svc service.SummaryService
}

// NewHandler constructs a Handler backed by svc.
func NewHandler(svc service.SummaryService) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the summary endpoints on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/summaries", h.GetSummaries)
	rg.GET("/tickers", h.ListTickers)
}

// GetSummaries handles GET /api/v1/summaries.
//
// GetSummaries godoc
// @Summary      Get period summaries for a ticker
// @Description  Returns every stored OHLCV rollup of the ticker for one granularity, ordered by period label
// @Tags         summaries
// @Produce      json
// @Param        ticker       query     string  true  "Ticker symbol" example(BBCA.JK)
// @Param        granularity  query     string  true  "daily, weekly, monthly, yearly, 1year, 3years or 5years" example(monthly)
// @Success      200          {object}  dto.SummariesResponse  "Success"
// @Failure      400          {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404          {object}  dto.ErrorResponse      "Not Found"
// @Failure      500          {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/summaries [get]
func (h *Handler) GetSummaries(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "ticker is required", nil)
		return
	}

	out, err := h.svc.GetSummaries(c.Request.Context(), ticker, c.Query("granularity"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(out.Items) == 0 {
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
		return
	}

	c.JSON(http.StatusOK, dto.SummariesResponse{
		Ticker:      out.Ticker,
		Granularity: string(out.Granularity),
		Collection:  out.Collection,
		Count:       len(out.Items),
		Summaries:   out.Items,
	})
}

// ListTickers handles GET /api/v1/tickers.
//
// ListTickers godoc
// @Summary      List tickers
// @Description  Returns the distinct tickers stored for one granularity
// @Tags         summaries
// @Produce      json
// @Param        granularity  query     string  true  "daily, weekly, monthly, yearly, 1year, 3years or 5years" example(daily)
// @Success      200          {object}  dto.TickersResponse  "Success"
// @Failure      400          {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404          {object}  dto.ErrorResponse    "Not Found"
// @Failure      500          {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/tickers [get]
func (h *Handler) ListTickers(c *gin.Context) {
	out, err := h.svc.ListTickers(c.Request.Context(), c.Query("granularity"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(out.Items) == 0 {
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
		return
	}

	c.JSON(http.StatusOK, dto.TickersResponse{
		Granularity: string(out.Granularity),
		Collection:  out.Collection,
		Count:       len(out.Items),
		Tickers:     out.Items,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownGranularity) {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid granularity", err)
		return
	}
	_ = c.Error(err)
	middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch summaries", err)
}
