package dto

import "github.com/guttosm/rollup/internal/domain/models"

// SummariesResponse is returned by GET /api/v1/summaries.
type SummariesResponse struct {
	Ticker      string                 `json:"ticker" example:"BBCA.JK"`
	Granularity string                 `json:"granularity" example:"monthly"`
	Collection  string                 `json:"collection" example:"data_bulanan"`
	Count       int                    `json:"count" example:"12"`
	Summaries   []models.PeriodSummary `json:"summaries"`
}

// TickersResponse is returned by GET /api/v1/tickers.
type TickersResponse struct {
	Granularity string   `json:"granularity" example:"daily"`
	Collection  string   `json:"collection" example:"data_harian"`
	Count       int      `json:"count" example:"2"`
	Tickers     []string `json:"tickers" example:"AALI.JK,BBCA.JK"`
}
