package models

import (
	"fmt"
	"strings"
)

// Granularity selects how raw daily entries are bucketed into periods.
type Granularity string

const (
	Daily      Granularity = "daily"
	Weekly     Granularity = "weekly"
	Monthly    Granularity = "monthly"
	Yearly     Granularity = "yearly"
	OneYear    Granularity = "1year"
	ThreeYears Granularity = "3years"
	FiveYears  Granularity = "5years"
)

// Granularities lists every supported granularity in load order.
var Granularities = []Granularity{Daily, Weekly, Monthly, Yearly, FiveYears, OneYear, ThreeYears}

// ParseGranularity accepts the canonical names, case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Granularities {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Target binds one output collection to a granularity and a ticker cap.
//
// TickerCap bounds how many tickers (in input order) are rolled up for this
// collection; zero or negative means no cap.
type Target struct {
	Collection  string
	Granularity Granularity
	TickerCap   int
}
