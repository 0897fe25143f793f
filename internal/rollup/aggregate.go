package rollup

import (
	"errors"
	"slices"
	"strings"

	"github.com/guregu/null/v6"

	"github.com/guttosm/rollup/internal/domain/models"
)

// ErrEmptyBucket is returned by Aggregate for a bucket without entries.
var ErrEmptyBucket = errors.New("empty bucket")

// OHLCV is the reduction of a bucket's entries.
type OHLCV struct {
	Open      float64
	Close     float64
	High      float64
	Low       float64
	AvgVolume int64
	MaxVolume int64
}

// qualifies reports whether a price takes part in aggregate statistics.
// Nulls and non-positive values are gaps in the feed, not observations.
func qualifies(v null.Float) bool {
	return v.Valid && v.Float64 > 0
}

func qualifiesVolume(v models.Volume) bool {
	return v.Valid && v.Int64 > 0
}

// Aggregate collapses the entries of one bucket into a single OHLCV.
//
// Entries are ordered by date on a private copy before reduction, so callers
// may pass them in any order. Each statistic only looks at qualifying values
// and falls back to zero when a bucket has none.
func Aggregate(entries []models.RawEntry) (OHLCV, error) {
	if len(entries) == 0 {
		return OHLCV{}, ErrEmptyBucket
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b models.RawEntry) int {
		return strings.Compare(a.Date, b.Date)
	})

	var (
		out         OHLCV
		haveOpen    bool
		haveHigh    bool
		haveLow     bool
		volumeSum   int64
		volumeCount int64
	)

	for _, e := range sorted {
		if qualifies(e.Open) && !haveOpen {
			out.Open = e.Open.Float64
			haveOpen = true
		}
		if qualifies(e.Close) {
			out.Close = e.Close.Float64
		}
		if qualifies(e.High) && (!haveHigh || e.High.Float64 > out.High) {
			out.High = e.High.Float64
			haveHigh = true
		}
		if qualifies(e.Low) && (!haveLow || e.Low.Float64 < out.Low) {
			out.Low = e.Low.Float64
			haveLow = true
		}
		if qualifiesVolume(e.Volume) {
			volumeSum += e.Volume.Int64
			volumeCount++
			out.MaxVolume = max(out.MaxVolume, e.Volume.Int64)
		}
	}

	if volumeCount > 0 {
		out.AvgVolume = volumeSum / volumeCount
	}
	return out, nil
}
