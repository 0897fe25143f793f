package models

import (
	"fmt"
	"math"

	"github.com/guregu/null/v6"
)

// RawEntry is one trading day of a ticker as delivered by the fetch step.
//
// Every numeric field is nullable: the upstream feed emits null for days
// where a value is missing, and zero for days without trading. Neither is
// treated as a real observation by the rollup engine.
type RawEntry struct {
	Date   string     `json:"Date"`
	Open   null.Float `json:"Open"`
	High   null.Float `json:"High"`
	Low    null.Float `json:"Low"`
	Close  null.Float `json:"Close"`
	Volume Volume     `json:"Volume"`
}

// Volume is a nullable share count.
//
// The fetch step goes through pandas, so whole volumes can arrive as floats
// (1000.0). Those are accepted and truncated toward zero, the same as int().
type Volume struct {
	null.Int
}

// VolumeFrom returns a present Volume.
func VolumeFrom(n int64) Volume {
	return Volume{Int: null.IntFrom(n)}
}

// UnmarshalJSON accepts null, integers and finite floats.
func (v *Volume) UnmarshalJSON(data []byte) error {
	var i null.Int
	if err := i.UnmarshalJSON(data); err == nil {
		v.Int = i
		return nil
	}

	var f null.Float
	if err := f.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("volume %s: %w", data, err)
	}
	if !f.Valid {
		v.Int = null.Int{}
		return nil
	}
	if math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) ||
		f.Float64 > math.MaxInt64 || f.Float64 < math.MinInt64 {
		return fmt.Errorf("volume %s: out of range", data)
	}
	v.Int = null.IntFrom(int64(f.Float64))
	return nil
}

// TickerRecord is one element of the input artifact.
//
// Info carries the upstream instrument metadata as-is; only the "symbol"
// key is read.
type TickerRecord struct {
	Info    map[string]any `json:"info"`
	History []RawEntry     `json:"history"`
}

// UnknownSymbol is used when a record carries no usable info.symbol.
const UnknownSymbol = "UNKNOWN"

// Symbol returns info.symbol, or UnknownSymbol when absent or not a string.
func (r TickerRecord) Symbol() string {
	if s, ok := r.Info["symbol"].(string); ok && s != "" {
		return s
	}
	return UnknownSymbol
}
