package rollup

import (
	"sort"

	"github.com/guttosm/rollup/internal/domain/models"
	"github.com/guttosm/rollup/internal/logger"
)

// Result is the output of one Transform call.
type Result struct {
	Documents      []models.PeriodSummary
	Tickers        int // tickers retained after the cap
	Excluded       int // tickers dropped by the cap
	EmptyHistories int
	Buckets        int
	SkippedEntries int
	SkippedBuckets int
}

// Transform rolls up every retained ticker for a single target.
//
// The target's ticker cap is applied first, in input order. Tickers without
// history, entries with bad dates and buckets that reduce to nothing are
// skipped and logged; none of them fail the call.
//
// Documents are ordered by ticker (input order) then by bucket key. Consumers
// that need a particular order must still sort.
func Transform(records []models.TickerRecord, target models.Target) Result {
	log := logger.L().With().
		Str("collection", target.Collection).
		Str("granularity", string(target.Granularity)).
		Logger()

	var res Result

	retained := records
	if target.TickerCap > 0 && len(records) > target.TickerCap {
		retained = records[:target.TickerCap]
		res.Excluded = len(records) - target.TickerCap
		log.Info().
			Int("cap", target.TickerCap).
			Int("available", len(records)).
			Int("excluded", res.Excluded).
			Msg("ticker cap applied")
	}
	res.Tickers = len(retained)

	for _, rec := range retained {
		symbol := rec.Symbol()
		if len(rec.History) == 0 {
			res.EmptyHistories++
			log.Debug().Str("ticker", symbol).Msg("no history, skipped")
			continue
		}

		buckets, skips := Bucketize(rec.History, target.Granularity)
		for _, s := range skips {
			log.Warn().Str("ticker", symbol).Str("date", s.Date).Err(s.Reason).Msg("entry skipped")
		}
		res.SkippedEntries += len(skips)
		res.Buckets += len(buckets)

		keys := make([]string, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b := buckets[k]
			agg, err := Aggregate(b.Entries)
			if err != nil {
				res.SkippedBuckets++
				log.Warn().Str("ticker", symbol).Str("period", k).Err(err).Msg("bucket skipped")
				continue
			}
			res.Documents = append(res.Documents, summarize(symbol, b, agg))
		}
	}

	log.Info().
		Int("tickers", res.Tickers).
		Int("documents", len(res.Documents)).
		Int("skipped_entries", res.SkippedEntries).
		Int("skipped_buckets", res.SkippedBuckets).
		Msg("transform done")

	return res
}

func summarize(symbol string, b *Bucket, agg OHLCV) models.PeriodSummary {
	return models.PeriodSummary{
		Label:     b.Label,
		StartDate: b.StartDate + models.DateSuffix,
		EndDate:   b.EndDate + models.DateSuffix,
		Open:      agg.Open,
		Close:     agg.Close,
		Low:       agg.Low,
		High:      agg.High,
		AvgVolume: agg.AvgVolume,
		MaxVolume: agg.MaxVolume,
		Ticker:    symbol,
	}
}
