package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/guttosm/rollup/config"
	"github.com/guttosm/rollup/internal/domain/models"
	"github.com/guttosm/rollup/internal/storage"
)

// ErrUnknownGranularity is returned for a granularity with no configured collection.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Summaries is the result of a summary lookup.
type Summaries struct {
	Ticker      string
	Granularity models.Granularity
	Collection  string
	Items       []models.PeriodSummary
}

// Tickers is the result of a ticker listing.
type Tickers struct {
	Granularity models.Granularity
	Collection  string
	Items       []string
}

// SummaryService reads rollups back out of the store.
type SummaryService interface {
	GetSummaries(ctx context.Context, ticker, granularity string) (*Summaries, error)
	ListTickers(ctx context.Context, granularity string) (*Tickers, error)
}

type summaryService struct {
	store   storage.SummaryStore
	targets config.LoaderConfig
}

// NewSummaryService resolves granularities through the loader's targets, so
// reads hit the same collections the loader writes.
func NewSummaryService(store storage.SummaryStore, targets config.LoaderConfig) SummaryService {
	return &summaryService{store: store, targets: targets}
}

func (s *summaryService) collection(granularity string) (models.Granularity, string, error) {
	g, err := models.ParseGranularity(granularity)
	if err != nil {
		return "", "", fmt.Errorf("%w %q", ErrUnknownGranularity, granularity)
	}
	coll, ok := s.targets.CollectionFor(g)
	if !ok {
		return "", "", fmt.Errorf("%w %q: not configured", ErrUnknownGranularity, granularity)
	}
	return g, coll, nil
}

// GetSummaries returns every stored period of ticker, ordered by label.
// A ticker with no rows yields an empty Items slice, not an error.
func (s *summaryService) GetSummaries(ctx context.Context, ticker, granularity string) (*Summaries, error) {
	g, coll, err := s.collection(granularity)
	if err != nil {
		return nil, err
	}

	items, err := s.store.FindByTicker(ctx, coll, ticker)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Label < items[j].Label })

	return &Summaries{Ticker: ticker, Granularity: g, Collection: coll, Items: items}, nil
}

// ListTickers returns the distinct tickers stored for granularity.
func (s *summaryService) ListTickers(ctx context.Context, granularity string) (*Tickers, error) {
	g, coll, err := s.collection(granularity)
	if err != nil {
		return nil, err
	}
	items, err := s.store.DistinctTickers(ctx, coll)
	if err != nil {
		return nil, err
	}
	return &Tickers{Granularity: g, Collection: coll, Items: items}, nil
}
