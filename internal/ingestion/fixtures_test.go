package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"github.com/guttosm/rollup/internal/domain/models"
)

var errBoom = errors.New("boom")

// fakeStore records inserts per collection and can be told to misbehave.
type fakeStore struct {
	mu       sync.Mutex
	docs     map[string][]models.PeriodSummary
	batches  map[string][]int
	pingErr  error
	failWith map[string]error // collection -> error, nothing inserted
	partial  map[string]int   // collection -> rows stored per batch before error
	panicOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:     map[string][]models.PeriodSummary{},
		batches:  map[string][]int{},
		failWith: map[string]error{},
		partial:  map[string]int{},
	}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) InsertBatch(_ context.Context, collection string, docs []models.PeriodSummary) (int, error) {
	if collection == f.panicOn {
		panic("store exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches[collection] = append(f.batches[collection], len(docs))
	if err, ok := f.failWith[collection]; ok {
		return 0, err
	}
	if n, ok := f.partial[collection]; ok {
		n = min(n, len(docs))
		f.docs[collection] = append(f.docs[collection], docs[:n]...)
		return n, errBoom
	}
	f.docs[collection] = append(f.docs[collection], docs...)
	return len(docs), nil
}

func (f *fakeStore) FindByTicker(_ context.Context, collection, ticker string) ([]models.PeriodSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PeriodSummary
	for _, d := range f.docs[collection] {
		if d.Ticker == ticker {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) DistinctTickers(context.Context, string) ([]string, error) { return nil, nil }

func (f *fakeStore) Close(context.Context) error { return nil }

// history returns n consecutive calendar days of valid entries starting at from.
func history(from string, n int) []models.RawEntry {
	d, _ := time.Parse("2006-01-02", from)
	out := make([]models.RawEntry, 0, n)
	for i := range n {
		p := float64(100 + i)
		out = append(out, models.RawEntry{
			Date:   d.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   null.FloatFrom(p),
			High:   null.FloatFrom(p + 2),
			Low:    null.FloatFrom(p - 1),
			Close:  null.FloatFrom(p + 1),
			Volume: models.VolumeFrom(int64(1000 + i)),
		})
	}
	return out
}

func record(symbol string, h []models.RawEntry) models.TickerRecord {
	return models.TickerRecord{Info: map[string]any{"symbol": symbol}, History: h}
}

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tickers_data.json")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return p
}

const sampleArtifact = `[
  {
    "info": {"symbol": "BBCA.JK", "longName": "Bank Central Asia"},
    "history": [
      {"Date": "2024-01-02", "Open": 9400.0, "High": 9500.0, "Low": 9350.0, "Close": 9450.0, "Volume": 1000, "Dividends": 0, "Stock Splits": 0},
      {"Date": "2024-01-03", "Open": null, "High": 9600.0, "Low": 9300.0, "Close": 9550.0, "Volume": null},
      {"Date": "2024-02-01", "Open": 9700.0, "High": 9800.0, "Low": 9650.0, "Close": 9750.0, "Volume": 3000}
    ],
    "fetch_date": "2024-02-02 10:00:00",
    "total_records": 3
  },
  {
    "info": {"longName": "no symbol"},
    "history": [
      {"Date": "2024-01-02", "Open": 10.0, "High": 11.0, "Low": 9.0, "Close": 10.5, "Volume": 50}
    ]
  },
  {
    "info": {"symbol": "EMPTY.JK"},
    "history": []
  }
]`
