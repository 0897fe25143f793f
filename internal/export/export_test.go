package export

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"

	"github.com/guttosm/rollup/internal/domain/models"
)

func docs() []models.PeriodSummary {
	return []models.PeriodSummary{
		{Label: "2024", StartDate: "2024-01-02T00:00:00.000+00:00", EndDate: "2024-12-30T00:00:00.000+00:00", Open: 9000, Close: 9800, Low: 8700, High: 10200, AvgVolume: 42000, MaxVolume: 91000, Ticker: "BBCA.JK"},
		{Label: "2024", StartDate: "2024-01-02T00:00:00.000+00:00", EndDate: "2024-12-30T00:00:00.000+00:00", Open: 7000, Close: 6500, Low: 6100, High: 7400, AvgVolume: 1200, MaxVolume: 5000, Ticker: "AALI.JK"},
	}
}

func TestNewSaver(t *testing.T) {
	cases := []struct {
		format string
		ext    string
	}{
		{"parquet", "parquet"},
		{" JSON ", "json"},
		{"csv", ""},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			s := NewSaver(tc.format)
			if tc.ext == "" {
				if s != nil {
					t.Fatalf("expected nil saver for %q", tc.format)
				}
				return
			}
			if s == nil || s.Extension() != tc.ext {
				t.Fatalf("want %s saver, got %v", tc.ext, s)
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("", "json"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
	if _, err := New(t.TempDir(), "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestExport_JSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	e, err := New(dir, "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := e.Export("data_tahunan", docs())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != filepath.Join(dir, "data_tahunan.json") {
		t.Fatalf("unexpected path %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got []models.PeriodSummary
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != docs()[0] || got[1] != docs()[1] {
		t.Fatalf("unexpected docs: %+v", got)
	}
}

func TestExport_JSONEmptyIsArray(t *testing.T) {
	e, err := New(t.TempDir(), "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, err := e.Export("data_harian", nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "[]\n" {
		t.Fatalf("want empty array, got %q", raw)
	}
}

func TestExport_Parquet(t *testing.T) {
	e, err := New(t.TempDir(), "parquet")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, err := e.Export("data_tahunan", docs())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := parquet.ReadFile[models.PeriodSummary](path)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(got) != 2 || got[0] != docs()[0] || got[1] != docs()[1] {
		t.Fatalf("unexpected rows: %+v", got)
	}
}
