// Package export writes a target's summaries to a local file next to the
// store load, one file per collection.
package export

import (
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"

	"github.com/guttosm/rollup/internal/domain/models"
)

// Saver writes a batch of summaries to path in one file format.
type Saver interface {
	Save(docs []models.PeriodSummary, path string) error
	Extension() string
}

// NewSaver returns the Saver for format (parquet or json), or nil if the
// format is not supported.
func NewSaver(format string) Saver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// ParquetSaver stores summaries as Parquet using the struct tags of PeriodSummary.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(docs []models.PeriodSummary, path string) error {
	return parquet.WriteFile(path, docs)
}

// JSONSaver stores summaries as an indented JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(docs []models.PeriodSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if docs == nil {
		docs = []models.PeriodSummary{}
	}
	if err := enc.Encode(docs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
