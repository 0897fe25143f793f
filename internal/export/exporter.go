package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/rollup/internal/domain/models"
)

// Exporter writes each collection to <dir>/<collection>.<ext>.
type Exporter struct {
	dir   string
	saver Saver
}

// New builds an Exporter for dir and format. The directory is created on
// first write.
func New(dir, format string) (*Exporter, error) {
	if dir == "" {
		return nil, fmt.Errorf("export: empty directory")
	}
	s := NewSaver(format)
	if s == nil {
		return nil, fmt.Errorf("export: unsupported format %q (use: parquet, json)", format)
	}
	return &Exporter{dir: dir, saver: s}, nil
}

// Export writes docs for collection, replacing any previous file, and
// returns the file path.
func (e *Exporter) Export(collection string, docs []models.PeriodSummary) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", e.dir, err)
	}
	path := filepath.Join(e.dir, collection+"."+e.saver.Extension())
	if err := e.saver.Save(docs, path); err != nil {
		return "", fmt.Errorf("export %s: %w", collection, err)
	}
	return path, nil
}
