package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/guttosm/rollup/internal/domain/models"
	"github.com/guttosm/rollup/internal/logger"
)

// ErrReadArtifact wraps every failure to open or decode the input artifact.
var ErrReadArtifact = errors.New("read input artifact")

// ReadArtifact decodes the JSON array written by the fetch step.
//
// The fetch step writes NaN, Infinity and -Infinity as bare tokens; they
// are read as null. When limit > 0 only the first limit records are kept.
// This applies before any per-target ticker cap.
func ReadArtifact(path string, limit int) ([]models.TickerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadArtifact, err)
	}

	var records []models.TickerRecord
	if err := json.Unmarshal(nullNonFinite(data), &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrReadArtifact, path, err)
	}

	total := len(records)
	if limit > 0 && total > limit {
		records = records[:limit]
	}

	logger.L().Info().
		Str("path", path).
		Int("records", total).
		Int("retained", len(records)).
		Msg("input artifact loaded")

	return records, nil
}

var nonFinite = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// nullNonFinite rewrites bare non-finite number tokens to null. String
// contents are left untouched.
func nullNonFinite(data []byte) []byte {
	if !bytes.Contains(data, []byte("NaN")) && !bytes.Contains(data, []byte("Infinity")) {
		return data
	}

	out := make([]byte, 0, len(data))
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					out = append(out, data[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if tok := nonFiniteAt(data[i:]); tok > 0 {
			out = append(out, "null"...)
			i += tok - 1
			continue
		}
		out = append(out, c)
	}
	return out
}

func nonFiniteAt(b []byte) int {
	for _, tok := range nonFinite {
		if bytes.HasPrefix(b, tok) {
			return len(tok)
		}
	}
	return 0
}

// FinalizeArtifact deletes the input file after a complete run. After a
// partial run the file is kept so the next run can retry.
func FinalizeArtifact(path string, report Report) error {
	if !report.Complete() {
		logger.L().Warn().
			Str("path", path).
			Int("successful", report.SuccessfulTargets).
			Int("total", report.TotalTargets).
			Msg("some targets failed, input artifact kept")
		return nil
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove input artifact %s: %w", path, err)
	}
	logger.L().Info().Str("path", path).Msg("input artifact removed")
	return nil
}
