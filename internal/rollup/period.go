// Package rollup buckets daily price history into calendar periods and
// reduces every bucket to one OHLCV summary.
package rollup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/rollup/internal/domain/models"
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidDate marks an entry whose Date is empty or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid entry date")
	// ErrUnknownGranularity is returned for granularities outside models.Granularities.
	ErrUnknownGranularity = errors.New("unknown granularity")
)

// Period is the bucket a date falls into for one granularity.
//
// Key groups entries; Label is what gets persisted. They are not always
// derived the same way (see weeklyKey and weeklyLabel).
type Period struct {
	Key   string
	Label string
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	return d, nil
}

// KeyAndLabel maps a date to its bucket for the given granularity.
func KeyAndLabel(date time.Time, g models.Granularity) (Period, error) {
	iso := date.Format(dateLayout)

	switch g {
	case models.Daily:
		return Period{Key: iso, Label: iso}, nil
	case models.Weekly:
		return Period{Key: weeklyKey(date), Label: weeklyLabel(date)}, nil
	case models.Monthly:
		return Period{Key: iso[:7], Label: iso[:7]}, nil
	case models.Yearly:
		return Period{Key: iso[:4], Label: iso[:4]}, nil
	case models.OneYear:
		return Period{Key: iso[:7], Label: iso[:7] + "-1Y"}, nil
	case models.ThreeYears:
		return Period{Key: iso[:7], Label: iso[:7] + "-3Y"}, nil
	case models.FiveYears:
		return Period{Key: iso[:7], Label: iso[:7] + "-5Y"}, nil
	default:
		return Period{}, fmt.Errorf("%w: %q", ErrUnknownGranularity, g)
	}
}

// weeklyKey formats the Monday starting the date's week as "YYYY-Wnn", where
// nn counts weeks with Sunday as the first weekday and the days before the
// year's first Sunday fall in week 00.
func weeklyKey(date time.Time) string {
	monday := date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7))
	yday := monday.YearDay() - 1
	week := (yday + 7 - int(monday.Weekday())) / 7
	return fmt.Sprintf("%04d-W%02d", monday.Year(), week)
}

// weeklyLabel pairs the date's calendar year with its ISO week number, so the
// first days of January can carry the previous year's week 52/53.
func weeklyLabel(date time.Time) string {
	_, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", date.Year(), week)
}
