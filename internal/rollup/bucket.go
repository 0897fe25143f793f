package rollup

import (
	"github.com/guttosm/rollup/internal/domain/models"
)

// Bucket holds the entries of one ticker that fall into the same period.
//
// StartDate and EndDate are ISO dates; ISO strings order lexicographically,
// so they are widened by plain string comparison.
type Bucket struct {
	Key       string
	Label     string
	StartDate string
	EndDate   string
	Entries   []models.RawEntry
}

// Skip describes an entry Bucketize left out and why.
type Skip struct {
	Date   string
	Reason error
}

// Bucketize groups a ticker's history by period key.
//
// Entries whose date cannot be parsed are returned as skips instead of
// aborting; every other entry lands in exactly one bucket. Entry order
// inside a bucket follows input order. A bucket keeps the label computed for
// the first entry it received.
func Bucketize(history []models.RawEntry, g models.Granularity) (map[string]*Bucket, []Skip) {
	buckets := make(map[string]*Bucket)
	var skips []Skip

	for _, entry := range history {
		date, err := ParseDate(entry.Date)
		if err != nil {
			skips = append(skips, Skip{Date: entry.Date, Reason: err})
			continue
		}
		period, err := KeyAndLabel(date, g)
		if err != nil {
			skips = append(skips, Skip{Date: entry.Date, Reason: err})
			continue
		}

		iso := date.Format(dateLayout)
		b, ok := buckets[period.Key]
		if !ok {
			b = &Bucket{Key: period.Key, Label: period.Label, StartDate: iso, EndDate: iso}
			buckets[period.Key] = b
		}
		b.Entries = append(b.Entries, entry)
		if iso > b.EndDate {
			b.EndDate = iso
		}
		if iso < b.StartDate {
			b.StartDate = iso
		}
	}

	return buckets, skips
}
