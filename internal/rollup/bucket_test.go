package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/rollup/internal/domain/models"
)

func TestBucketize_NeverDropsValidEntries(t *testing.T) {
	history := []models.RawEntry{
		entry("2024-01-30", 1, 1, 1, 1, 1),
		entry("2024-02-01", 1, 1, 1, 1, 1),
		{Date: ""},
		entry("2024-01-02", 1, 1, 1, 1, 1),
		{Date: "2024/02/02"},
		entry("2024-12-31", 1, 1, 1, 1, 1),
		entry("2025-01-02", 1, 1, 1, 1, 1),
	}

	for _, g := range models.Granularities {
		t.Run(string(g), func(t *testing.T) {
			buckets, skips := Bucketize(history, g)
			total := 0
			for _, b := range buckets {
				total += len(b.Entries)
			}
			assert.Equal(t, 5, total)
			require.Len(t, skips, 2)
			assert.ErrorIs(t, skips[0].Reason, ErrInvalidDate)
			assert.Equal(t, "2024/02/02", skips[1].Date)
		})
	}
}

func TestBucketize_StartEndDates(t *testing.T) {
	history := []models.RawEntry{
		entry("2024-01-15", 1, 1, 1, 1, 1),
		entry("2024-01-31", 1, 1, 1, 1, 1),
		entry("2024-01-02", 1, 1, 1, 1, 1),
	}
	buckets, skips := Bucketize(history, models.Monthly)
	require.Empty(t, skips)
	require.Len(t, buckets, 1)

	b := buckets["2024-01"]
	require.NotNil(t, b)
	assert.Equal(t, "2024-01", b.Label)
	assert.Equal(t, "2024-01-02", b.StartDate)
	assert.Equal(t, "2024-01-31", b.EndDate)
	assert.Len(t, b.Entries, 3)
}

func TestBucketize_WindowsShareMonthlyKeys(t *testing.T) {
	history := []models.RawEntry{
		entry("2023-11-30", 1, 1, 1, 1, 1),
		entry("2023-12-01", 1, 1, 1, 1, 1),
		entry("2023-12-29", 1, 1, 1, 1, 1),
	}
	monthly, _ := Bucketize(history, models.Monthly)
	for _, g := range []models.Granularity{models.OneYear, models.ThreeYears, models.FiveYears} {
		windows, _ := Bucketize(history, g)
		require.Len(t, windows, len(monthly))
		for k, b := range monthly {
			require.Contains(t, windows, k)
			assert.Len(t, windows[k].Entries, len(b.Entries))
			assert.NotEqual(t, b.Label, windows[k].Label)
		}
	}
}

func TestBucketize_WeeklyFirstLabelWins(t *testing.T) {
	// Monday 2024-12-30 and Thursday 2025-01-02 share a week bucket.
	history := []models.RawEntry{
		entry("2024-12-30", 1, 1, 1, 1, 1),
		entry("2025-01-02", 1, 1, 1, 1, 1),
	}
	buckets, _ := Bucketize(history, models.Weekly)
	require.Len(t, buckets, 1)
	for _, b := range buckets {
		assert.Equal(t, "2024-W01", b.Label)
		assert.Equal(t, "2024-12-30", b.StartDate)
		assert.Equal(t, "2025-01-02", b.EndDate)
	}
}
