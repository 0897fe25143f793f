package rollup

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/rollup/internal/domain/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestKeyAndLabel(t *testing.T) {
	cases := []struct {
		date  string
		g     models.Granularity
		key   string
		label string
	}{
		{"2024-03-15", models.Daily, "2024-03-15", "2024-03-15"},
		{"2024-03-15", models.Monthly, "2024-03", "2024-03"},
		{"2024-03-15", models.Yearly, "2024", "2024"},
		{"2024-03-15", models.OneYear, "2024-03", "2024-03-1Y"},
		{"2024-03-15", models.ThreeYears, "2024-03", "2024-03-3Y"},
		{"2024-03-15", models.FiveYears, "2024-03", "2024-03-5Y"},
		// Monday 2024-01-01 precedes the first Sunday: week 00 in the key, ISO week 01 in the label.
		{"2024-01-01", models.Weekly, "2024-W00", "2024-W01"},
		{"2024-01-07", models.Weekly, "2024-W00", "2024-W01"},
		{"2024-01-08", models.Weekly, "2024-W01", "2024-W02"},
		{"2024-03-15", models.Weekly, "2024-W10", "2024-W11"},
		// Friday 2021-01-01 belongs to the week of Monday 2020-12-28 and to ISO week 53 of 2020.
		{"2021-01-01", models.Weekly, "2020-W52", "2021-W53"},
		{"2020-12-28", models.Weekly, "2020-W52", "2020-W53"},
	}

	for _, tc := range cases {
		t.Run(string(tc.g)+"/"+tc.date, func(t *testing.T) {
			p, err := KeyAndLabel(mustDate(t, tc.date), tc.g)
			require.NoError(t, err)
			assert.Equal(t, tc.key, p.Key, "key")
			assert.Equal(t, tc.label, p.Label, "label")
		})
	}
}

func TestKeyAndLabel_DeterministicPrefixes(t *testing.T) {
	start := mustDate(t, "2019-12-25")
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		iso := d.Format(dateLayout)

		m1, err := KeyAndLabel(d, models.Monthly)
		require.NoError(t, err)
		m2, _ := KeyAndLabel(d, models.Monthly)
		assert.Equal(t, m1, m2)
		assert.Equal(t, iso[:7], m1.Key)

		y, err := KeyAndLabel(d, models.Yearly)
		require.NoError(t, err)
		assert.Equal(t, iso[:4], y.Key)

		w, err := KeyAndLabel(d, models.Weekly)
		require.NoError(t, err)
		assert.True(t, strings.Contains(w.Key, "-W"), "weekly key %q", w.Key)
	}
}

func TestKeyAndLabel_UnknownGranularity(t *testing.T) {
	_, err := KeyAndLabel(mustDate(t, "2024-01-02"), models.Granularity("hourly"))
	assert.ErrorIs(t, err, ErrUnknownGranularity)
}

func TestParseDate(t *testing.T) {
	for _, bad := range []string{"", "   ", "2024/01/02", "02-01-2024", "2024-13-01", "not a date"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
}
