package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRows_PadsAndTruncates(t *testing.T) {
	headers := []string{"Date", "Artist"}
	rows := [][]string{
		{},
		{"2024-01-01"},
		{"2024-01-02", "A"},
		{"2024-01-03", "B", "extra"},
	}

	out := NormalizeRows(headers, rows)
	require.Len(t, out, 4)
	assert.Equal(t, []string{"", ""}, out[0])
	assert.Equal(t, []string{"2024-01-01", ""}, out[1])
	assert.Equal(t, []string{"2024-01-02", "A"}, out[2])
	assert.Equal(t, []string{"2024-01-03", "B"}, out[3])
}

func TestNormalizeRows_Idempotent(t *testing.T) {
	headers := []string{"a", "b", "c"}
	rows := [][]string{{"1"}, {"1", "2", "3", "4"}}

	once := NormalizeRows(headers, rows)
	twice := NormalizeRows(headers, once)
	assert.Equal(t, once, twice)
}

func TestNormalizeRows_ZeroHeaders(t *testing.T) {
	out := NormalizeRows(nil, [][]string{{"x", "y"}})
	require.Len(t, out, 1)
	assert.Empty(t, out[0])
}

func TestFilterDivision(t *testing.T) {
	d := Division{
		Division: "Pro",
		Headers:  []string{"Date", "Artist", "Track"},
		Rows: [][]string{
			{"2024-01-01", "DJ Marvel", "Opener"},
			{"2024-02-01", "Someone Else"},
			{"2024-03-01", "Third", "Closer"},
		},
	}

	all := FilterDivision(d, "")
	assert.Equal(t, 3, all.Count)
	assert.False(t, all.QueryActive)
	// Short row was padded before filtering.
	assert.Equal(t, []string{"2024-02-01", "Someone Else", ""}, all.Rows[1])

	hit := FilterDivision(d, "marvel")
	assert.True(t, hit.QueryActive)
	require.Equal(t, 1, hit.Count)
	assert.Equal(t, "DJ Marvel", hit.Rows[0][1])

	none := FilterDivision(d, "zzz")
	assert.Equal(t, 0, none.Count)
	assert.Empty(t, none.Rows)
}

func TestFilterHistory(t *testing.T) {
	h := History{Entries: []Entry{
		{DT: "2024-05-01 20:00", Title: "Sunset Mix", Artist: "DJ Marvel"},
		{DT: "2024-05-01 21:00", Title: "Night Drive", Artist: "Other"},
		{Title: "Untimed"},
	}}

	all := FilterHistory(h, "")
	assert.Equal(t, 3, all.Count)
	assert.False(t, all.QueryActive)

	hit := FilterHistory(h, "sunset")
	assert.True(t, hit.QueryActive)
	require.Equal(t, 1, hit.Count)
	assert.Equal(t, "Sunset Mix", hit.Entries[0].Title)

	byTime := FilterHistory(h, "21:00")
	assert.Equal(t, 1, byTime.Count)
}

func TestDivisionNames_Defaults(t *testing.T) {
	tab := Table{Divisions: []Division{{Division: "Open"}, {}}}
	assert.Equal(t, []string{"Open", "UnknownDivision"}, tab.DivisionNames())
}
