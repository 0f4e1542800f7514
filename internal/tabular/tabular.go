// Package tabular implements the flat widget datasets: division tables
// (rows under named headers) and the live-history feed. Both share the same
// filtering discipline: a row matches when the normalized join of its cells
// contains the normalized query.
package tabular

import (
	"strings"

	"djsite/internal/search"
)

// Division is one named table partition with its own headers and rows.
type Division struct {
	Division string     `json:"division"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
}

// DisplayName returns the division name with a placeholder for unnamed ones.
func (d Division) DisplayName() string {
	if d.Division == "" {
		return "UnknownDivision"
	}
	return d.Division
}

// Table is the submitted-music dataset.
type Table struct {
	GeneratedAt string     `json:"generated_at"`
	Divisions   []Division `json:"divisions"`
}

// DivisionNames returns the display names of all divisions in order.
func (t Table) DivisionNames() []string {
	names := make([]string, len(t.Divisions))
	for i, d := range t.Divisions {
		names[i] = d.DisplayName()
	}
	return names
}

// Entry is one live-history record.
type Entry struct {
	DT     string `json:"dt"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// History is the live-history dataset.
type History struct {
	GeneratedAt string  `json:"generated_at"`
	Entries     []Entry `json:"entries"`
}

// DivisionView is the display model for one filtered division table.
type DivisionView struct {
	Headers     []string
	Rows        [][]string
	Count       int
	QueryActive bool
}

// HistoryView is the display model for the filtered live-history feed.
type HistoryView struct {
	Entries     []Entry
	Count       int
	QueryActive bool
}

// NormalizeRows returns rows where every row has exactly len(headers)
// cells: short rows are right-padded with empty strings, long rows are
// truncated. The operation is total and idempotent.
func NormalizeRows(headers []string, rows [][]string) [][]string {
	width := len(headers)
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, width)
		copy(row, r)
		out[i] = row
	}
	return out
}

// FilterDivision normalizes the division's rows and keeps those whose
// normalized cell join contains the normalized query. An empty query keeps
// every row.
func FilterDivision(d Division, query string) DivisionView {
	q := search.NormalizeForSearch(query)
	rows := NormalizeRows(d.Headers, d.Rows)
	if q == "" {
		return DivisionView{Headers: d.Headers, Rows: rows, Count: len(rows)}
	}
	filtered := make([][]string, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(search.NormalizeForSearch(strings.Join(r, " | ")), q) {
			filtered = append(filtered, r)
		}
	}
	return DivisionView{Headers: d.Headers, Rows: filtered, Count: len(filtered), QueryActive: true}
}

// FilterHistory keeps entries whose normalized dt/title/artist concatenation
// contains the normalized query.
func FilterHistory(h History, query string) HistoryView {
	q := search.NormalizeForSearch(query)
	if q == "" {
		return HistoryView{Entries: h.Entries, Count: len(h.Entries)}
	}
	filtered := make([]Entry, 0, len(h.Entries))
	for _, e := range h.Entries {
		if strings.Contains(entryText(e), q) {
			filtered = append(filtered, e)
		}
	}
	return HistoryView{Entries: filtered, Count: len(filtered), QueryActive: true}
}

func entryText(e Entry) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{e.DT, e.Title, e.Artist} {
		if s == "" {
			continue
		}
		parts = append(parts, search.NormalizeForSearch(s))
	}
	return strings.Join(parts, " | ")
}
