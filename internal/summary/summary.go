// Package summary implements the set-summary matcher: given a performer or
// show name it finds every matching set across the collection, tolerating
// punctuation, casing, and spacing differences via token-normalized
// matching.
package summary

import (
	"errors"
	"strings"

	"djsite/internal/collection"
	"djsite/internal/search"
)

// ErrMissingQuery is returned when the query is empty after trimming. The
// caller reports it inline; it is user input, not a programming error.
var ErrMissingQuery = errors.New("missing query for summary")

// SampleCap bounds the no-match fallback sample.
const SampleCap = 10

// Section is one folder's group of matching sets.
type Section struct {
	Name     string
	Items    []collection.Item
	Expanded bool
}

// Result holds either the grouped matches or, when nothing matched, a
// bounded sample of set labels to help debug the query.
type Result struct {
	Query        string
	TotalMatched int
	Sections     []Section
	Samples      []string
}

// Summarize finds all sets whose title or label matches the query. An item
// matches when the normalized concatenation contains the normalized query as
// a substring, or when the token-normalized forms match the same way (so
// "b2b" finds "B-2-B Mashup"). Matches are grouped by folder and the groups
// ordered summary-first, years descending, rest alphabetical.
func Summarize(c collection.Collection, query string) (Result, error) {
	name := strings.TrimSpace(query)
	if name == "" {
		return Result{}, ErrMissingQuery
	}
	q := search.NormalizeForSearch(name)
	qToken := search.NormalizeToken(name)

	grouped := make(map[string][]collection.Item)
	var order []string
	total := 0
	for _, folder := range c.Folders {
		for _, it := range folder.Items {
			hay := matchText(it)
			if !strings.Contains(hay, q) &&
				!(qToken != "" && strings.Contains(search.NormalizeToken(hay), qToken)) {
				continue
			}
			if _, seen := grouped[folder.Name]; !seen {
				order = append(order, folder.Name)
			}
			grouped[folder.Name] = append(grouped[folder.Name], it)
			total++
		}
	}

	if total == 0 {
		return Result{Query: name, Samples: sampleLabels(c)}, nil
	}

	collection.SortNames(order)
	sections := make([]Section, 0, len(order))
	for _, folderName := range order {
		sections = append(sections, Section{
			Name:     folderName,
			Items:    grouped[folderName],
			Expanded: strings.EqualFold(folderName, "summary"),
		})
	}
	return Result{Query: name, TotalMatched: total, Sections: sections}, nil
}

func matchText(it collection.Item) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{it.Title, it.Label} {
		if s == "" {
			continue
		}
		parts = append(parts, search.NormalizeForSearch(s))
	}
	return strings.Join(parts, " | ")
}

// sampleLabels collects up to SampleCap item labels across folders in
// first-found order, short-circuiting once the cap is reached.
func sampleLabels(c collection.Collection) []string {
	samples := make([]string, 0, SampleCap)
	for _, folder := range c.Folders {
		for _, it := range folder.Items {
			label := it.Label
			if label == "" {
				label = it.Title
			}
			if label == "" {
				continue
			}
			samples = append(samples, label)
			if len(samples) >= SampleCap {
				return samples
			}
		}
	}
	return samples
}
