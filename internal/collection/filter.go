package collection

import (
	"strings"

	"djsite/internal/search"
)

// FolderView is one folder's slice of a filter result.
type FolderView struct {
	Name     string
	Items    []Item
	Matched  int
	Expanded bool
}

// Result is the display model produced by Filter: sorted folders with their
// matching items, counts, and the query-active flag that decides the status
// wording.
type Result struct {
	Folders      []FolderView
	TotalMatched int
	QueryActive  bool
}

// Filter applies a free-text query to the collection. Items match when the
// normalized concatenation of date, title, label, url, and folder name
// contains the normalized query. With an active query, folders with zero
// matches are dropped entirely; with an empty query every item passes and
// every folder is kept. The summary folder and the most recent year folder
// are marked expanded.
func Filter(c Collection, query string) Result {
	q := search.NormalizeForSearch(query)
	folders := SortFolders(c.Folders)

	latestYear := ""
	for _, f := range folders {
		if isYear(strings.ToLower(f.Name)) {
			latestYear = f.Name
			break
		}
	}

	res := Result{QueryActive: q != ""}
	for _, f := range folders {
		name := f.DisplayName()
		matched := f.Items
		if q != "" {
			matched = make([]Item, 0, len(f.Items))
			for _, it := range f.Items {
				if strings.Contains(searchText(it, name), q) {
					matched = append(matched, it)
				}
			}
			if len(matched) == 0 {
				continue
			}
		}
		res.TotalMatched += len(matched)
		res.Folders = append(res.Folders, FolderView{
			Name:     name,
			Items:    matched,
			Matched:  len(matched),
			Expanded: strings.EqualFold(f.Name, "summary") || (latestYear != "" && f.Name == latestYear),
		})
	}
	return res
}

// searchText joins the searchable fields of an item, normalized, with a
// separator that cannot occur inside a normalized field boundary by accident.
func searchText(it Item, folderName string) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{it.Date, it.Title, it.Label, it.URL, folderName} {
		if s == "" {
			continue
		}
		parts = append(parts, search.NormalizeForSearch(s))
	}
	return strings.Join(parts, " | ")
}
