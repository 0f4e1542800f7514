package collection

import (
	"sort"
	"strconv"
	"strings"
)

// Folder names order in three tiers: the "summary" folder first, four-digit
// year folders next (most recent year first), everything else last in
// case-insensitive alphabetical order.
type folderKey struct {
	group int
	year  int
	label string
}

func sortKey(name string) folderKey {
	lower := strings.ToLower(name)
	if lower == "summary" {
		return folderKey{group: 0, year: -1, label: lower}
	}
	if isYear(lower) {
		y, _ := strconv.Atoi(lower)
		return folderKey{group: 1, year: y, label: lower}
	}
	return folderKey{group: 2, year: -1, label: lower}
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NameLess reports whether folder name a orders before folder name b.
func NameLess(a, b string) bool {
	ka, kb := sortKey(a), sortKey(b)
	if ka.group != kb.group {
		return ka.group < kb.group
	}
	if ka.group == 1 {
		return ka.year > kb.year
	}
	return ka.label < kb.label
}

// SortNames sorts folder names in place with the domain order. The sort is
// stable so equal keys keep their left-to-right input order.
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NameLess(names[i], names[j])
	})
}

// SortFolders returns a sorted copy of folders in the domain order.
func SortFolders(folders []Folder) []Folder {
	out := append([]Folder(nil), folders...)
	sort.SliceStable(out, func(i, j int) bool {
		return NameLess(out[i].Name, out[j].Name)
	})
	return out
}
