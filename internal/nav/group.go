package nav

import "strings"

// Entry kinds in the rendered nav.
const (
	EntryLink  = "link"
	EntryGroup = "group"
)

// Entry is one top-level nav element: a direct page link or a dropdown
// group of pages sharing a folder prefix.
type Entry struct {
	Kind   string
	Page   PageDef   // set for links
	Folder string    // set for groups
	Pages  []PageDef // set for groups
}

// Model is the grouped navigation structure.
type Model struct {
	Entries []Entry
}

// GroupPages preserves the manifest order exactly: root pages become links
// in order, and "folder/page" ids are grouped into a dropdown the first
// time that folder appears, keeping pages within a folder in first-seen
// order.
func GroupPages(manifest []PageDef) Model {
	var entries []Entry
	groupIdx := make(map[string]int)

	for _, p := range manifest {
		if p.ID == "" {
			continue
		}
		parts := strings.Split(p.ID, "/")
		if len(parts) == 1 {
			entries = append(entries, Entry{Kind: EntryLink, Page: p})
			continue
		}
		folder := parts[0]
		i, ok := groupIdx[folder]
		if !ok {
			entries = append(entries, Entry{Kind: EntryGroup, Folder: folder})
			i = len(entries) - 1
			groupIdx[folder] = i
		}
		entries[i].Pages = append(entries[i].Pages, p)
	}
	return Model{Entries: entries}
}

// TitleCaseFromFolder turns a folder segment like "dj-marvel" into a nav
// label like "Dj Marvel".
func TitleCaseFromFolder(folder string) string {
	words := strings.FieldsFunc(folder, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
