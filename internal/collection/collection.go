// Package collection implements the searchable DJ set collection: a
// hierarchical dataset of folders and items with free-text filtering and
// domain folder ordering (summary first, years descending, rest
// alphabetical).
package collection

// Item is one DJ set entry inside a folder. All fields are optional in the
// source data and default to the empty string.
type Item struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// DisplayLabel resolves the user-facing label: label, then title, then a
// placeholder.
func (it Item) DisplayLabel() string {
	if it.Label != "" {
		return it.Label
	}
	if it.Title != "" {
		return it.Title
	}
	return "(untitled)"
}

// Href returns the item link, defaulting to an inert placeholder when the
// source data has no URL.
func (it Item) Href() string {
	if it.URL == "" {
		return "#"
	}
	return it.URL
}

// Folder is a named group of items. Duplicate names are legal in the data
// model; consumers merge them visually under one grouping key.
type Folder struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// DisplayName returns the folder name with a placeholder for unnamed folders.
func (f Folder) DisplayName() string {
	if f.Name == "" {
		return "(Unnamed folder)"
	}
	return f.Name
}

// Collection is the full DJ set dataset as fetched from the collection JSON.
type Collection struct {
	GeneratedAt string   `json:"generated_at"`
	Folders     []Folder `json:"folders"`
}

// ItemCount returns the total number of items across all folders.
func (c Collection) ItemCount() int {
	n := 0
	for _, f := range c.Folders {
		n += len(f.Items)
	}
	return n
}
