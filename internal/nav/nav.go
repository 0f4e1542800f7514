// Package nav owns the page manifest and navigation model: route decoding,
// page resolution, and the grouped nav structure. Everything here is pure;
// the caller passes the manifest and the current location in explicitly.
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPageID marks page ids that cannot be mapped to a source path.
var ErrInvalidPageID = errors.New("invalid page id")

// PageDef is one manifest entry.
type PageDef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind,omitempty"`
	Path  string `json:"path,omitempty"`
}

// DisplayTitle falls back to the id when no title is set.
func (p PageDef) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}

// HomePage is the implicit root page injected when the manifest lacks one.
func HomePage() PageDef {
	return PageDef{ID: "home", Title: "Home", Kind: "home"}
}

// CollectionPage is the implicit DJ collection page.
func CollectionPage() PageDef {
	return PageDef{ID: "dj/collection", Title: "Collection", Kind: "dj"}
}

// EnsureSpecialPages returns the manifest with the home and dj/collection
// pages guaranteed present: home is prepended when missing, the collection
// page inserted right after home, and an existing collection entry gets its
// kind normalized.
func EnsureSpecialPages(manifest []PageDef) []PageDef {
	out := append([]PageDef(nil), manifest...)

	hasHome := false
	for _, p := range out {
		if p.ID == "home" {
			hasHome = true
			break
		}
	}
	if !hasHome {
		out = append([]PageDef{HomePage()}, out...)
	}

	collectionAt := -1
	for i, p := range out {
		if p.ID == "dj/collection" {
			collectionAt = i
			break
		}
	}
	if collectionAt == -1 {
		insertAt := 0
		for i, p := range out {
			if p.ID == "home" {
				insertAt = i + 1
				break
			}
		}
		out = append(out[:insertAt], append([]PageDef{CollectionPage()}, out[insertAt:]...)...)
	} else if out[collectionAt].Kind == "" {
		out[collectionAt].Kind = "dj"
	}
	return out
}

// Resolve maps a route id onto the manifest: exact match first, then the
// home page, then a synthetic home when the manifest has none.
func Resolve(manifest []PageDef, routeID string) PageDef {
	for _, p := range manifest {
		if p.ID == routeID {
			return p
		}
	}
	for _, p := range manifest {
		if p.ID == "home" {
			return p
		}
	}
	return HomePage()
}

// DecodeRoute extracts the route id from a location hash. Empty or
// malformed hashes route home.
func DecodeRoute(hash string) string {
	raw := ""
	if strings.HasPrefix(hash, "#/") {
		raw = hash[2:]
	}
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "home"
	}
	return cleaned
}

// EncodeRoute builds the hash fragment for a page id, escaping each path
// segment independently so slashes keep their routing meaning.
func EncodeRoute(id string) string {
	segs := strings.Split(id, "/")
	for i, s := range segs {
		segs[i] = escapeSegment(s)
	}
	return strings.Join(segs, "/")
}

func escapeSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == '~':
			b.WriteRune(r)
		default:
			for _, c := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", c)
			}
		}
	}
	return b.String()
}

// PagePath maps a page id to its Markdown source path under the default
// pages directory.
func PagePath(id string) (string, error) {
	return PagePathIn("pages", id)
}

// PagePathIn maps a page id onto a pages directory. Ids that escape the
// directory are rejected.
func PagePathIn(dir, id string) (string, error) {
	if id == "" || strings.Contains(id, "..") || strings.HasPrefix(id, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPageID, id)
	}
	return dir + "/" + id + ".md", nil
}

// SourcePath resolves the Markdown source for a page: an explicit path wins,
// otherwise the id-derived path.
func SourcePath(p PageDef) (string, error) {
	if p.Path != "" {
		return p.Path, nil
	}
	return PagePath(p.ID)
}

// DefaultSummaryQuery derives the set-summary default query from a page
// id's first path segment; ids without a slash yield no default.
func DefaultSummaryQuery(id string) string {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[:i]
	}
	return ""
}
