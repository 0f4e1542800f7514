// Package pages discovers Markdown page sources on disk and cross-checks
// them against the manifest.
package pages

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"djsite/internal/nav"
)

// Scan walks the pages directory and returns the page ids of all Markdown
// sources found, sorted. Hidden directories are skipped.
func Scan(root string) ([]string, error) {
	ids := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(filepath.ToSlash(rel), ".md"))
		return nil
	})
	sort.Strings(ids)
	return ids, err
}

// Report lists the mismatches between a manifest and the discovered page
// sources.
type Report struct {
	MissingSources []string // manifest entries with no Markdown source
	Unlisted       []string // Markdown sources with no manifest entry
}

// Clean reports whether the manifest and the sources agree.
func (r Report) Clean() bool {
	return len(r.MissingSources) == 0 && len(r.Unlisted) == 0
}

// Diff compares manifest entries against discovered source ids. Entries
// with a kind (home, dj) render without a Markdown source and are skipped;
// entries with an explicit path are assumed managed outside the pages
// directory.
func Diff(manifest []nav.PageDef, sourceIDs []string) Report {
	listed := make(map[string]bool, len(manifest))
	found := make(map[string]bool, len(sourceIDs))
	for _, id := range sourceIDs {
		found[id] = true
	}

	var report Report
	for _, p := range manifest {
		if p.ID == "" || p.Kind != "" || p.Path != "" {
			continue
		}
		listed[p.ID] = true
		if !found[p.ID] {
			report.MissingSources = append(report.MissingSources, p.ID)
		}
	}
	for _, id := range sourceIDs {
		if !listed[id] {
			report.Unlisted = append(report.Unlisted, id)
		}
	}
	return report
}
