package widget

import (
	"fmt"
	"path"
	"strings"

	"djsite/internal/collection"
	"djsite/internal/search"
	"djsite/internal/summary"
	"djsite/internal/tabular"
)

// Fragment builders produce the widget HTML from display models. All
// dynamic text goes through the escape helpers; the output is spliced into
// sanitized page HTML by the hydrator and served directly by the fragment
// endpoints.

func generatedAt(ts string) string {
	if ts == "" {
		return "(unknown)"
	}
	return search.EscapeHTML(ts)
}

func sourceLine(src string) string {
	name := path.Base(src)
	return fmt.Sprintf(
		`<p class="widget-source">Data source: <a href="%s" target="_blank" rel="noopener">%s</a></p>`,
		search.EscapeAttr(src), search.EscapeHTML(name),
	)
}

func metaLine(marker, ts string) string {
	return fmt.Sprintf(
		`<div data-%s-meta class="widget-meta"><strong>Generated:</strong> <code>%s</code></div>`,
		marker, generatedAt(ts),
	)
}

func searchControls(marker string) string {
	var b strings.Builder
	b.WriteString(`<label>Search:</label> `)
	fmt.Fprintf(&b, `<input data-%s-search type="search" placeholder="Type to filter…" />`, marker)
	return b.String()
}

func statusLine(marker, text string) string {
	return fmt.Sprintf(`<div data-%s-status class="widget-status">%s</div>`, marker, search.EscapeHTML(text))
}

// CollectionStatus picks the status wording for a collection result.
func CollectionStatus(res collection.Result) string {
	if res.QueryActive {
		return fmt.Sprintf("%d matching item(s)", res.TotalMatched)
	}
	return fmt.Sprintf("%d total item(s)", res.TotalMatched)
}

// CollectionWidget renders the full DJ collection widget: data source,
// search controls, status, dataset meta, and the folder sections.
func CollectionWidget(src string, data collection.Collection, query string) string {
	res := collection.Filter(data, query)
	var b strings.Builder
	b.WriteString(sourceLine(src))
	b.WriteString(searchControls("dj-collection"))
	b.WriteString(statusLine("dj-collection", CollectionStatus(res)))
	b.WriteString(metaLine("dj-collection", data.GeneratedAt))
	b.WriteString(`<div data-dj-collection-content>`)
	b.WriteString(CollectionSections(res))
	b.WriteString(`</div>`)
	return b.String()
}

// CollectionSections renders just the folder sections of a collection
// result; the fragment endpoint uses it for live re-filtering.
func CollectionSections(res collection.Result) string {
	if len(res.Folders) == 0 {
		return `<p>No matching items.</p>`
	}
	var b strings.Builder
	for _, f := range res.Folders {
		open := ""
		if f.Expanded {
			open = " open"
		}
		fmt.Fprintf(&b, `<section class="folder-group"><details%s><summary><span class="folder-name">%s</span> <span class="folder-count">(%d)</span></summary><ul>`,
			open, search.EscapeHTML(f.Name), f.Matched)
		for _, it := range f.Items {
			b.WriteString(collectionItem(it, true))
		}
		b.WriteString(`</ul></details></section>`)
	}
	return b.String()
}

func collectionItem(it collection.Item, withTitleNote bool) string {
	var b strings.Builder
	b.WriteString(`<li>`)
	if it.Date != "" {
		fmt.Fprintf(&b, `<code>%s</code> — `, search.EscapeHTML(it.Date))
	}
	label := it.DisplayLabel()
	fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener">%s</a>`,
		search.EscapeAttr(it.Href()), search.EscapeHTML(label))
	if withTitleNote && it.Title != "" && it.Title != label {
		fmt.Fprintf(&b, ` <span>(%s)</span>`, search.EscapeHTML(it.Title))
	}
	b.WriteString(`</li>`)
	return b.String()
}

// SummaryWidget renders the set-summary result: grouped sections for
// matches, or the no-match explainer with its bounded sample list.
func SummaryWidget(res summary.Result) string {
	if res.TotalMatched == 0 {
		return summaryNoMatch(res)
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<p class="widget-status">Showing <strong>%d</strong> matching set(s) for <strong>%s</strong>.</p>`,
		res.TotalMatched, search.EscapeHTML(res.Query))
	for _, sec := range res.Sections {
		open := ""
		if sec.Expanded {
			open = " open"
		}
		name := sec.Name
		if name == "" {
			name = "(Unknown)"
		}
		fmt.Fprintf(&b, `<section class="folder-group"><details%s><summary><span class="folder-name">%s</span> <span class="folder-count">(%d)</span></summary><ul>`,
			open, search.EscapeHTML(name), len(sec.Items))
		for _, it := range sec.Items {
			b.WriteString(collectionItem(it, false))
		}
		b.WriteString(`</ul></details></section>`)
	}
	return b.String()
}

func summaryNoMatch(res summary.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p>No sets found matching <strong>%s</strong>.</p>`, search.EscapeHTML(res.Query))
	b.WriteString(`<p class="widget-hint">Matching is done against each item's <code>title</code> and <code>label</code> in the collection data.</p>`)
	b.WriteString(`<p class="widget-hint">Tip: set <code>data-dj-set-summary-query</code> on the marker to match the text that actually appears in your titles.</p>`)
	if len(res.Samples) > 0 {
		b.WriteString(`<details class="sample-titles"><summary>Show sample set titles</summary><ul>`)
		for _, s := range res.Samples {
			fmt.Fprintf(&b, `<li>%s</li>`, search.EscapeHTML(s))
		}
		b.WriteString(`</ul></details>`)
	}
	return b.String()
}

// HistoryStatus picks the status wording for a live-history view.
func HistoryStatus(v tabular.HistoryView) string {
	if v.QueryActive {
		return fmt.Sprintf("%d matching entr(y/ies)", v.Count)
	}
	return fmt.Sprintf("%d total entr(y/ies)", v.Count)
}

// HistoryWidget renders the live-history feed widget.
func HistoryWidget(src string, data tabular.History, query string) string {
	v := tabular.FilterHistory(data, query)
	var b strings.Builder
	b.WriteString(sourceLine(src))
	b.WriteString(searchControls("live-history"))
	b.WriteString(statusLine("live-history", HistoryStatus(v)))
	b.WriteString(metaLine("live-history", data.GeneratedAt))
	b.WriteString(`<table class="widget-table"><thead><tr><th>Time</th><th>Title</th><th>Artist</th></tr></thead><tbody data-live-history-body>`)
	b.WriteString(HistoryRows(v))
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// HistoryRows renders just the table body rows of a history view.
func HistoryRows(v tabular.HistoryView) string {
	if len(v.Entries) == 0 {
		return `<tr><td colspan="3" class="widget-empty">No matching entries.</td></tr>`
	}
	var b strings.Builder
	for _, e := range v.Entries {
		fmt.Fprintf(&b, `<tr><td><code>%s</code></td><td>%s</td><td>%s</td></tr>`,
			search.EscapeHTML(e.DT), search.EscapeHTML(e.Title), search.EscapeHTML(e.Artist))
	}
	return b.String()
}

// DivisionStatus picks the status wording for a division table view.
func DivisionStatus(v tabular.DivisionView) string {
	if v.QueryActive {
		return fmt.Sprintf("%d matching row(s)", v.Count)
	}
	return fmt.Sprintf("%d total row(s)", v.Count)
}

// SubmittedMusicWidget renders the submitted-music widget with the division
// at the given index selected.
func SubmittedMusicWidget(src string, data tabular.Table, division int, query string) string {
	var b strings.Builder
	b.WriteString(sourceLine(src))

	b.WriteString(`<label>Division:</label> <select data-routine-division>`)
	for i, name := range data.DivisionNames() {
		selected := ""
		if i == division {
			selected = ` selected`
		}
		fmt.Fprintf(&b, `<option value="%d"%s>%s</option>`, i, selected, search.EscapeHTML(name))
	}
	b.WriteString(`</select> `)
	b.WriteString(searchControls("routine"))

	if division < 0 || division >= len(data.Divisions) {
		b.WriteString(statusLine("routine", ""))
		b.WriteString(metaLine("routine", data.GeneratedAt))
		b.WriteString(`<table class="widget-table"><tbody><tr><td class="widget-empty">No divisions found.</td></tr></tbody></table>`)
		return b.String()
	}

	v := tabular.FilterDivision(data.Divisions[division], query)
	b.WriteString(statusLine("routine", DivisionStatus(v)))
	b.WriteString(metaLine("routine", data.GeneratedAt))
	b.WriteString(`<table class="widget-table"><thead><tr data-routine-thead>`)
	for _, h := range v.Headers {
		fmt.Fprintf(&b, `<th>%s</th>`, search.EscapeHTML(h))
	}
	b.WriteString(`</tr></thead><tbody data-routine-tbody>`)
	b.WriteString(DivisionRows(v))
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// DivisionRows renders just the table body rows of a division view.
func DivisionRows(v tabular.DivisionView) string {
	if len(v.Rows) == 0 {
		width := len(v.Headers)
		if width < 1 {
			width = 1
		}
		return fmt.Sprintf(`<tr><td colspan="%d" class="widget-empty">No matching rows.</td></tr>`, width)
	}
	var b strings.Builder
	for _, r := range v.Rows {
		b.WriteString(`<tr>`)
		for _, c := range r {
			fmt.Fprintf(&b, `<td>%s</td>`, search.EscapeHTML(c))
		}
		b.WriteString(`</tr>`)
	}
	return b.String()
}

// ErrorFragment renders an inline, localized failure message for one
// widget; the rest of the page stays interactive.
func ErrorFragment(err error) string {
	return fmt.Sprintf(`<p class="widget-error">Failed to load JSON: %s</p>`, search.EscapeHTML(err.Error()))
}

// MissingQueryFragment reports an empty set-summary query inline.
func MissingQueryFragment() string {
	return `<p class="widget-error">Missing query for summary.</p>`
}

// LoadingFragment is the placeholder shown until a widget's data resolves.
func LoadingFragment() string {
	return `<p class="widget-loading">Loading…</p>`
}
