package server

import (
	"fmt"
	"strings"

	"djsite/internal/nav"
	"djsite/internal/search"
)

// renderLayout wraps page content in the site chrome: title, nav, content
// container.
func (s *Server) renderLayout(activeID, content string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString(`<meta charset="utf-8" />`)
	fmt.Fprintf(&b, "<title>%s</title>\n", search.EscapeHTML(s.title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, `<header><h1>%s</h1></header>`, search.EscapeHTML(s.title))
	b.WriteString("\n<nav id=\"nav\">")
	b.WriteString(s.renderNav(activeID))
	b.WriteString("</nav>\n")
	fmt.Fprintf(&b, `<main id="page"><div id="page-content">%s</div></main>`, content)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// renderNav builds the grouped nav: root pages as links in manifest order,
// folder pages under dropdowns. The group containing the active page opens.
func (s *Server) renderNav(activeID string) string {
	model := nav.GroupPages(s.manifest)
	var b strings.Builder
	for _, entry := range model.Entries {
		if entry.Kind == nav.EntryLink {
			b.WriteString(s.navLink(entry.Page, activeID))
			continue
		}
		open := ""
		if strings.HasPrefix(activeID, entry.Folder+"/") {
			open = " open"
		}
		fmt.Fprintf(&b, `<details class="nav-group"%s><summary>%s</summary><div class="nav-group-items">`,
			open, search.EscapeHTML(nav.TitleCaseFromFolder(entry.Folder)))
		for _, p := range entry.Pages {
			b.WriteString(s.navLink(p, activeID))
		}
		b.WriteString(`</div></details>`)
	}
	return b.String()
}

func (s *Server) navLink(p nav.PageDef, activeID string) string {
	class := ""
	if p.ID == activeID {
		class = ` class="active"`
	}
	return fmt.Sprintf(`<a href="/page/%s"%s data-page-id="%s">%s</a>`,
		nav.EncodeRoute(p.ID), class, search.EscapeAttr(p.ID), search.EscapeHTML(p.DisplayTitle()))
}
