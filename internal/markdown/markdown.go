// Package markdown is the page-source boundary: it converts Markdown to
// HTML and forces the result through a sanitizer allow-list. The allow-list
// explicitly admits the widget mount-marker attributes and a restricted
// iframe attribute set; everything the hydrator touches has passed through
// here.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Mount-marker attributes the sanitizer must preserve.
const (
	AttrCollection      = "data-dj-collection"
	AttrLiveHistory     = "data-live-history"
	AttrSubmittedMusic  = "data-submitted-music"
	AttrSetSummary      = "data-dj-set-summary"
	AttrSetSummaryQuery = "data-dj-set-summary-query"
)

// Renderer converts Markdown page sources into sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds the page renderer. Raw HTML passthrough is enabled so
// the marker divs in page sources survive conversion; the sanitizer is what
// makes that safe.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		policy: sanitizePolicy(),
	}
}

// Render converts Markdown to HTML and sanitizes it.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Sanitize applies the allow-list to HTML that skipped the Markdown step
// (synthetic pages).
func (r *Renderer) Sanitize(html string) string {
	return r.policy.Sanitize(html)
}

func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs(
		AttrCollection,
		AttrLiveHistory,
		AttrSubmittedMusic,
		AttrSetSummary,
		AttrSetSummaryQuery,
	).OnElements("div")

	p.AllowElements("iframe")
	p.AllowAttrs(
		"src", "width", "height", "frameborder",
		"scrolling", "loading", "referrerpolicy", "style",
	).OnElements("iframe")

	return p
}
