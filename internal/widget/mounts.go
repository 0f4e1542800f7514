package widget

import (
	"fmt"
	"strings"

	"djsite/internal/markdown"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind identifies which widget a mount marker requests.
type Kind string

const (
	KindCollection     Kind = "collection"
	KindLiveHistory    Kind = "live-history"
	KindSubmittedMusic Kind = "submitted-music"
	KindSetSummary     Kind = "set-summary"
)

// Mount is one discovered widget mount point in a page.
type Mount struct {
	Kind  Kind
	Query string // set-summary query override, if any
	node  *html.Node
}

// document wraps a parsed page fragment so it can be re-rendered after
// mounts are filled in.
type document struct {
	body *html.Node
}

// parsePage parses sanitized page HTML as a body fragment and collects its
// widget mounts in document order.
func parsePage(pageHTML string) (*document, []*Mount, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(pageHTML), body)
	if err != nil {
		return nil, nil, fmt.Errorf("parse page html: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var mounts []*Mount
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if m := mountFor(n); m != nil {
				mounts = append(mounts, m)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	return &document{body: body}, mounts, nil
}

func mountFor(n *html.Node) *Mount {
	var kind Kind
	found := false
	query := ""
	for _, a := range n.Attr {
		switch a.Key {
		case markdown.AttrCollection:
			kind, found = KindCollection, true
		case markdown.AttrLiveHistory:
			kind, found = KindLiveHistory, true
		case markdown.AttrSubmittedMusic:
			kind, found = KindSubmittedMusic, true
		case markdown.AttrSetSummary:
			kind, found = KindSetSummary, true
		case markdown.AttrSetSummaryQuery:
			query = a.Val
		}
	}
	if !found {
		return nil
	}
	return &Mount{Kind: kind, Query: query, node: n}
}

// setContent replaces the mount element's children with the rendered
// fragment.
func (m *Mount) setContent(fragment string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return fmt.Errorf("parse widget fragment: %w", err)
	}
	for c := m.node.FirstChild; c != nil; {
		next := c.NextSibling
		m.node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		m.node.AppendChild(n)
	}
	return nil
}

// render serializes the page back to HTML, without the synthetic body
// wrapper.
func (d *document) render() (string, error) {
	var b strings.Builder
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("render page html: %w", err)
		}
	}
	return b.String(), nil
}
