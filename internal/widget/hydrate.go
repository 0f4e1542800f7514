// Package widget discovers mount markers in sanitized page HTML and fills
// each one in from its own data source. Widgets are isolated: each mount
// gets its own fetch, and one widget failing or loading slowly never blocks
// or fails its siblings.
package widget

import (
	"context"
	"errors"
	"strings"

	"djsite/internal/dataset"
	"djsite/internal/nav"
	"djsite/internal/summary"

	"go.uber.org/zap"
)

// Sources names the JSON documents the widgets hydrate from.
type Sources struct {
	Collection     string
	LiveHistory    string
	SubmittedMusic string
}

// Hydrator fills widget mounts from fetched datasets.
type Hydrator struct {
	fetcher *dataset.Fetcher
	sources Sources
	logger  *zap.Logger
}

// NewHydrator builds a hydrator over the given fetcher and data sources.
func NewHydrator(fetcher *dataset.Fetcher, sources Sources, logger *zap.Logger) *Hydrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hydrator{fetcher: fetcher, sources: sources, logger: logger}
}

// HydratePage scans sanitized page HTML for mount markers and hydrates each
// one in discovery order. Pages without markers pass through unchanged.
// The session epoch is captured at entry; if a newer navigation begins
// while a fetch is in flight, remaining writes are silently dropped and the
// caller's stale result is simply never used.
func (h *Hydrator) HydratePage(ctx context.Context, page nav.PageDef, pageHTML string, sess *Session) (string, error) {
	doc, mounts, err := parsePage(pageHTML)
	if err != nil {
		return pageHTML, err
	}
	if len(mounts) == 0 {
		return pageHTML, nil
	}

	token := sess.Begin()
	for _, m := range mounts {
		fragment := h.renderMount(ctx, page, m)
		if !sess.Valid(token) {
			h.logger.Debug("dropping stale hydration",
				zap.String("page", page.ID),
				zap.String("widget", string(m.Kind)),
			)
			return pageHTML, nil
		}
		if err := m.setContent(fragment); err != nil {
			return pageHTML, err
		}
	}
	return doc.render()
}

// renderMount produces the fragment for one mount. Fetch and input errors
// become inline error fragments, never hard failures.
func (h *Hydrator) renderMount(ctx context.Context, page nav.PageDef, m *Mount) string {
	switch m.Kind {
	case KindCollection:
		data, err := h.fetcher.Collection(ctx, h.sources.Collection)
		if err != nil {
			h.logger.Warn("collection widget fetch failed", zap.String("page", page.ID), zap.Error(err))
			return ErrorFragment(err)
		}
		return CollectionWidget(h.sources.Collection, data, "")

	case KindLiveHistory:
		data, err := h.fetcher.LiveHistory(ctx, h.sources.LiveHistory)
		if err != nil {
			h.logger.Warn("live-history widget fetch failed", zap.String("page", page.ID), zap.Error(err))
			return ErrorFragment(err)
		}
		return HistoryWidget(h.sources.LiveHistory, data, "")

	case KindSubmittedMusic:
		data, err := h.fetcher.SubmittedMusic(ctx, h.sources.SubmittedMusic)
		if err != nil {
			h.logger.Warn("submitted-music widget fetch failed", zap.String("page", page.ID), zap.Error(err))
			return ErrorFragment(err)
		}
		return SubmittedMusicWidget(h.sources.SubmittedMusic, data, 0, "")

	case KindSetSummary:
		query := strings.TrimSpace(m.Query)
		if query == "" {
			query = nav.DefaultSummaryQuery(page.ID)
		}
		if query == "" {
			return MissingQueryFragment()
		}
		data, err := h.fetcher.Collection(ctx, h.sources.Collection)
		if err != nil {
			h.logger.Warn("set-summary widget fetch failed", zap.String("page", page.ID), zap.Error(err))
			return ErrorFragment(err)
		}
		res, err := summary.Summarize(data, query)
		if errors.Is(err, summary.ErrMissingQuery) {
			return MissingQueryFragment()
		}
		return SummaryWidget(res)
	}
	return ""
}
