// Package server is the local preview vehicle: it renders site pages
// (Markdown, sanitized, hydrated) over HTTP and exposes per-widget fragment
// endpoints for live re-filtering. The core stays a library; nothing here
// owns filtering or matching logic.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"djsite/internal/collection"
	"djsite/internal/config"
	"djsite/internal/dataset"
	"djsite/internal/markdown"
	"djsite/internal/nav"
	"djsite/internal/search"
	"djsite/internal/summary"
	"djsite/internal/tabular"
	"djsite/internal/widget"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server renders and serves the site.
type Server struct {
	title    string
	pagesDir string
	sources  widget.Sources
	origins  []string

	manifest []nav.PageDef
	fetcher  *dataset.Fetcher
	renderer *markdown.Renderer
	hydrator *widget.Hydrator
	logger   *zap.Logger
}

// New assembles a server from config. The manifest is loaded once at
// startup; widget datasets are fetched per request so page data is always
// current.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := dataset.NewFetcher(logger)

	manifest, err := fetcher.Manifest(ctx, cfg.Site.Manifest)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	manifest = nav.EnsureSpecialPages(manifest)

	sources := widget.Sources{
		Collection:     cfg.Data.Collection,
		LiveHistory:    cfg.Data.LiveHistory,
		SubmittedMusic: cfg.Data.SubmittedMusic,
	}
	return &Server{
		title:    cfg.Site.Title,
		pagesDir: cfg.Site.PagesDir,
		sources:  sources,
		origins:  cfg.Server.AllowedOrigins,
		manifest: manifest,
		fetcher:  fetcher,
		renderer: markdown.NewRenderer(),
		hydrator: widget.NewHydrator(fetcher, sources, logger),
		logger:   logger,
	}, nil
}

// Routes configures the router and middleware.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.handleHealth)
	router.Get("/", s.handleIndex)
	router.Get("/page/*", s.handlePage)

	router.Route("/fragment", func(r chi.Router) {
		r.Get("/collection", s.handleCollectionFragment)
		r.Get("/live-history", s.handleHistoryFragment)
		r.Get("/submitted-music", s.handleSubmittedMusicFragment)
		r.Get("/set-summary", s.handleSummaryFragment)
	})

	if dir := localDir(s.sources.Collection); dir != "" {
		router.Handle("/site_data/*", http.StripPrefix("/site_data/", http.FileServer(http.Dir(dir))))
	}
	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderRoute(w, r, "home")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderRoute(w, r, chi.URLParam(r, "*"))
}

// renderRoute resolves a route id against the manifest and writes the full
// page. Page-level data problems render inline; the layout and nav always
// come back.
func (s *Server) renderRoute(w http.ResponseWriter, r *http.Request, routeID string) {
	page := nav.Resolve(s.manifest, routeID)
	content := s.pageContent(r.Context(), page)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.renderLayout(page.ID, content)))
}

func (s *Server) pageContent(ctx context.Context, page nav.PageDef) string {
	switch {
	case page.Kind == "home" || page.ID == "home":
		return ""
	case page.Kind == "dj" || page.ID == "dj/collection":
		return s.hydrate(ctx, page, `<div data-dj-collection></div>`)
	}

	src := page.Path
	if src == "" {
		var err error
		src, err = nav.PagePathIn(s.pagesDir, page.ID)
		if err != nil {
			return `<p class="widget-error">Invalid page id.</p>`
		}
	}
	md, err := s.fetcher.Raw(ctx, src)
	if err != nil {
		s.logger.Warn("page source fetch failed", zap.String("page", page.ID), zap.Error(err))
		return fmt.Sprintf(`<p class="widget-error">Failed to load %s.</p>`, search.EscapeHTML(src))
	}
	html, err := s.renderer.Render(md)
	if err != nil {
		s.logger.Warn("page render failed", zap.String("page", page.ID), zap.Error(err))
		return `<p class="widget-error">Failed to render page.</p>`
	}
	return s.hydrate(ctx, page, html)
}

func (s *Server) hydrate(ctx context.Context, page nav.PageDef, html string) string {
	// Each request is its own navigation; the request context carries
	// cancellation into the widget fetches.
	out, err := s.hydrator.HydratePage(ctx, page, html, &widget.Session{})
	if err != nil {
		s.logger.Warn("hydration failed", zap.String("page", page.ID), zap.Error(err))
		return html
	}
	return out
}

// fragmentResponse carries a re-filtered widget fragment plus the status
// line the client swaps in next to it.
type fragmentResponse struct {
	HTML        string `json:"html"`
	Status      string `json:"status"`
	Count       int    `json:"count"`
	QueryActive bool   `json:"query_active"`
}

func (s *Server) handleCollectionFragment(w http.ResponseWriter, r *http.Request) {
	data, err := s.fetcher.Collection(r.Context(), s.sources.Collection)
	if err != nil {
		s.fragmentError(w, err)
		return
	}
	res := collection.Filter(data, r.URL.Query().Get("q"))
	writeJSON(w, fragmentResponse{
		HTML:        widget.CollectionSections(res),
		Status:      widget.CollectionStatus(res),
		Count:       res.TotalMatched,
		QueryActive: res.QueryActive,
	})
}

func (s *Server) handleHistoryFragment(w http.ResponseWriter, r *http.Request) {
	data, err := s.fetcher.LiveHistory(r.Context(), s.sources.LiveHistory)
	if err != nil {
		s.fragmentError(w, err)
		return
	}
	v := tabular.FilterHistory(data, r.URL.Query().Get("q"))
	writeJSON(w, fragmentResponse{
		HTML:        widget.HistoryRows(v),
		Status:      widget.HistoryStatus(v),
		Count:       v.Count,
		QueryActive: v.QueryActive,
	})
}

func (s *Server) handleSubmittedMusicFragment(w http.ResponseWriter, r *http.Request) {
	data, err := s.fetcher.SubmittedMusic(r.Context(), s.sources.SubmittedMusic)
	if err != nil {
		s.fragmentError(w, err)
		return
	}
	division, _ := strconv.Atoi(r.URL.Query().Get("division"))
	if division < 0 || division >= len(data.Divisions) {
		writeJSON(w, fragmentResponse{HTML: `<tr><td class="widget-empty">No divisions found.</td></tr>`})
		return
	}
	v := tabular.FilterDivision(data.Divisions[division], r.URL.Query().Get("q"))
	writeJSON(w, fragmentResponse{
		HTML:        widget.DivisionRows(v),
		Status:      widget.DivisionStatus(v),
		Count:       v.Count,
		QueryActive: v.QueryActive,
	})
}

func (s *Server) handleSummaryFragment(w http.ResponseWriter, r *http.Request) {
	data, err := s.fetcher.Collection(r.Context(), s.sources.Collection)
	if err != nil {
		s.fragmentError(w, err)
		return
	}
	res, err := summary.Summarize(data, r.URL.Query().Get("query"))
	if err != nil {
		writeJSON(w, fragmentResponse{HTML: widget.MissingQueryFragment()})
		return
	}
	writeJSON(w, fragmentResponse{
		HTML:        widget.SummaryWidget(res),
		Status:      fmt.Sprintf("%d matching set(s)", res.TotalMatched),
		Count:       res.TotalMatched,
		QueryActive: true,
	})
}

// fragmentError reports a widget fetch failure inline, as a fragment: the
// page around the widget keeps working.
func (s *Server) fragmentError(w http.ResponseWriter, err error) {
	s.logger.Warn("fragment fetch failed", zap.Error(err))
	writeJSON(w, fragmentResponse{HTML: widget.ErrorFragment(err)})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// localDir returns the directory of a local data source, or "" for URLs.
func localDir(src string) string {
	if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return ""
	}
	return filepath.Dir(src)
}
