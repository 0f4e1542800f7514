package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"djsite/internal/config"
	"djsite/internal/dataset"
	"djsite/internal/markdown"
	"djsite/internal/nav"
	"djsite/internal/pages"
	"djsite/internal/server"
	"djsite/internal/widget"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootCmd = &cobra.Command{
		Use:   "djsite",
		Short: "DJ site renderer and preview server",
	}
	configPath string
	addrFlag   string
	outDir     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the site config file")

	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides config)")
	renderCmd.Flags().StringVarP(&outDir, "out", "o", "", "Write rendered pages into this directory instead of stdout")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
}

func initLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally with live widget hydration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if addrFlag != "" {
			cfg.Server.Addr = addrFlag
		}

		logger := initLogger()
		defer func() { _ = logger.Sync() }()

		srv, err := server.New(context.Background(), cfg, logger)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}

		httpSrv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			fmt.Printf("🎧 Serving %s on http://localhost%s\n", cfg.Site.Title, cfg.Server.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Fatalf("Shutdown failed: %v", err)
		}
		fmt.Println("✅ Server stopped.")
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [page-id]",
	Short: "Render a page (or every page) to hydrated HTML",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger := zap.NewNop()
		ctx := context.Background()

		fetcher := dataset.NewFetcher(logger)
		manifest, err := fetcher.Manifest(ctx, cfg.Site.Manifest)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}
		manifest = nav.EnsureSpecialPages(manifest)

		renderer := markdown.NewRenderer()
		hydrator := widget.NewHydrator(fetcher, widget.Sources{
			Collection:     cfg.Data.Collection,
			LiveHistory:    cfg.Data.LiveHistory,
			SubmittedMusic: cfg.Data.SubmittedMusic,
		}, logger)

		renderOne := func(page nav.PageDef) (string, error) {
			src := page.Path
			if src == "" {
				var perr error
				src, perr = nav.PagePathIn(cfg.Site.PagesDir, page.ID)
				if perr != nil {
					return "", perr
				}
			}
			md, err := fetcher.Raw(ctx, src)
			if err != nil {
				return "", err
			}
			html, err := renderer.Render(md)
			if err != nil {
				return "", err
			}
			return hydrator.HydratePage(ctx, page, html, &widget.Session{})
		}

		if len(args) == 1 {
			page := nav.Resolve(manifest, args[0])
			if page.ID != args[0] {
				log.Fatalf("Unknown page: %s", args[0])
			}
			out, err := renderOne(page)
			if err != nil {
				log.Fatalf("Render failed: %v", err)
			}
			fmt.Println(out)
			return
		}

		if outDir == "" {
			log.Fatalf("Rendering all pages requires --out")
		}
		rendered := 0
		for _, page := range manifest {
			if page.Kind != "" {
				// Special pages have no Markdown source.
				continue
			}
			out, err := renderOne(page)
			if err != nil {
				log.Printf("⚠️ Skipping %s: %v", page.ID, err)
				continue
			}
			dst := filepath.Join(outDir, page.ID+".html")
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				log.Fatalf("Failed to create output directory: %v", err)
			}
			if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
				log.Fatalf("Failed to write %s: %v", dst, err)
			}
			rendered++
		}
		fmt.Printf("✅ Rendered %d page(s) into %s\n", rendered, outDir)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the manifest against the pages directory and validate the datasets",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()
		fetcher := dataset.NewFetcher(zap.NewNop())
		manifest, err := fetcher.Manifest(ctx, cfg.Site.Manifest)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}

		ids, err := pages.Scan(cfg.Site.PagesDir)
		if err != nil {
			log.Fatalf("Failed to scan pages: %v", err)
		}

		failed := false
		report := pages.Diff(manifest, ids)
		for _, id := range report.MissingSources {
			fmt.Printf("❌ Missing source: %s (listed in manifest, no .md file)\n", id)
			failed = true
		}
		for _, id := range report.Unlisted {
			fmt.Printf("⚠️ Unlisted page: %s (.md file not in manifest)\n", id)
			failed = true
		}
		if report.Clean() {
			fmt.Printf("✅ %d manifest page(s), all sources present, nothing unlisted.\n", len(manifest))
		}

		checks := []struct {
			name string
			run  func() error
		}{
			{cfg.Data.Collection, func() error { _, err := fetcher.Collection(ctx, cfg.Data.Collection); return err }},
			{cfg.Data.LiveHistory, func() error { _, err := fetcher.LiveHistory(ctx, cfg.Data.LiveHistory); return err }},
			{cfg.Data.SubmittedMusic, func() error { _, err := fetcher.SubmittedMusic(ctx, cfg.Data.SubmittedMusic); return err }},
		}
		for _, c := range checks {
			if err := c.run(); err != nil {
				fmt.Printf("❌ Dataset %s: %v\n", c.name, err)
				failed = true
				continue
			}
			fmt.Printf("✅ Dataset %s: valid.\n", c.name)
		}

		if failed {
			os.Exit(1)
		}
	},
}
