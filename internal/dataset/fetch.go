// Package dataset is the fetch boundary for the site's read-only JSON
// documents. Every payload is schema-validated on the way in and defaulted
// into fully-populated records, so downstream filter and sort logic never
// null-checks.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"djsite/internal/collection"
	"djsite/internal/nav"
	"djsite/internal/tabular"

	"go.uber.org/zap"
)

// Fetcher retrieves site documents from HTTP URLs or local files.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher builds a fetcher with a bounded request timeout.
func NewFetcher(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// Raw fetches a document without schema validation (Markdown page sources).
func (f *Fetcher) Raw(ctx context.Context, src string) ([]byte, error) {
	return f.read(ctx, src)
}

// Collection fetches and validates the DJ set collection dataset.
func (f *Fetcher) Collection(ctx context.Context, src string) (collection.Collection, error) {
	var c collection.Collection
	if err := f.document(ctx, src, SchemaCollection, &c); err != nil {
		return collection.Collection{}, err
	}
	if c.Folders == nil {
		c.Folders = []collection.Folder{}
	}
	for i := range c.Folders {
		if c.Folders[i].Items == nil {
			c.Folders[i].Items = []collection.Item{}
		}
	}
	return c, nil
}

// LiveHistory fetches and validates the live-history dataset.
func (f *Fetcher) LiveHistory(ctx context.Context, src string) (tabular.History, error) {
	var h tabular.History
	if err := f.document(ctx, src, SchemaLiveHistory, &h); err != nil {
		return tabular.History{}, err
	}
	if h.Entries == nil {
		h.Entries = []tabular.Entry{}
	}
	return h, nil
}

// SubmittedMusic fetches and validates the submitted-music dataset.
func (f *Fetcher) SubmittedMusic(ctx context.Context, src string) (tabular.Table, error) {
	var t tabular.Table
	if err := f.document(ctx, src, SchemaSubmittedMusic, &t); err != nil {
		return tabular.Table{}, err
	}
	if t.Divisions == nil {
		t.Divisions = []tabular.Division{}
	}
	for i := range t.Divisions {
		if t.Divisions[i].Headers == nil {
			t.Divisions[i].Headers = []string{}
		}
		if t.Divisions[i].Rows == nil {
			t.Divisions[i].Rows = [][]string{}
		}
	}
	return t, nil
}

// Manifest fetches and validates the page manifest. A non-array document is
// the one hard shape error here, matching the manifest contract.
func (f *Fetcher) Manifest(ctx context.Context, src string) ([]nav.PageDef, error) {
	var pages []nav.PageDef
	if err := f.document(ctx, src, SchemaManifest, &pages); err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []nav.PageDef{}
	}
	return pages, nil
}

func (f *Fetcher) document(ctx context.Context, src, schema string, out interface{}) error {
	body, err := f.read(ctx, src)
	if err != nil {
		return err
	}
	if err := ValidateDocument(schema, body); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	return nil
}

func (f *Fetcher) read(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return f.readHTTP(ctx, src)
	}
	body, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return body, nil
}

func (f *Fetcher) readHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	f.logger.Debug("fetched document",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}
