package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCollection_DefaultsMissingFields(t *testing.T) {
	srv := serveJSON(t, `{"generated_at":"2024-06-01","folders":[{"name":"2023"},{"name":"misc","items":[{"title":"x"}]}]}`)

	c, err := NewFetcher(nil).Collection(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", c.GeneratedAt)
	require.Len(t, c.Folders, 2)
	assert.NotNil(t, c.Folders[0].Items)
	assert.Empty(t, c.Folders[0].Items)
	assert.Equal(t, "x", c.Folders[1].Items[0].Title)
	assert.Equal(t, "", c.Folders[1].Items[0].Date)
}

func TestCollection_EmptyDocument(t *testing.T) {
	srv := serveJSON(t, `{}`)

	c, err := NewFetcher(nil).Collection(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotNil(t, c.Folders)
	assert.Empty(t, c.Folders)
}

func TestCollection_RejectsWrongShape(t *testing.T) {
	srv := serveJSON(t, `{"folders":"not-an-array"}`)

	_, err := NewFetcher(nil).Collection(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestFetch_HTTPErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := NewFetcher(nil).Collection(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestLiveHistory_Defaults(t *testing.T) {
	srv := serveJSON(t, `{"entries":[{"dt":"2024-05-01","title":"Mix"}]}`)

	h, err := NewFetcher(nil).LiveHistory(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, h.Entries, 1)
	assert.Equal(t, "", h.Entries[0].Artist)
}

func TestSubmittedMusic_Defaults(t *testing.T) {
	srv := serveJSON(t, `{"divisions":[{"division":"Open","headers":["Date","Artist"],"rows":[["2024-01-01"]]},{}]}`)

	tab, err := NewFetcher(nil).SubmittedMusic(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, tab.Divisions, 2)
	assert.Equal(t, [][]string{{"2024-01-01"}}, tab.Divisions[0].Rows)
	assert.NotNil(t, tab.Divisions[1].Headers)
	assert.NotNil(t, tab.Divisions[1].Rows)
}

func TestManifest_MustBeArray(t *testing.T) {
	srv := serveJSON(t, `{"id":"home"}`)
	_, err := NewFetcher(nil).Manifest(context.Background(), srv.URL)
	require.Error(t, err)

	srv2 := serveJSON(t, `[{"id":"home","title":"Home"}]`)
	pages, err := NewFetcher(nil).Manifest(context.Background(), srv2.URL)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "home", pages[0].ID)
}

func TestRead_FileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collection.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"folders":[]}`), 0644))

	c, err := NewFetcher(nil).Collection(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, c.Folders)
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope", []byte(`{}`))
	require.Error(t, err)
}
