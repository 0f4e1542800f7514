package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSpecialPages_InjectsHomeAndCollection(t *testing.T) {
	manifest := []PageDef{{ID: "about", Title: "About"}}

	out := EnsureSpecialPages(manifest)
	require.Len(t, out, 3)
	assert.Equal(t, "home", out[0].ID)
	assert.Equal(t, "dj/collection", out[1].ID)
	assert.Equal(t, "dj", out[1].Kind)
	assert.Equal(t, "about", out[2].ID)
}

func TestEnsureSpecialPages_NormalizesExistingCollectionKind(t *testing.T) {
	manifest := []PageDef{
		{ID: "home", Title: "Start", Kind: "home"},
		{ID: "dj/collection", Title: "Sets"},
	}

	out := EnsureSpecialPages(manifest)
	require.Len(t, out, 2)
	assert.Equal(t, "dj", out[1].Kind)
	assert.Equal(t, "Sets", out[1].Title)
}

func TestResolve(t *testing.T) {
	manifest := []PageDef{
		{ID: "home", Title: "Home", Kind: "home"},
		{ID: "about", Title: "About"},
	}

	assert.Equal(t, "about", Resolve(manifest, "about").ID)
	assert.Equal(t, "home", Resolve(manifest, "nope").ID)
	assert.Equal(t, "home", Resolve(nil, "anything").ID)
}

func TestDecodeRoute(t *testing.T) {
	assert.Equal(t, "home", DecodeRoute(""))
	assert.Equal(t, "home", DecodeRoute("#/"))
	assert.Equal(t, "home", DecodeRoute("#other"))
	assert.Equal(t, "about", DecodeRoute("#/about"))
	assert.Equal(t, "dj/collection", DecodeRoute("#/dj/collection"))
}

func TestEncodeRoute_EscapesSegmentsNotSlashes(t *testing.T) {
	assert.Equal(t, "dj/collection", EncodeRoute("dj/collection"))
	assert.Equal(t, "a%20b/c", EncodeRoute("a b/c"))
}

func TestPagePath(t *testing.T) {
	p, err := PagePath("booking/press-kit")
	require.NoError(t, err)
	assert.Equal(t, "pages/booking/press-kit.md", p)

	_, err = PagePath("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPageID)
	_, err = PagePath("/abs")
	assert.ErrorIs(t, err, ErrInvalidPageID)
	_, err = PagePath("")
	assert.ErrorIs(t, err, ErrInvalidPageID)
}

func TestSourcePath_ExplicitPathWins(t *testing.T) {
	p, err := SourcePath(PageDef{ID: "about", Path: "custom/about.md"})
	require.NoError(t, err)
	assert.Equal(t, "custom/about.md", p)
}

func TestDefaultSummaryQuery(t *testing.T) {
	assert.Equal(t, "dj-marvel", DefaultSummaryQuery("dj-marvel/sets"))
	assert.Equal(t, "", DefaultSummaryQuery("about"))
	assert.Equal(t, "", DefaultSummaryQuery("/odd"))
}

func TestGroupPages_PreservesManifestOrder(t *testing.T) {
	manifest := []PageDef{
		{ID: "home", Title: "Home"},
		{ID: "booking/booking", Title: "Booking"},
		{ID: "about", Title: "About"},
		{ID: "booking/press-kit", Title: "Press Kit"},
		{ID: "resources/links", Title: "Links"},
	}

	model := GroupPages(manifest)
	require.Len(t, model.Entries, 4)
	assert.Equal(t, EntryLink, model.Entries[0].Kind)
	assert.Equal(t, "home", model.Entries[0].Page.ID)
	assert.Equal(t, EntryGroup, model.Entries[1].Kind)
	assert.Equal(t, "booking", model.Entries[1].Folder)
	require.Len(t, model.Entries[1].Pages, 2)
	assert.Equal(t, "booking/booking", model.Entries[1].Pages[0].ID)
	assert.Equal(t, "booking/press-kit", model.Entries[1].Pages[1].ID)
	assert.Equal(t, EntryLink, model.Entries[2].Kind)
	assert.Equal(t, "about", model.Entries[2].Page.ID)
	assert.Equal(t, EntryGroup, model.Entries[3].Kind)
}

func TestTitleCaseFromFolder(t *testing.T) {
	assert.Equal(t, "Dj Marvel", TitleCaseFromFolder("dj-marvel"))
	assert.Equal(t, "Press Kit", TitleCaseFromFolder("press_kit"))
	assert.Equal(t, "", TitleCaseFromFolder(""))
}
