package summary

import (
	"fmt"
	"testing"

	"djsite/internal/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_RejectsEmptyQuery(t *testing.T) {
	_, err := Summarize(collection.Collection{}, "")
	require.ErrorIs(t, err, ErrMissingQuery)

	_, err = Summarize(collection.Collection{}, "   \t ")
	require.ErrorIs(t, err, ErrMissingQuery)
}

func TestSummarize_SubstringAndTokenMatching(t *testing.T) {
	c := collection.Collection{Folders: []collection.Folder{
		{Name: "2023", Items: []collection.Item{
			{Label: "B2B Session"},
			{Title: "B-2-B Mashup"},
			{Title: "Solo Set"},
		}},
	}}

	res, err := Summarize(c, "b2b")
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalMatched)
	require.Len(t, res.Sections, 1)
	require.Len(t, res.Sections[0].Items, 2)
	assert.Equal(t, "B2B Session", res.Sections[0].Items[0].DisplayLabel())
	assert.Equal(t, "B-2-B Mashup", res.Sections[0].Items[1].DisplayLabel())
}

func TestSummarize_TokenMatchToleratesSpacing(t *testing.T) {
	c := collection.Collection{Folders: []collection.Folder{
		{Name: "2022", Items: []collection.Item{{Title: "DJ Marvel at the Warehouse"}}},
	}}

	res, err := Summarize(c, "djmarvel")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalMatched)
}

func TestSummarize_GroupOrderFollowsFolderOrder(t *testing.T) {
	c := collection.Collection{Folders: []collection.Folder{
		{Name: "misc", Items: []collection.Item{{Title: "gig one"}}},
		{Name: "2021", Items: []collection.Item{{Title: "gig two"}}},
		{Name: "Summary", Items: []collection.Item{{Title: "gig three"}}},
		{Name: "2023", Items: []collection.Item{{Title: "gig four"}}},
	}}

	res, err := Summarize(c, "gig")
	require.NoError(t, err)
	require.Len(t, res.Sections, 4)
	assert.Equal(t, "Summary", res.Sections[0].Name)
	assert.Equal(t, "2023", res.Sections[1].Name)
	assert.Equal(t, "2021", res.Sections[2].Name)
	assert.Equal(t, "misc", res.Sections[3].Name)
	assert.True(t, res.Sections[0].Expanded)
	assert.False(t, res.Sections[1].Expanded)
}

func TestSummarize_NoMatchReturnsCappedSample(t *testing.T) {
	var folders []collection.Folder
	for f := 0; f < 3; f++ {
		var items []collection.Item
		for i := 0; i < 6; i++ {
			items = append(items, collection.Item{Label: fmt.Sprintf("set-%d-%d", f, i)})
		}
		folders = append(folders, collection.Folder{Name: fmt.Sprintf("folder%d", f), Items: items})
	}
	c := collection.Collection{Folders: folders}

	res, err := Summarize(c, "nothing-matches-this")
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalMatched)
	assert.Empty(t, res.Sections)
	require.Len(t, res.Samples, SampleCap)
	// First-found order: all of folder0, then folder1 up to the cap.
	assert.Equal(t, "set-0-0", res.Samples[0])
	assert.Equal(t, "set-1-3", res.Samples[9])
}

func TestSummarize_SampleSkipsUnlabeledItems(t *testing.T) {
	c := collection.Collection{Folders: []collection.Folder{
		{Name: "2020", Items: []collection.Item{
			{Date: "2020-01-01"}, // no label or title
			{Title: "Named"},
		}},
	}}

	res, err := Summarize(c, "absent")
	require.NoError(t, err)
	assert.Equal(t, []string{"Named"}, res.Samples)
}
