package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ripplelabs/ripple-api/pkg/types"
)

func TestSortJournalsByRecency(t *testing.T) {
	list := []types.Journal{
		{ID: "old", CreatedAt: 100},
		{ID: "new", CreatedAt: 300},
		{ID: "mid", CreatedAt: 200},
	}

	sorted := sortJournalsByRecency(list)

	assert.Equal(t, "new", sorted[0].ID)
	assert.Equal(t, "mid", sorted[1].ID)
	assert.Equal(t, "old", sorted[2].ID)
}

func TestSortJournalsByRecencyZeroTimestampFirst(t *testing.T) {
	// An entry without a creation time counts as just created.
	list := []types.Journal{
		{ID: "dated", CreatedAt: 100},
		{ID: "undated", CreatedAt: 0},
	}

	sorted := sortJournalsByRecency(list)
	assert.Equal(t, "undated", sorted[0].ID)
	assert.Equal(t, "dated", sorted[1].ID)
}

func TestSortJournalsByRecencyStable(t *testing.T) {
	list := []types.Journal{
		{ID: "a", CreatedAt: 100},
		{ID: "b", CreatedAt: 100},
		{ID: "c", CreatedAt: 100},
	}

	sorted := sortJournalsByRecency(list)
	assert.Equal(t, []string{"a", "b", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestTagFacets(t *testing.T) {
	list := []types.Journal{
		{Tags: []string{"growth", "lonely"}},
		{Tags: []string{"growth"}},
		{Tags: []string{"calm"}},
	}

	facets := tagFacets(list)

	assert.Equal(t, []TagFacet{
		{Tag: "growth", Total: 2},
		{Tag: "calm", Total: 1},
		{Tag: "lonely", Total: 1},
	}, facets)
}

func TestTagFacetsEmpty(t *testing.T) {
	assert.Empty(t, tagFacets(nil))
	assert.Empty(t, tagFacets([]types.Journal{{ID: "untagged"}}))
}

func TestJournalPlainTextPassthrough(t *testing.T) {
	assert.Equal(t, "just text", journalPlainText("just text", types.JOURNAL_CONTENT_TYPE_TEXT))
}

func TestJournalPlainTextBlocks(t *testing.T) {
	blocks := `{"blocks":[{"type":"paragraph","data":{"text":"hello world"}}]}`
	assert.Contains(t, journalPlainText(blocks, types.JOURNAL_CONTENT_TYPE_BLOCKS), "hello world")
}

func TestJournalPlainTextInvalidBlocksFallsBack(t *testing.T) {
	assert.Equal(t, "not json", journalPlainText("not json", types.JOURNAL_CONTENT_TYPE_BLOCKS))
}
