package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags_MultipleHits(t *testing.T) {
	tags := ExtractTags("bpl farmer from a village, sc category")
	assert.Equal(t, []string{"bpl", "farmer", "rural", "sc"}, tags)
}

func TestExtractTags_OccupationVariants(t *testing.T) {
	assert.Contains(t, ExtractTags("working in agriculture"), "farmer")
	assert.Contains(t, ExtractTags("college student"), "student")
	assert.Contains(t, ExtractTags("self-employed with a small msme"), "entrepreneur")
	assert.Contains(t, ExtractTags("fisherwoman on the coast"), "fisherman")
	assert.Contains(t, ExtractTags("daily wage labourer"), "worker")
}

func TestExtractTags_SocialCategories(t *testing.T) {
	assert.Contains(t, ExtractTags("scheduled tribe household"), "st")
	assert.Contains(t, ExtractTags("obc certificate available"), "obc")
	assert.Contains(t, ExtractTags("muslim family"), "minority")
	assert.Contains(t, ExtractTags("ews quota"), "ews")
}

func TestExtractTags_SpecialPopulations(t *testing.T) {
	assert.Contains(t, ExtractTags("widow with two children"), "widow")
	assert.Contains(t, ExtractTags("expecting maternity benefits"), "pregnant_woman")
	assert.Contains(t, ExtractTags("differently abled person"), "disabled")
	assert.Contains(t, ExtractTags("old age pension"), "senior")
}

func TestExtractTags_WordBoundaries(t *testing.T) {
	// "sc" must not fire inside words like "school" and "st" must not
	// fire inside "student".
	tags := ExtractTags("school student")
	assert.NotContains(t, tags, "sc")
	assert.NotContains(t, tags, "st")
	assert.Contains(t, tags, "student")
}

func TestExtractTags_NoMatch(t *testing.T) {
	assert.Empty(t, ExtractTags("hello there"))
	assert.Empty(t, ExtractTags(""))
}

func TestExtractTags_SortedAndDeduplicated(t *testing.T) {
	tags := ExtractTags("farmer doing farming in agriculture")
	assert.Equal(t, []string{"farmer"}, tags)
}
