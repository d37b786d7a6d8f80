package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin/yojana-sahayak/internal/search"
	"github.com/jatin/yojana-sahayak/internal/types"
)

func buildCatalog(n int) []*types.SchemeRecord {
	catalog := make([]*types.SchemeRecord, 0, n)
	for i := 0; i < n; i++ {
		catalog = append(catalog, &types.SchemeRecord{
			Slug:       fmt.Sprintf("scheme-%03d", i),
			SchemeName: fmt.Sprintf("Generic Welfare Scheme %d", i),
			Details:    "assistance for citizens",
		})
	}
	return catalog
}

func TestRetrieve_EmptyTextUsesCatalogWindow(t *testing.T) {
	catalog := buildCatalog(200)
	idx := search.New(catalog)

	got := Retrieve(context.Background(), "", types.UserProfile{}, idx, catalog)
	assert.Len(t, got, DefaultWindow)
}

func TestRetrieve_SmallCatalogNotPadded(t *testing.T) {
	catalog := buildCatalog(5)
	idx := search.New(catalog)

	got := Retrieve(context.Background(), "   ", types.UserProfile{}, idx, catalog)
	assert.Len(t, got, 5)
}

func TestRetrieve_DedupesBySlug(t *testing.T) {
	catalog := []*types.SchemeRecord{
		{Slug: "pm-kisan", SchemeName: "PM Kisan", Details: "farmer income support", TargetGroups: []string{"farmer"}},
		{Slug: "scholarship", SchemeName: "Scholarship", Details: "student education aid", TargetGroups: []string{"student"}},
	}
	idx := search.New(catalog)

	profile := types.UserProfile{Interests: []string{"farmer", "education"}}
	got := Retrieve(context.Background(), "farmer", profile, idx, catalog)

	seen := make(map[string]int)
	for _, s := range got {
		seen[s.Slug]++
	}
	for slug, n := range seen {
		assert.Equal(t, 1, n, "slug %s returned more than once", slug)
	}
}

func TestRetrieve_InterestQueryBackfills(t *testing.T) {
	catalog := []*types.SchemeRecord{
		{Slug: "pm-kisan", SchemeName: "PM Kisan", Details: "farmer income support"},
		{Slug: "scholarship", SchemeName: "Post Matric Scholarship", Details: "education aid for students"},
	}
	idx := search.New(catalog)

	// Primary query only matches the farmer scheme; the interest
	// query pulls in the scholarship.
	profile := types.UserProfile{Interests: []string{"education"}}
	got := Retrieve(context.Background(), "farmer", profile, idx, catalog)

	require.Len(t, got, 2)
	assert.Equal(t, "pm-kisan", got[0].Slug)
	assert.Equal(t, "scholarship", got[1].Slug)
}

func TestRetrieve_BoundedSize(t *testing.T) {
	catalog := make([]*types.SchemeRecord, 0, 300)
	for i := 0; i < 300; i++ {
		catalog = append(catalog, &types.SchemeRecord{
			Slug:       fmt.Sprintf("farm-%03d", i),
			SchemeName: "Farmer Support",
			Details:    "farmer subsidy assistance",
		})
	}
	idx := search.New(catalog)

	got := Retrieve(context.Background(), "farmer subsidy", types.UserProfile{}, idx, catalog)
	assert.LessOrEqual(t, len(got), MaxCandidates)
}
