// Package retrieval narrows the scheme catalog to a bounded candidate
// set using the text index.
package retrieval

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jatin/yojana-sahayak/internal/search"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// Tuning parameters, not correctness requirements.
const (
	// MaxCandidates caps the candidate set handed to filtering.
	MaxCandidates = 150
	// LowWater triggers the secondary interest-keyword query when the
	// primary query returns fewer hits.
	LowWater = 50
	// DefaultWindow is the catalog prefix used for structured-only
	// requests that carry no text.
	DefaultWindow = 120
)

// Retrieve returns a bounded, deduplicated candidate set for the
// request. Ordering is search relevance and advisory only; the ranker
// re-orders. With no text at all the full catalog is truncated to a
// default window so structured-only requests still work.
func Retrieve(ctx context.Context, text string, profile types.UserProfile, idx *search.Index, catalog []*types.SchemeRecord) []*types.SchemeRecord {
	if strings.TrimSpace(text) == "" {
		if len(catalog) > DefaultWindow {
			return catalog[:DefaultWindow]
		}
		return catalog
	}

	var primary, secondary []search.Hit
	interests := strings.Join(profile.Interests, " ")

	// The interest query only matters when the primary query comes up
	// short, but both are independent reads of an immutable index, so
	// they run concurrently and the secondary result is merged only
	// when needed.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary = idx.Search(text, MaxCandidates)
		return nil
	})
	if interests != "" {
		g.Go(func() error {
			secondary = idx.Search(interests, LowWater)
			return nil
		})
	}
	_ = g.Wait() // queries do not fail

	candidates := make([]*types.SchemeRecord, 0, len(primary))
	seen := make(map[string]bool, len(primary))
	for _, h := range primary {
		if !seen[h.Scheme.Slug] {
			seen[h.Scheme.Slug] = true
			candidates = append(candidates, h.Scheme)
		}
	}

	if len(candidates) < LowWater {
		for _, h := range secondary {
			if len(candidates) >= MaxCandidates {
				break
			}
			if !seen[h.Scheme.Slug] {
				seen[h.Scheme.Slug] = true
				candidates = append(candidates, h.Scheme)
			}
		}
	}

	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	return candidates
}
