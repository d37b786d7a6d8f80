package ranking

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/jatin/yojana-sahayak/internal/types"
)

// Rank scores the candidates for a profile, applies the diversity
// adjustment and orders them best first. Runs of exactly equal scores
// are shuffled with the supplied generator; callers must not depend on
// tie order, only on the score ordering. The generator is scoped to
// this call, so ranking is reproducible in tests via a fixed seed.
func Rank(candidates []*types.SchemeRecord, profile types.UserProfile, originalText string, rng *rand.Rand) []types.ScoredCandidate {
	lowerText := strings.ToLower(originalText)

	scored := make([]types.ScoredCandidate, 0, len(candidates))
	for _, s := range candidates {
		scored = append(scored, types.ScoredCandidate{
			Scheme: s,
			Score:  HeuristicScore(s, profile, lowerText),
		})
	}

	// First ordering pass establishes who counts as a "repeat" for
	// the diversity adjustment.
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })
	diversityAdjust(scored)

	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })
	shuffleTies(scored, rng)
	return scored
}

// diversityAdjust penalizes the second and later occurrences of the
// same ministry (larger penalty) and scheme category (smaller penalty)
// in the current order, so one issuing body cannot dominate the top of
// the list.
func diversityAdjust(scored []types.ScoredCandidate) {
	seenMinistry := make(map[string]bool)
	seenCategory := make(map[string]bool)

	for i := range scored {
		ministry := strings.ToLower(strings.TrimSpace(scored[i].Scheme.Ministry))
		category := strings.ToLower(strings.TrimSpace(scored[i].Scheme.SchemeCategory))

		if ministry != "" {
			if seenMinistry[ministry] {
				scored[i].Score += ministryRepeatPenalty
			} else {
				seenMinistry[ministry] = true
			}
		}
		if category != "" {
			if seenCategory[category] {
				scored[i].Score += categoryRepeatPenalty
			} else {
				seenCategory[category] = true
			}
		}
	}
}

// shuffleTies randomizes the relative order inside every run of
// exactly equal scores, leaving the score ordering intact.
func shuffleTies(scored []types.ScoredCandidate, rng *rand.Rand) {
	i := 0
	for i < len(scored) {
		j := i + 1
		for j < len(scored) && scored[j].Score == scored[i].Score {
			j++
		}
		if j-i > 1 {
			group := scored[i:j]
			rng.Shuffle(len(group), func(a, b int) {
				group[a], group[b] = group[b], group[a]
			})
		}
		i = j
	}
}
