package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jatin/yojana-sahayak/internal/llm"
	"github.com/jatin/yojana-sahayak/internal/prompts"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// RankingError represents a failed AI re-ranking attempt. The pipeline
// consumes it in the heuristic fallback path; it never reaches the end
// user.
type RankingError struct {
	Message string
	Cause   error
}

func (e *RankingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI ranking failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI ranking failed: %s", e.Message)
}

func (e *RankingError) Unwrap() error {
	return e.Cause
}

// schemeSummary is the condensed record handed to the model; full
// records would blow the context for no gain.
type schemeSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Target      string `json:"target"`
	Benefits    string `json:"benefits"`
	Eligibility string `json:"eligibility"`
	Category    string `json:"category"`
}

// judgeEntry is one element of the JSON array the model must return.
type judgeEntry struct {
	Slug   string  `json:"slug"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// JudgeSchemes asks the model to re-rank candidates with a 0-10
// relevance score and a justification per scheme. A single attempt is
// made; any malformed output, timeout or transport error is returned
// for the caller to fall back on the heuristic ranking.
func JudgeSchemes(ctx context.Context, candidates []*types.SchemeRecord, profile types.UserProfile, client llm.Client) ([]types.ScoredCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	prompt, err := buildJudgePrompt(candidates, profile)
	if err != nil {
		return nil, &RankingError{Message: "prompt construction failed", Cause: err}
	}

	resp, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &RankingError{Message: "model call failed", Cause: err}
	}

	var entries []judgeEntry
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &entries); err != nil {
		return nil, &RankingError{Message: "malformed model response", Cause: err}
	}

	bySlug := make(map[string]*types.SchemeRecord, len(candidates))
	for _, s := range candidates {
		bySlug[s.Slug] = s
	}

	ranked := make([]types.ScoredCandidate, 0, len(candidates))
	used := make(map[string]bool, len(entries))
	for _, e := range entries {
		s, ok := bySlug[e.Slug]
		if !ok || used[e.Slug] {
			continue
		}
		used[e.Slug] = true
		ranked = append(ranked, types.ScoredCandidate{
			Scheme: s,
			Score:  clampScore(e.Score),
			Reason: strings.TrimSpace(e.Reason),
		})
	}
	if len(ranked) == 0 {
		return nil, &RankingError{Message: "no recognizable slugs in model response"}
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Score > ranked[b].Score })

	// Schemes the model skipped keep their retrieval order at the tail
	// rather than vanishing from the shortlist.
	for _, s := range candidates {
		if !used[s.Slug] {
			ranked = append(ranked, types.ScoredCandidate{Scheme: s})
		}
	}

	return ranked, nil
}

func buildJudgePrompt(candidates []*types.SchemeRecord, profile types.UserProfile) (string, error) {
	summaries := make([]schemeSummary, 0, len(candidates))
	for _, s := range candidates {
		summaries = append(summaries, schemeSummary{
			Slug:        s.Slug,
			Name:        s.SchemeName,
			Target:      orDefault(strings.Join(s.TargetGroups, ", "), "General"),
			Benefits:    truncate(s.Benefits, 200),
			Eligibility: truncate(s.RawEligibility, 200),
			Category:    s.SchemeCategory,
		})
	}
	blob, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", err
	}

	template := prompts.MustGet("ranking.json", "rank-schemes")
	return prompts.Format(template, map[string]string{
		"Age":     formatAge(profile.Age),
		"Gender":  orDefault(profile.Gender, "Not specified"),
		"State":   orDefault(profile.State, "Not specified"),
		"Income":  formatIncome(profile.Income),
		"Tags":    orDefault(strings.Join(profile.Tags, ", "), "Not specified"),
		"Needs":   orDefault(strings.Join(profile.Needs, ", "), "General schemes"),
		"Count":   fmt.Sprintf("%d", len(candidates)),
		"Schemes": string(blob),
	}), nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func formatAge(age *int) string {
	if age == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d", *age)
}

func formatIncome(income *int64) string {
	switch {
	case income == nil:
		return "Not specified"
	case *income == types.IncomeBPL:
		return "Below poverty line"
	default:
		return fmt.Sprintf("₹%d", *income)
	}
}
