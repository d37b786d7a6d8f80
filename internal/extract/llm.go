package extract

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/jatin/yojana-sahayak/internal/llm"
	"github.com/jatin/yojana-sahayak/internal/prompts"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// Extractor wraps the deterministic extractor with an optional
// AI-assisted path. Client may be nil, in which case extraction is
// purely rule-based.
type Extractor struct {
	Client llm.Client
}

// Extract returns a profile for the given text. When an AI client is
// configured its failure is recovered locally: the deterministic path
// runs instead and the error never reaches the caller.
func (e *Extractor) Extract(ctx context.Context, text string) types.UserProfile {
	if e.Client == nil {
		return FromText(text)
	}

	profile, err := e.extractWithLLM(ctx, text)
	if err != nil {
		log.Printf("AI profile extraction failed, using rule-based extractor: %v", err)
		return FromText(text)
	}
	return profile
}

// llmProfile is the JSON shape the model is prompted to return.
type llmProfile struct {
	Age       *int     `json:"age"`
	Gender    *string  `json:"gender"`
	State     *string  `json:"state"`
	Income    *int64   `json:"income"`
	Tags      []string `json:"tags"`
	Interests []string `json:"interests"`
	Needs     []string `json:"needs"`
}

func (e *Extractor) extractWithLLM(ctx context.Context, text string) (types.UserProfile, error) {
	template := prompts.MustGet("extraction.json", "extract-user-profile")
	prompt := prompts.Format(template, map[string]string{"Text": text})

	resp, err := e.Client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return types.UserProfile{}, &ExtractionError{Message: "model call failed", Cause: err}
	}

	var raw llmProfile
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &raw); err != nil {
		return types.UserProfile{}, &ExtractionError{Message: "malformed model response", Cause: err}
	}

	return sanitize(raw), nil
}

// sanitize maps the model's loose output onto the profile invariants:
// the state must canonicalize into the recognized set, gender must be
// one of the two known values, implausible ages are dropped and tags
// are lowercased and deduplicated.
func sanitize(raw llmProfile) types.UserProfile {
	var profile types.UserProfile

	if raw.Age != nil && *raw.Age > 0 && *raw.Age <= maxPlausibleAge {
		profile.Age = raw.Age
	}
	if raw.Gender != nil {
		switch strings.ToLower(strings.TrimSpace(*raw.Gender)) {
		case "male":
			profile.Gender = "male"
		case "female":
			profile.Gender = "female"
		}
	}
	if raw.State != nil {
		profile.State = CanonicalizeState(*raw.State)
	}
	if raw.Income != nil && (*raw.Income == types.IncomeBPL || *raw.Income >= 0) {
		profile.Income = raw.Income
	}

	seen := make(map[string]bool)
	for _, t := range raw.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" && !seen[tag] {
			seen[tag] = true
			profile.Tags = append(profile.Tags, tag)
		}
	}
	sort.Strings(profile.Tags)

	profile.Interests = cleanList(raw.Interests)
	profile.Needs = cleanList(raw.Needs)
	return profile
}

func cleanList(items []string) []string {
	var out []string
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
