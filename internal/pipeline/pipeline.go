// Package pipeline orchestrates a recommendation request end to end:
// profile extraction, candidate retrieval, eligibility filtering,
// ranking and display truncation.
package pipeline

import (
	"context"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jatin/yojana-sahayak/internal/eligibility"
	"github.com/jatin/yojana-sahayak/internal/extract"
	"github.com/jatin/yojana-sahayak/internal/llm"
	"github.com/jatin/yojana-sahayak/internal/ranking"
	"github.com/jatin/yojana-sahayak/internal/retrieval"
	"github.com/jatin/yojana-sahayak/internal/search"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// DefaultLimit is the display truncation applied when a request does
// not ask for a specific number of results.
const DefaultLimit = 10

// rerankWindow bounds how many top heuristic candidates are offered to
// the AI re-ranker; the full candidate set would waste model context on
// schemes that cannot reach the display window anyway.
const rerankWindow = 30

// HintWeakInput is returned when no usable signal could be extracted
// from the request.
const HintWeakInput = "Please describe yourself: age, gender, state, income and what you do (for example \"21 year old female student from Karnataka, income 2 lakh\")."

// HintRelaxed is returned when strict filtering removed everything and
// the relaxed pass produced the results instead.
const HintRelaxed = "No scheme matched every detail exactly; showing close matches instead."

// HintNoMatch is returned when even relaxed filtering found nothing.
const HintNoMatch = "No schemes matched. Try different keywords or fewer personal constraints."

// Request is a single recommendation query. Text and Profile may be
// combined: an explicit profile wins over extraction, and the text
// still drives retrieval and keyword scoring.
type Request struct {
	Text    string
	Profile *types.UserProfile
	Limit   int
}

// Options configures optional pipeline behavior.
type Options struct {
	// Client enables the AI extraction and re-ranking paths. Nil runs
	// the pipeline fully offline.
	Client llm.Client
	// Rerank asks the model to re-score the shortlist. Ignored when
	// Client is nil.
	Rerank bool
	// Seed fixes the tie-breaking shuffle for reproducible output.
	// Zero seeds from the clock.
	Seed int64
}

// Service is an immutable recommendation engine over a loaded catalog.
// Safe for concurrent use once constructed: the tie-breaking generator
// is created per call, never shared across requests.
type Service struct {
	catalog   []*types.SchemeRecord
	index     *search.Index
	extractor *extract.Extractor
	client    llm.Client
	rerank    bool
	seed      int64
	calls     atomic.Int64
}

// New builds a Service over the given catalog. The search index is
// constructed once here.
func New(schemes []*types.SchemeRecord, opts Options) *Service {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		catalog:   schemes,
		index:     search.New(schemes),
		extractor: &extract.Extractor{Client: opts.Client},
		client:    opts.Client,
		rerank:    opts.Rerank,
		seed:      seed,
	}
}

// Schemes returns the loaded catalog.
func (s *Service) Schemes() []*types.SchemeRecord {
	return s.catalog
}

// Lookup finds a scheme by slug, falling back to an exact
// case-insensitive name match.
func (s *Service) Lookup(key string) *types.SchemeRecord {
	for _, scheme := range s.catalog {
		if scheme.Slug == key {
			return scheme
		}
	}
	lower := strings.ToLower(key)
	for _, scheme := range s.catalog {
		if strings.ToLower(scheme.SchemeName) == lower {
			return scheme
		}
	}
	return nil
}

// Extract returns the structured profile for a piece of text without
// running the rest of the pipeline.
func (s *Service) Extract(ctx context.Context, text string) types.UserProfile {
	return s.extractor.Extract(ctx, text)
}

// Run executes the full pipeline. It always returns a well-formed
// Recommendation: weak input and empty results are reported through
// Mode and Hint, never as an error.
func (s *Service) Run(ctx context.Context, req Request) types.Recommendation {
	rec := types.Recommendation{RequestID: uuid.NewString()}

	// The weak-input decision is made on the deterministic extraction
	// alone, so a bare greeting never spends a model call.
	profile := s.deterministicProfile(req)
	if isWeakInput(req.Text, profile) {
		rec.User = profile
		rec.Mode = types.ModeInvalid
		rec.Items = []types.ScoredCandidate{}
		rec.Hint = HintWeakInput
		return rec
	}
	if req.Profile == nil && s.client != nil {
		profile = s.extractor.Extract(ctx, req.Text)
	}
	rec.User = profile

	candidates := retrieval.Retrieve(ctx, req.Text, profile, s.index, s.catalog)

	eligible := eligibility.Filter(candidates, profile, types.FilterStrict)
	rec.Mode = types.FilterStrict
	if len(eligible) == 0 {
		eligible = eligibility.Filter(candidates, profile, types.FilterRelaxed)
		rec.Mode = types.FilterRelaxed
		rec.Hint = HintRelaxed
	}
	if len(eligible) == 0 {
		rec.Items = []types.ScoredCandidate{}
		rec.Hint = HintNoMatch
		return rec
	}

	ranked := s.rank(ctx, eligible, profile, req.Text)

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	rec.Items = ranked
	rec.Count = len(ranked)
	return rec
}

// deterministicProfile prefers an explicit structured profile; text
// requests go through the regex extractor only. The AI-assisted pass
// runs later, once the request has cleared the weak-input guard.
func (s *Service) deterministicProfile(req Request) types.UserProfile {
	if req.Profile != nil {
		return *req.Profile
	}
	return extract.FromText(req.Text)
}

// rank applies the heuristic ranking and, when enabled, hands the top
// of the list to the model. A re-ranking failure falls back to the
// heuristic order silently. Each call gets its own generator, derived
// from the base seed, so a fixed Options.Seed stays reproducible while
// concurrent requests never share mutable shuffle state.
func (s *Service) rank(ctx context.Context, eligible []*types.SchemeRecord, profile types.UserProfile, text string) []types.ScoredCandidate {
	rng := rand.New(rand.NewSource(s.seed + s.calls.Add(1)))
	ranked := ranking.Rank(eligible, profile, text, rng)

	if !s.rerank || s.client == nil || len(ranked) == 0 {
		return ranked
	}

	window := ranked
	if len(window) > rerankWindow {
		window = window[:rerankWindow]
	}
	schemes := make([]*types.SchemeRecord, len(window))
	for i, c := range window {
		schemes[i] = c.Scheme
	}

	judged, err := ranking.JudgeSchemes(ctx, schemes, profile, s.client)
	if err != nil {
		log.Printf("AI re-ranking failed, keeping heuristic order: %v", err)
		return ranked
	}
	return append(judged, ranked[len(window):]...)
}

var greetingRe = regexp.MustCompile(`^(hi+|hii+|hello|hey|hay|namaste|namaskar|good\s+(morning|afternoon|evening)|test|ok|okay|thanks|thank\s+you)[.!?\s]*$`)

// isWeakInput detects requests with nothing to work with: greetings,
// near-empty text, or text from which no profile signal was extracted
// and which is too short to carry useful search keywords.
func isWeakInput(text string, profile types.UserProfile) bool {
	if profile.HasSignal() {
		return false
	}
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return true
	}
	if greetingRe.MatchString(trimmed) {
		return true
	}
	return len(search.Tokenize(trimmed)) < 3
}
