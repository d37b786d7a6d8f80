// Package types provides type definitions for structured data used throughout the scheme recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FilterMode selects the eligibility filtering policy.
type FilterMode string

const (
	// FilterStrict applies every hard predicate; ineligible schemes
	// are rejected outright.
	FilterStrict FilterMode = "strict"
	// FilterRelaxed applies only the non-rejecting checks; soft
	// signals are left for scoring instead of rejection.
	FilterRelaxed FilterMode = "relaxed"
	// ModeInvalid marks a response produced by the weak-input guard.
	ModeInvalid FilterMode = "invalid"
)

// ScoredCandidate pairs a scheme with its ranking score. Produced and
// consumed within a single request; never persisted.
type ScoredCandidate struct {
	Scheme *SchemeRecord `json:"scheme"`
	Score  float64       `json:"score"`
	// Reason carries the AI re-ranker's justification when one ran,
	// otherwise empty.
	Reason string `json:"reason,omitempty"`
}

// Recommendation is the pipeline's terminal output. It is always
// well-formed: per-request problems surface as Mode/Hint, never as an
// error payload.
type Recommendation struct {
	RequestID string            `json:"request_id,omitempty"`
	Items     []ScoredCandidate `json:"items"`
	User      UserProfile       `json:"user"`
	Mode      FilterMode        `json:"mode"`
	Count     int               `json:"count"`
	Hint      string            `json:"hint,omitempty"`
}
