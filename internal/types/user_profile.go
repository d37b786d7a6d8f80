// Package types provides type definitions for structured data used throughout the scheme recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

// UserProfile represents structured attributes inferred from a user's
// free-text self-description. Unknown fields stay at their zero value
// (or nil); the pipeline never penalizes missing information.
type UserProfile struct {
	Age    *int   `json:"age"`
	Gender string `json:"gender,omitempty"` // "male", "female" or empty
	// State holds a canonical state key from the recognized set
	// (e.g. "karnataka", "tamil_nadu") or empty when unknown.
	State string `json:"state,omitempty"`
	// Income is nil when unknown, IncomeBPL for below-poverty-line
	// users, otherwise an annual rupee figure.
	Income    *int64   `json:"income"`
	Tags      []string `json:"tags,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Needs     []string `json:"needs,omitempty"`
}

// HasTag reports whether the profile carries the given tag
// (case-sensitive; tags are normalized at extraction time).
func (p *UserProfile) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasSignal reports whether any extractable signal was found: an age,
// an income, a gender, a state or at least one tag. Profiles without
// signal short-circuit the pipeline as invalid input.
func (p *UserProfile) HasSignal() bool {
	return p.Age != nil || p.Income != nil || p.Gender != "" || p.State != "" || len(p.Tags) > 0
}

// IsBPL reports whether the user declared a below-poverty-line income.
func (p *UserProfile) IsBPL() bool {
	return p.Income != nil && *p.Income == IncomeBPL
}
