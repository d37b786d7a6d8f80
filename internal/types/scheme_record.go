// Package types provides type definitions for structured data used throughout the scheme recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// IncomeBPL is the categorical "below poverty line" income sentinel.
// It is distinct from every numeric rupee value and only compares
// equal to itself.
const IncomeBPL int64 = -1

// Required-field names derived from a scheme's eligibility attributes.
const (
	FieldIncome     = "income"
	FieldAge        = "age"
	FieldGender     = "gender"
	FieldState      = "state"
	FieldDisability = "disability"
	FieldCaste      = "caste"
)

// socioCategories are the social-category tags that make caste a
// mandatory field for a scheme.
var socioCategories = map[string]bool{
	"sc": true, "st": true, "obc": true, "ews": true, "minority": true,
}

// AgeLimit represents a scheme's age constraint. Min alone means
// "this age or older"; Min and Max together form an inclusive range.
type AgeLimit struct {
	Min int  `json:"min"`
	Max *int `json:"max,omitempty"`
}

// Contains reports whether age satisfies the limit.
func (a *AgeLimit) Contains(age int) bool {
	if age < a.Min {
		return false
	}
	if a.Max != nil && age > *a.Max {
		return false
	}
	return true
}

// SchemeRecord represents a government welfare scheme with eligibility
// metadata and descriptive text. Records are loaded once at startup and
// treated as read-only for the lifetime of the process.
type SchemeRecord struct {
	Slug       string `json:"slug"`
	SchemeName string `json:"scheme_name"`

	// Eligibility attributes. A nil IncomeLimit means unrestricted;
	// IncomeBPL marks BPL-only schemes.
	IncomeLimit     *int64    `json:"income_limit,omitempty"`
	StateOrScope    string    `json:"state_or_scope,omitempty"` // comma/pipe list or "All"
	Gender          string    `json:"gender,omitempty"`         // "male", "female", "any" or empty
	TargetGroups    []string  `json:"target_groups,omitempty"`
	AgeLimit        *AgeLimit `json:"age_limit,omitempty"`
	DisabilityTypes []string  `json:"disability_types,omitempty"`

	// Descriptive attributes used only for search and display.
	Details        string `json:"details,omitempty"`
	Benefits       string `json:"benefits,omitempty"`
	RawEligibility string `json:"raw_eligibility,omitempty"`
	SchemeCategory string `json:"schemeCategory,omitempty"`
	Ministry       string `json:"ministry,omitempty"`
	Documents      string `json:"documents,omitempty"`
	Application    string `json:"application,omitempty"`
	URL            string `json:"url,omitempty"`

	// RequiredFields is the derived set of attributes the record
	// actually constrains. Populated by DeriveRequiredFields.
	RequiredFields []string `json:"required_fields,omitempty"`
}

// DeriveRequiredFields computes the set of attribute names this record
// constrains. The result is a pure function of the eligibility
// attributes: recomputing is idempotent and the output is sorted so
// that set equality is comparable by slice equality.
func (s *SchemeRecord) DeriveRequiredFields() []string {
	set := make(map[string]bool)

	if s.IncomeLimit != nil {
		set[FieldIncome] = true
	}
	if s.AgeLimit != nil {
		set[FieldAge] = true
	}
	g := strings.ToLower(strings.TrimSpace(s.Gender))
	if g == "male" || g == "female" {
		set[FieldGender] = true
	}
	scope := strings.ToLower(strings.TrimSpace(s.StateOrScope))
	if scope != "" && scope != "all" {
		set[FieldState] = true
	}
	if len(s.DisabilityTypes) > 0 {
		set[FieldDisability] = true
	}
	for _, tg := range s.TargetGroups {
		if socioCategories[strings.ToLower(strings.TrimSpace(tg))] {
			set[FieldCaste] = true
			break
		}
	}

	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Requires reports whether field is in the record's required set.
func (s *SchemeRecord) Requires(field string) bool {
	for _, f := range s.RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// IsUnconstrained reports whether the scheme declares no eligibility
// criteria at all. Such schemes pass every filter but are too generic
// to be a confident top recommendation.
func (s *SchemeRecord) IsUnconstrained() bool {
	if s.IncomeLimit != nil || s.AgeLimit != nil {
		return false
	}
	g := strings.ToLower(strings.TrimSpace(s.Gender))
	if g == "male" || g == "female" {
		return false
	}
	scope := strings.ToLower(strings.TrimSpace(s.StateOrScope))
	if scope != "" && scope != "all" {
		return false
	}
	return len(s.TargetGroups) == 0 && len(s.DisabilityTypes) == 0
}
