// Package eligibility applies per-attribute predicates that shrink a
// candidate set to the schemes a user can actually claim.
//
// Every check is permissive on unknowns, on both sides: a scheme that
// does not constrain an attribute passes regardless of the user, and a
// user who withheld an attribute is never rejected for it. The single
// exception is the BPL income sentinel, which only matches itself.
package eligibility

import (
	"strings"

	"github.com/jatin/yojana-sahayak/internal/extract"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// CheckIncome evaluates the income ceiling predicate.
func CheckIncome(userIncome, schemeLimit *int64) bool {
	if schemeLimit == nil {
		return true
	}
	if *schemeLimit == types.IncomeBPL {
		return userIncome != nil && *userIncome == types.IncomeBPL
	}
	if userIncome == nil {
		return true
	}
	if *userIncome == types.IncomeBPL {
		// A BPL user is below any numeric ceiling.
		return true
	}
	return *userIncome <= *schemeLimit
}

// CheckState evaluates the geographic scope predicate. The scheme's
// scope is a comma/pipe/semicolon-separated list of state names or
// "All"; each entry is canonicalized before comparison.
func CheckState(userState, schemeScope string) bool {
	scope := strings.ToLower(strings.TrimSpace(schemeScope))
	if scope == "" || scope == "all" {
		return true
	}
	if userState == "" {
		return true
	}
	for _, part := range strings.FieldsFunc(schemeScope, func(r rune) bool {
		return r == ',' || r == '|' || r == ';'
	}) {
		if extract.CanonicalizeState(part) == userState {
			return true
		}
	}
	return false
}

// CheckGender evaluates the gender restriction as a hard predicate: a
// scheme restricted to one gender rejects a user of the other.
func CheckGender(userGender, schemeGender string) bool {
	sg := normalizeGender(schemeGender)
	if sg == "" {
		return true
	}
	ug := normalizeGender(userGender)
	if ug == "" {
		return true
	}
	return ug == sg
}

// GenderMatches is the soft variant used for scoring in relaxed mode:
// it reports compatibility rather than deciding rejection.
func GenderMatches(userGender, schemeGender string) bool {
	return CheckGender(userGender, schemeGender)
}

// CheckTargets evaluates the target-group predicate. A profile with no
// tags at all is indeterminate and passes; missing data never hard
// blocks.
func CheckTargets(userTags, schemeGroups []string) bool {
	if len(schemeGroups) == 0 {
		return true
	}
	if len(userTags) == 0 {
		return true
	}
	groups := make(map[string]bool, len(schemeGroups))
	for _, g := range schemeGroups {
		groups[strings.ToLower(strings.TrimSpace(g))] = true
	}
	for _, tag := range userTags {
		if groups[strings.ToLower(strings.TrimSpace(tag))] {
			return true
		}
	}
	return false
}

// CheckAge evaluates the age predicate. A scheme's single age value is
// read as a minimum age; a range is inclusive on both ends.
func CheckAge(userAge *int, limit *types.AgeLimit) bool {
	if limit == nil || userAge == nil {
		return true
	}
	return limit.Contains(*userAge)
}

// CheckDisability evaluates the disability predicate: a scheme listing
// disability types admits users tagged disabled or carrying one of the
// listed types.
func CheckDisability(userTags, disabilityTypes []string) bool {
	if len(disabilityTypes) == 0 {
		return true
	}
	if len(userTags) == 0 {
		return true
	}
	if CheckTargets(userTags, disabilityTypes) {
		return true
	}
	for _, tag := range userTags {
		if strings.EqualFold(strings.TrimSpace(tag), "disabled") {
			return true
		}
	}
	return false
}

func normalizeGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "male", "man", "men", "boy":
		return "male"
	case "female", "woman", "women", "girl":
		return "female"
	default:
		// "any", "all", empty and anything unrecognized mean
		// unrestricted.
		return ""
	}
}
