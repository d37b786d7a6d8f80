package eligibility

import (
	"github.com/jatin/yojana-sahayak/internal/types"
)

// Filter returns the candidates the profile is eligible for under the
// given mode. Strict mode applies every predicate including the hard
// gender check; relaxed mode leaves gender to scoring. Relaxed output
// is therefore always a superset of strict output for the same inputs.
func Filter(candidates []*types.SchemeRecord, profile types.UserProfile, mode types.FilterMode) []*types.SchemeRecord {
	eligible := make([]*types.SchemeRecord, 0, len(candidates))
	for _, s := range candidates {
		if Eligible(s, profile, mode) {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

// Eligible evaluates all applicable predicates for one scheme. A
// scheme passes only if every check passes.
func Eligible(s *types.SchemeRecord, profile types.UserProfile, mode types.FilterMode) bool {
	if !CheckIncome(profile.Income, s.IncomeLimit) {
		return false
	}
	if !CheckState(profile.State, s.StateOrScope) {
		return false
	}
	if !CheckTargets(profile.Tags, s.TargetGroups) {
		return false
	}
	if !CheckAge(profile.Age, s.AgeLimit) {
		return false
	}
	if !CheckDisability(profile.Tags, s.DisabilityTypes) {
		return false
	}
	if mode == types.FilterStrict && !CheckGender(profile.Gender, s.Gender) {
		return false
	}
	return true
}
