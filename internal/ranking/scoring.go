// Package ranking scores and orders eligible schemes for a user.
package ranking

import (
	"strings"

	"github.com/jatin/yojana-sahayak/internal/eligibility"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// Score weights. The values are tunable; what must hold is the class
// ordering: explicit keyword-to-category hits outrank general profile
// matches, which outrank secondary quality signals.
const (
	kwCategoryWeight    = 20.0 // literal keyword coincides with a target group
	kwScholarshipWeight = 25.0 // scholarship ask matching a scholarship category
	kwDetailWeight      = 15.0 // keyword found only in scheme details

	targetOverlapWeight = 8.0
	stateMatchWeight    = 5.0
	ageFitWeight        = 4.0
	genderMatchWeight   = 3.0
	incomeMatchWeight   = 3.0
	lifeStageWeight     = 6.0 // age bracket agreeing with eligibility text

	conciseDetailsWeight = 2.0
	genericPenalty       = -6.0

	// Diversity penalties for repeated issuing bodies in the output.
	ministryRepeatPenalty = -4.0
	categoryRepeatPenalty = -2.0
)

// conciseDetailsLimit is the length under which a scheme description
// counts as readable at a glance.
const conciseDetailsLimit = 300

// strongKeywords are the literal input words that, when they coincide
// with a matching target group, mark an explicit ask.
var strongKeywords = []string{"student", "farmer", "widow", "disabled", "women", "pension"}

// HeuristicScore computes the base score of one scheme for a profile
// and the original request text, before diversity adjustment.
func HeuristicScore(s *types.SchemeRecord, profile types.UserProfile, lowerText string) float64 {
	score := 0.0

	// Strong explicit asks: the literal word in the user's own text
	// lining up with the scheme's declared audience.
	for _, kw := range strongKeywords {
		if !containsWord(lowerText, kw) {
			continue
		}
		if hasGroup(s.TargetGroups, kw) {
			score += kwCategoryWeight
		} else if strings.Contains(strings.ToLower(s.Details), kw) {
			score += kwDetailWeight
		}
	}
	if strings.Contains(lowerText, "scholarship") &&
		strings.Contains(strings.ToLower(s.SchemeCategory), "scholar") {
		score += kwScholarshipWeight
	}
	if strings.Contains(lowerText, "entrepreneur") &&
		strings.Contains(strings.ToLower(s.Details), "entrepreneur") {
		score += kwDetailWeight
	}

	// General profile-to-scheme attribute matches.
	if len(s.TargetGroups) > 0 && len(profile.Tags) > 0 &&
		eligibility.CheckTargets(profile.Tags, s.TargetGroups) {
		score += targetOverlapWeight
	}
	if profile.State != "" && eligibility.CheckState(profile.State, s.StateOrScope) {
		score += stateMatchWeight
	}
	if profile.Gender != "" && eligibility.GenderMatches(profile.Gender, s.Gender) {
		score += genderMatchWeight
	}
	if profile.Income != nil && eligibility.CheckIncome(profile.Income, s.IncomeLimit) {
		score += incomeMatchWeight
	}
	if profile.Age != nil && s.AgeLimit != nil && eligibility.CheckAge(profile.Age, s.AgeLimit) {
		score += ageFitWeight
	}
	score += lifeStageBonus(profile.Age, s.RawEligibility)

	// Secondary quality signals.
	if n := len(s.Details); n > 0 && n < conciseDetailsLimit {
		score += conciseDetailsWeight
	}

	// Schemes that constrain nothing match everyone and therefore
	// recommend no one in particular.
	if s.IsUnconstrained() {
		score += genericPenalty
	}

	return score
}

// lifeStageBonus rewards schemes whose eligibility text names the age
// bracket the user is in.
func lifeStageBonus(age *int, rawEligibility string) float64 {
	if age == nil || rawEligibility == "" {
		return 0
	}
	e := strings.ToLower(rawEligibility)
	bonus := 0.0
	if *age < 25 && strings.Contains(e, "student") {
		bonus += lifeStageWeight
	}
	if *age < 30 && strings.Contains(e, "youth") {
		bonus += lifeStageWeight
	}
	if *age > 60 && strings.Contains(e, "senior") {
		bonus += lifeStageWeight
	}
	return bonus
}

func hasGroup(groups []string, kw string) bool {
	for _, g := range groups {
		if strings.EqualFold(strings.TrimSpace(g), kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether lowerText contains kw as a whole word.
func containsWord(lowerText, kw string) bool {
	idx := 0
	for {
		i := strings.Index(lowerText[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordByte(lowerText[start-1])
		afterOK := end == len(lowerText) || !isWordByte(lowerText[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}
