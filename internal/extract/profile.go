// Package extract turns free-text self-descriptions into structured
// user profiles. The deterministic path is always available and never
// fails; an optional Gemini-assisted path falls back to it silently.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jatin/yojana-sahayak/internal/types"
)

const maxPlausibleAge = 120

var (
	maleRe      = regexp.MustCompile(`\b(male|man|men|boy)\b`)
	femaleRe    = regexp.MustCompile(`\b(female|woman|women|girl)\b`)
	digitRunRe  = regexp.MustCompile(`\d+`)
	tokenizerRe = regexp.MustCompile(`[^a-z0-9.']+`)
)

// incomeUnits are tokens that mark the preceding number as a money
// figure rather than an age.
var incomeUnits = map[string]bool{
	"lakh": true, "lac": true, "lakhs": true, "crore": true, "cr": true, "k": true,
}

// FromText extracts a UserProfile from arbitrary input using only
// regex and keyword tables. It never fails: fields that cannot be
// parsed stay unset rather than being guessed.
func FromText(text string) types.UserProfile {
	lower := strings.ToLower(text)

	profile := types.UserProfile{
		Gender: extractGender(lower),
		State:  CanonicalizeState(lower),
		Income: ParseIncome(lower),
		Tags:   ExtractTags(lower),
	}
	profile.Age = extractAge(lower, profile.Income)

	// A female mention doubles as a "women" target-group tag; many
	// schemes declare their audience that way.
	if profile.Gender == "female" && !profile.HasTag("women") {
		profile.Tags = append(profile.Tags, "women")
		sort.Strings(profile.Tags)
	}

	return profile
}

// extractGender applies the fixed lexical sets, scanning left to right
// so that conflicting mentions resolve to the first detected term.
func extractGender(lower string) string {
	male := maleRe.FindStringIndex(lower)
	female := femaleRe.FindStringIndex(lower)

	switch {
	case male == nil && female == nil:
		return ""
	case male == nil:
		return "female"
	case female == nil:
		return "male"
	case female[0] < male[0]:
		return "female"
	default:
		return "male"
	}
}

// extractAge finds the first plausible age token: 1-3 digits, at most
// 120, not followed by a money unit and not part of the detected
// income figure.
func extractAge(lower string, income *int64) *int {
	tokens := tokenizerRe.Split(lower, -1)
	for i, tok := range tokens {
		m := digitRunRe.FindString(tok)
		if m == "" || m != tok || len(tok) > 3 {
			continue
		}
		if i+1 < len(tokens) && incomeUnits[tokens[i+1]] {
			continue
		}
		age := 0
		for _, c := range tok {
			age = age*10 + int(c-'0')
		}
		if age == 0 || age > maxPlausibleAge {
			continue
		}
		if income != nil && int64(age) == *income {
			continue
		}
		return &age
	}
	return nil
}
