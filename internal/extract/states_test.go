package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeState_ExactAndAliases(t *testing.T) {
	cases := map[string]string{
		"karnataka":                     "karnataka",
		"karntaka":                      "karnataka",
		"k'taka":                        "karnataka",
		"orissa":                        "odisha",
		"tamilnadu":                     "tamil_nadu",
		"uttaranchal":                   "uttarakhand",
		"new delhi":                     "delhi",
		"I live in West Bengal":         "west_bengal",
		"from chattisgarh originally":   "chhattisgarh",
		"shifting to Himachal Pradesh":  "himachal_pradesh",
		"andhra side of the border":     "andhra_pradesh",
		"a farmer in uttar pradesh now": "uttar_pradesh",
	}
	for input, want := range cases {
		assert.Equal(t, want, CanonicalizeState(input), "input %q", input)
	}
}

func TestCanonicalizeState_CanonicalKeyPassesThrough(t *testing.T) {
	for _, key := range CanonicalStates() {
		assert.Equal(t, key, CanonicalizeState(key))
	}
}

func TestCanonicalizeState_LongestAliasWins(t *testing.T) {
	// "madhya pradesh" must not be shadowed by the "mp" abbreviation
	// of the same state or by "andhra" matching inside other text.
	assert.Equal(t, "madhya_pradesh", CanonicalizeState("living in madhya pradesh, mp"))
	assert.Equal(t, "himachal_pradesh", CanonicalizeState("himachal pradesh hp"))
}

func TestCanonicalizeState_NoMatch(t *testing.T) {
	assert.Empty(t, CanonicalizeState(""))
	assert.Empty(t, CanonicalizeState("somewhere in europe"))
	assert.Empty(t, CanonicalizeState("scandinavia"))
}

func TestCanonicalizeState_WordBoundaries(t *testing.T) {
	// "goa" inside another word must not match.
	assert.Empty(t, CanonicalizeState("chasing my goals"))
	assert.Equal(t, "goa", CanonicalizeState("a shack in goa"))
}

func TestIsCanonicalState(t *testing.T) {
	assert.True(t, IsCanonicalState("kerala"))
	assert.True(t, IsCanonicalState("tamil_nadu"))
	assert.False(t, IsCanonicalState("tamil nadu"))
	assert.False(t, IsCanonicalState(""))
}

func TestCanonicalStates_SortedClosedSet(t *testing.T) {
	states := CanonicalStates()
	assert.Len(t, states, len(stateAliases))
	assert.IsNonDecreasing(t, states)
}
