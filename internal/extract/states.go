package extract

import (
	"regexp"
	"sort"
	"strings"
)

// stateAliases maps each canonical state key to the spellings and
// abbreviations users actually type. The canonical keys form a closed
// set: anything that fails to match resolves to "", never to an
// unrecognized string.
var stateAliases = map[string][]string{
	"andhra_pradesh":    {"andhra pradesh", "andhra", "ap"},
	"arunachal_pradesh": {"arunachal pradesh", "arunachal"},
	"assam":             {"assam"},
	"bihar":             {"bihar"},
	"chhattisgarh":      {"chhattisgarh", "chattisgarh"},
	"goa":               {"goa"},
	"gujarat":           {"gujarat"},
	"haryana":           {"haryana"},
	"himachal_pradesh":  {"himachal pradesh", "himachal", "hp"},
	"jharkhand":         {"jharkhand"},
	"karnataka":         {"karnataka", "karntaka", "karnatka", "k'taka"},
	"kerala":            {"kerala"},
	"madhya_pradesh":    {"madhya pradesh", "mp"},
	"maharashtra":       {"maharashtra", "mh"},
	"manipur":           {"manipur"},
	"meghalaya":         {"meghalaya"},
	"mizoram":           {"mizoram"},
	"nagaland":          {"nagaland"},
	"odisha":            {"odisha", "orissa"},
	"punjab":            {"punjab"},
	"rajasthan":         {"rajasthan"},
	"sikkim":            {"sikkim"},
	"tamil_nadu":        {"tamil nadu", "tamilnadu", "tn"},
	"telangana":         {"telangana"},
	"tripura":           {"tripura"},
	"uttar_pradesh":     {"uttar pradesh", "uttarpradesh"},
	"uttarakhand":       {"uttarakhand", "uttaranchal"},
	"west_bengal":       {"west bengal", "westbengal", "wb"},
	"delhi":             {"delhi", "new delhi", "nct"},
}

type stateAlias struct {
	pattern *regexp.Regexp
	alias   string
	canon   string
}

// orderedAliases holds every alias compiled with word boundaries,
// longest alias first so that the most specific spelling wins (and
// short abbreviations never shadow a full state name).
var orderedAliases = buildAliasTable()

func buildAliasTable() []stateAlias {
	var all []stateAlias
	for canon, aliases := range stateAliases {
		for _, a := range aliases {
			pat := regexp.MustCompile(`\b` + regexp.QuoteMeta(a) + `\b`)
			all = append(all, stateAlias{pattern: pat, alias: a, canon: canon})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i].alias) != len(all[j].alias) {
			return len(all[i].alias) > len(all[j].alias)
		}
		return all[i].alias < all[j].alias
	})
	return all
}

// CanonicalStates returns the closed set of recognized state keys.
func CanonicalStates() []string {
	keys := make([]string, 0, len(stateAliases))
	for k := range stateAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CanonicalizeState finds the canonical state key mentioned anywhere in
// the input text. Matching is word-bounded and the longest alias wins.
// Returns "" when no recognized state appears.
func CanonicalizeState(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ""
	}
	if _, ok := stateAliases[t]; ok {
		return t
	}
	for _, sa := range orderedAliases {
		if sa.pattern.MatchString(t) {
			return sa.canon
		}
	}
	return ""
}

// IsCanonicalState reports whether s is a member of the recognized set.
func IsCanonicalState(s string) bool {
	_, ok := stateAliases[s]
	return ok
}
