package extract

import (
	"regexp"
	"sort"
)

// tagPatterns maps each canonical profile tag to the keyword pattern
// that triggers it. Unlike gender detection, tag matching keeps every
// hit: a user can be a farmer, disabled and BPL at the same time.
var tagPatterns = map[string]*regexp.Regexp{
	// Occupation
	"student":      regexp.MustCompile(`\b(student|college|school|scholar)\b`),
	"farmer":       regexp.MustCompile(`\b(farmer|farming)\b|agricultur`),
	"entrepreneur": regexp.MustCompile(`\b(entrepreneur|startup|msme)\b|self[ -]?employ`),
	"artisan":      regexp.MustCompile(`\b(artisan|handloom|weaver)\b`),
	"fisherman":    regexp.MustCompile(`fisher`),
	"teacher":      regexp.MustCompile(`\b(teacher|professor|lecturer)\b`),
	"worker":       regexp.MustCompile(`\b(labour|labourer|worker)\b`),

	// Social category
	"sc":       regexp.MustCompile(`\bsc\b|scheduled caste`),
	"st":       regexp.MustCompile(`\bst\b|scheduled tribe|adivasi`),
	"obc":      regexp.MustCompile(`\bobc\b|backward class`),
	"ews":      regexp.MustCompile(`\bews\b`),
	"minority": regexp.MustCompile(`\b(minority|muslim|christian|sikh|buddhist|jain)\b`),

	// Special population
	"widow":          regexp.MustCompile(`\bwidow\b`),
	"pregnant_woman": regexp.MustCompile(`pregnan|maternity`),
	"disabled":       regexp.MustCompile(`\b(disabled|divyang|pwd)\b|differently abled`),
	"bpl":            regexp.MustCompile(`\bbpl\b|below poverty`),

	// Residence
	"rural": regexp.MustCompile(`\b(rural|village|panchayat)\b`),
	"urban": regexp.MustCompile(`\b(urban|city|municipal|town)\b`),

	// Life stage
	"senior": regexp.MustCompile(`\b(senior|elder|elderly|pension)\b|old age`),
	"youth":  regexp.MustCompile(`\byouth\b`),
}

// ExtractTags returns every tag whose keyword pattern matches the
// lowercased text, deduplicated and sorted for stable output.
func ExtractTags(lower string) []string {
	var tags []string
	for tag, pat := range tagPatterns {
		if pat.MatchString(lower) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
