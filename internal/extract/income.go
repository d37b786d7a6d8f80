package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jatin/yojana-sahayak/internal/types"
)

var (
	unitIncomeRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(lakh|lac|crore|cr\b|k\b)`)
	rawIncomeRe  = regexp.MustCompile(`\d{4,}`)
	currencyRe   = regexp.MustCompile(`(?:₹|rs\.?|rupees?|,)`)
)

// ParseIncome interprets a free-text income mention. Returns nil when
// no credible income figure is present.
//
// Resolution order: an explicit BPL marker wins; then a number with a
// unit (lakh, crore, k); then a bare run of four or more digits read as
// raw rupees. Shorter digit runs are discarded as noise since they are
// far more likely to be an age or a count.
func ParseIncome(text string) *int64 {
	t := strings.ToLower(text)

	if strings.Contains(t, "bpl") || strings.Contains(t, "below poverty") {
		v := types.IncomeBPL
		return &v
	}

	t = currencyRe.ReplaceAllString(t, "")

	if m := unitIncomeRe.FindStringSubmatch(t); m != nil {
		num, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			v := int64(math.Round(num * unitMultiplier(m[2])))
			return &v
		}
	}

	if m := rawIncomeRe.FindString(t); m != "" {
		v, err := strconv.ParseInt(m, 10, 64)
		if err == nil && v >= 1000 {
			return &v
		}
	}

	return nil
}

func unitMultiplier(unit string) float64 {
	switch strings.TrimSpace(unit) {
	case "lakh", "lac":
		return 100_000
	case "crore", "cr":
		return 10_000_000
	case "k":
		return 1_000
	default:
		return 1
	}
}

// ParseSchemeIncome interprets a scheme's income ceiling as stored in
// the catalog: an integer, a "bpl" marker, or a free-text figure.
func ParseSchemeIncome(raw string) *int64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	if s == "bpl" {
		v := types.IncomeBPL
		return &v
	}
	return ParseIncome(s)
}
