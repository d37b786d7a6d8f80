// Package search provides a fuzzy full-text index over the scheme
// catalog. The index is built once at startup and is immutable, so
// concurrent searches need no locking.
package search

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/jatin/yojana-sahayak/internal/types"
)

// tokenRe splits on anything that is not a letter, digit or hyphen.
var tokenRe = regexp.MustCompile(`[^a-z0-9-]+`)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for a query
// token to be credited against a near-miss index term. High enough to
// catch misspellings ("karntaka") without matching unrelated words.
const fuzzyThreshold = 0.92

// fuzzyDiscount reduces the contribution of fuzzy hits relative to
// exact hits.
const fuzzyDiscount = 0.6

// Index is a TF-IDF index over the textual fields of a scheme catalog.
type Index struct {
	schemes   []*types.SchemeRecord
	termFreqs []map[string]float64
	docFreqs  map[string]int
	terms     []string // sorted vocabulary, for fuzzy scans
}

// Hit pairs a scheme with its estimated textual relevance.
type Hit struct {
	Scheme *types.SchemeRecord
	Score  float64
}

// Tokenize lowercases text and splits it into index terms, dropping
// single-character fragments.
func Tokenize(text string) []string {
	parts := tokenRe.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= 2 {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// New builds an index over the catalog. Each scheme's searchable text
// is its name, descriptions, raw eligibility, category and target
// groups.
func New(schemes []*types.SchemeRecord) *Index {
	idx := &Index{
		schemes:   schemes,
		termFreqs: make([]map[string]float64, len(schemes)),
		docFreqs:  make(map[string]int),
	}

	for i, s := range schemes {
		tokens := Tokenize(documentText(s))
		tf := make(map[string]float64, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for tok := range tf {
			tf[tok] /= float64(len(tokens))
			idx.docFreqs[tok]++
		}
		idx.termFreqs[i] = tf
	}

	idx.terms = make([]string, 0, len(idx.docFreqs))
	for term := range idx.docFreqs {
		idx.terms = append(idx.terms, term)
	}
	sort.Strings(idx.terms)

	return idx
}

// Len returns the number of indexed schemes.
func (idx *Index) Len() int {
	return len(idx.schemes)
}

// Search returns up to limit schemes ordered by estimated relevance to
// the query. Schemes with a zero score are omitted; an empty query
// returns nothing.
func (idx *Index) Search(query string, limit int) []Hit {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 || limit <= 0 {
		return nil
	}

	// Resolve each query token to the index terms it should score
	// against: itself when present, otherwise its closest fuzzy
	// neighbor in the vocabulary.
	type resolved struct {
		term   string
		weight float64
	}
	var lookups []resolved
	for _, qt := range queryTokens {
		if _, ok := idx.docFreqs[qt]; ok {
			lookups = append(lookups, resolved{term: qt, weight: 1.0})
			continue
		}
		if near := idx.nearestTerm(qt); near != "" {
			lookups = append(lookups, resolved{term: near, weight: fuzzyDiscount})
		}
	}
	if len(lookups) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(idx.schemes))
	for i := range idx.schemes {
		score := 0.0
		for _, lk := range lookups {
			tf, ok := idx.termFreqs[i][lk.term]
			if !ok {
				continue
			}
			// Smoothed idf: a term present in every document still
			// carries a small positive weight, so queries made only of
			// catalog-wide vocabulary keep returning hits.
			idf := math.Log(1 + float64(len(idx.schemes))/float64(idx.docFreqs[lk.term]))
			score += tf * idf * lk.weight
		}
		if score > 0 {
			hits = append(hits, Hit{Scheme: idx.schemes[i], Score: score})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// nearestTerm finds the vocabulary term most similar to tok, or ""
// when nothing clears the fuzzy threshold. Terms whose length differs
// wildly are skipped before the similarity computation.
func (idx *Index) nearestTerm(tok string) string {
	best := ""
	bestSim := fuzzyThreshold
	for _, term := range idx.terms {
		if abs(len(term)-len(tok)) > 3 {
			continue
		}
		sim := smetrics.JaroWinkler(tok, term, 0.7, 4)
		if sim > bestSim {
			bestSim = sim
			best = term
		}
	}
	return best
}

func documentText(s *types.SchemeRecord) string {
	parts := []string{
		s.SchemeName,
		s.Details,
		s.Benefits,
		s.RawEligibility,
		s.SchemeCategory,
		strings.Join(s.TargetGroups, " "),
	}
	return strings.Join(parts, " ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
