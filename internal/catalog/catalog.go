// Package catalog loads the scheme catalog from disk, validates each
// record against the embedded JSON schema and normalizes it into the
// in-memory form the rest of the pipeline works with.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jatin/yojana-sahayak/internal/extract"
	"github.com/jatin/yojana-sahayak/internal/schemas"
	"github.com/jatin/yojana-sahayak/internal/types"
)

//go:embed scheme.schema.json
var schemeSchema string

// LoadError represents a catalog that could not be loaded at all. A
// LoadError is fatal: the process cannot recommend without a catalog.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load catalog %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load catalog %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Rejection records a single catalog entry that failed validation.
// Rejected entries are skipped, not fatal; the loader reports them so
// the operator can fix the data.
type Rejection struct {
	Index int
	Name  string
	Err   error
}

// LoadResult splits a parsed catalog into accepted records and
// rejected entries.
type LoadResult struct {
	Schemes  []*types.SchemeRecord
	Rejected []Rejection
}

// rawScheme is the on-disk shape before normalization. IncomeLimit is
// kept raw because catalogs store it as a number, a "bpl" marker or a
// free-text figure like "8 lakh".
type rawScheme struct {
	Slug            string          `json:"slug"`
	SchemeName      string          `json:"scheme_name"`
	IncomeLimit     json.RawMessage `json:"income_limit"`
	StateOrScope    string          `json:"state_or_scope"`
	Gender          string          `json:"gender"`
	TargetGroups    []string        `json:"target_groups"`
	AgeLimit        *types.AgeLimit `json:"age_limit"`
	DisabilityTypes []string        `json:"disability_types"`
	Details         string          `json:"details"`
	Benefits        string          `json:"benefits"`
	RawEligibility  string          `json:"raw_eligibility"`
	SchemeCategory  string          `json:"schemeCategory"`
	Ministry        string          `json:"ministry"`
	Documents       string          `json:"documents"`
	Application     string          `json:"application"`
	URL             string          `json:"url"`
}

// Load reads and parses a catalog file. An unreadable or structurally
// broken file is a fatal LoadError; individual bad records are skipped
// and reported in the result.
func Load(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "read failed", Cause: err}
	}

	result, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return result, nil
}

// Parse validates and normalizes catalog JSON. The document must be a
// JSON array of scheme objects.
func Parse(data []byte) (*LoadResult, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &LoadError{Message: "catalog must be a JSON array of scheme objects", Cause: err}
	}

	result := &LoadResult{}
	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		scheme, err := parseRecord(raw)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejection{Index: i, Name: recordName(raw), Err: err})
			continue
		}
		if seen[scheme.Slug] {
			result.Rejected = append(result.Rejected, Rejection{
				Index: i,
				Name:  scheme.SchemeName,
				Err:   fmt.Errorf("duplicate slug %q", scheme.Slug),
			})
			continue
		}
		seen[scheme.Slug] = true
		result.Schemes = append(result.Schemes, scheme)
	}

	if len(result.Schemes) == 0 {
		return nil, &LoadError{Message: fmt.Sprintf("no valid records (%d rejected)", len(result.Rejected))}
	}
	return result, nil
}

func parseRecord(raw json.RawMessage) (*types.SchemeRecord, error) {
	if err := schemas.ValidateJSONString(schemeSchema, string(raw)); err != nil {
		return nil, err
	}

	var rs rawScheme
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, err
	}

	scheme := &types.SchemeRecord{
		Slug:            rs.Slug,
		SchemeName:      strings.TrimSpace(rs.SchemeName),
		IncomeLimit:     parseIncomeLimit(rs.IncomeLimit),
		StateOrScope:    strings.TrimSpace(rs.StateOrScope),
		Gender:          strings.ToLower(strings.TrimSpace(rs.Gender)),
		TargetGroups:    cleanGroups(rs.TargetGroups),
		AgeLimit:        rs.AgeLimit,
		DisabilityTypes: cleanGroups(rs.DisabilityTypes),
		Details:         stripHTML(rs.Details),
		Benefits:        stripHTML(rs.Benefits),
		RawEligibility:  stripHTML(rs.RawEligibility),
		SchemeCategory:  strings.TrimSpace(rs.SchemeCategory),
		Ministry:        strings.TrimSpace(rs.Ministry),
		Documents:       stripHTML(rs.Documents),
		Application:     stripHTML(rs.Application),
		URL:             strings.TrimSpace(rs.URL),
	}
	if scheme.Slug == "" {
		scheme.Slug = Slugify(scheme.SchemeName)
	}
	if scheme.Slug == "" {
		return nil, fmt.Errorf("record has no usable slug or name")
	}
	scheme.RequiredFields = scheme.DeriveRequiredFields()
	return scheme, nil
}

// parseIncomeLimit accepts a JSON number, a "bpl" marker or free text
// such as "2.5 lakh". Anything unparseable means unrestricted.
func parseIncomeLimit(raw json.RawMessage) *int64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == types.IncomeBPL || n > 0 {
			return &n
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return extract.ParseSchemeIncome(s)
	}
	return nil
}

func recordName(raw json.RawMessage) string {
	var probe struct {
		Slug       string `json:"slug"`
		SchemeName string `json:"scheme_name"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	if probe.Slug != "" {
		return probe.Slug
	}
	return probe.SchemeName
}

func cleanGroups(groups []string) []string {
	var out []string
	for _, g := range groups {
		if s := strings.TrimSpace(g); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a scheme name.
func Slugify(name string) string {
	s := slugStripRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// stripHTML flattens markup fragments the source portals embed in
// descriptive fields into plain text. Plain strings pass through
// untouched.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	// Pad tags so adjacent elements do not run together once the
	// markup is removed.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "<", " <")))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
