package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin/yojana-sahayak/internal/types"
)

const sampleCatalog = `[
	{
		"slug": "pm-kisan",
		"scheme_name": "PM Kisan Samman Nidhi",
		"income_limit": "bpl",
		"state_or_scope": "All",
		"target_groups": ["farmer"],
		"details": "<p>Income support of <b>Rs 6000</b> per year</p>",
		"ministry": "Ministry of Agriculture"
	},
	{
		"scheme_name": "Post Matric Scholarship",
		"income_limit": 250000,
		"gender": "any",
		"target_groups": ["sc", "student"],
		"age_limit": {"min": 16, "max": 30}
	},
	{
		"scheme_name": "Free Text Income Scheme",
		"income_limit": "2.5 lakh"
	}
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidCatalog(t *testing.T) {
	result, err := Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)
	require.Len(t, result.Schemes, 3)
	assert.Empty(t, result.Rejected)

	kisan := result.Schemes[0]
	assert.Equal(t, "pm-kisan", kisan.Slug)
	require.NotNil(t, kisan.IncomeLimit)
	assert.Equal(t, types.IncomeBPL, *kisan.IncomeLimit)
	assert.Equal(t, "Income support of Rs 6000 per year", kisan.Details)
	assert.Contains(t, kisan.RequiredFields, types.FieldIncome)

	scholarship := result.Schemes[1]
	assert.Equal(t, "post-matric-scholarship", scholarship.Slug, "slug derived from name")
	require.NotNil(t, scholarship.IncomeLimit)
	assert.Equal(t, int64(250_000), *scholarship.IncomeLimit)
	assert.Contains(t, scholarship.RequiredFields, types.FieldCaste)
	assert.Contains(t, scholarship.RequiredFields, types.FieldAge)
	assert.NotContains(t, scholarship.RequiredFields, types.FieldGender)

	freeText := result.Schemes[2]
	require.NotNil(t, freeText.IncomeLimit)
	assert.Equal(t, int64(250_000), *freeText.IncomeLimit)
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoad_NonArrayIsFatal(t *testing.T) {
	_, err := Load(writeCatalog(t, `{"scheme_name": "not an array"}`))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.NotEmpty(t, le.Path)
}

func TestParse_BadRecordsSkippedNotFatal(t *testing.T) {
	result, err := Parse([]byte(`[
		{"scheme_name": "Good Scheme"},
		{"slug": "no-name-here"},
		{"scheme_name": "Bad Gender", "gender": "robot"}
	]`))
	require.NoError(t, err)
	require.Len(t, result.Schemes, 1)
	assert.Equal(t, "good-scheme", result.Schemes[0].Slug)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.Equal(t, "no-name-here", result.Rejected[0].Name)
}

func TestParse_AllRecordsBadIsFatal(t *testing.T) {
	_, err := Parse([]byte(`[{"gender": "robot"}]`))
	require.Error(t, err)
}

func TestParse_DuplicateSlugRejected(t *testing.T) {
	result, err := Parse([]byte(`[
		{"slug": "same", "scheme_name": "First"},
		{"slug": "same", "scheme_name": "Second"}
	]`))
	require.NoError(t, err)
	assert.Len(t, result.Schemes, 1)
	require.Len(t, result.Rejected, 1)
	assert.Contains(t, result.Rejected[0].Err.Error(), "duplicate slug")
}

func TestParse_NegativeIncomeTreatedAsUnrestricted(t *testing.T) {
	result, err := Parse([]byte(`[{"scheme_name": "Odd Limit", "income_limit": -1}]`))
	require.NoError(t, err)
	require.NotNil(t, result.Schemes[0].IncomeLimit)
	assert.Equal(t, types.IncomeBPL, *result.Schemes[0].IncomeLimit)

	result, err = Parse([]byte(`[{"scheme_name": "Zero Limit", "income_limit": 0}]`))
	require.NoError(t, err)
	assert.Nil(t, result.Schemes[0].IncomeLimit)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "pm-awas-yojana", Slugify("PM Awas Yojana"))
	assert.Equal(t, "scheme-2-0", Slugify("  Scheme 2.0! "))
	assert.Empty(t, Slugify("!!!"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("  plain text "))
	assert.Equal(t, "a b c", stripHTML("<ul><li>a</li><li>b</li><li>c</li></ul>"))
	assert.Equal(t, "nested markup", stripHTML("<div><span>nested</span> <em>markup</em></div>"))
}
