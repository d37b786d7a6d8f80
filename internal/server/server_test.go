package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin/yojana-sahayak/internal/pipeline"
	"github.com/jatin/yojana-sahayak/internal/types"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func testService() *pipeline.Service {
	schemes := []*types.SchemeRecord{
		{
			Slug:         "kisan-credit",
			SchemeName:   "Kisan Credit Card",
			StateOrScope: "All",
			TargetGroups: []string{"farmer"},
			Details:      "Credit support for farmers to buy seeds and equipment",
		},
		{
			Slug:        "merit-scholarship",
			SchemeName:  "Merit Scholarship",
			IncomeLimit: int64Ptr(250_000),
			AgeLimit:    &types.AgeLimit{Min: 16, Max: intPtr(30)},
			Details:     "Scholarship for meritorious students pursuing higher education",
			Ministry:    "Ministry of Education",
		},
	}
	for _, s := range schemes {
		s.RequiredFields = s.DeriveRequiredFields()
	}
	return pipeline.New(schemes, pipeline.Options{Seed: 1})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	srv, err := New(Config{Port: 0, Service: testService()})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "GET", "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["schemes"])
}

func TestRecommend_TextRequest(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend",
		`{"text": "I am a farmer looking for credit support"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var rec types.Recommendation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, types.FilterStrict, rec.Mode)
	assert.NotEmpty(t, rec.RequestID)
	require.NotEmpty(t, rec.Items)
	assert.Equal(t, "kisan-credit", rec.Items[0].Scheme.Slug)
}

func TestRecommend_WeakInput(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend", `{"text": "hi"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var rec types.Recommendation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, types.ModeInvalid, rec.Mode)
	assert.Empty(t, rec.Items)
	assert.NotEmpty(t, rec.Hint)
}

func TestRecommend_StructuredProfile(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend",
		`{"profile": {"age": 21, "gender": "female", "state": "Karnataka", "income": 200000, "tags": ["student"]}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var rec types.Recommendation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, "karnataka", rec.User.State, "state canonicalized")
	require.NotEmpty(t, rec.Items)
}

func TestRecommend_EmptyBodyRejected(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecommend_UnknownStateRejected(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend",
		`{"profile": {"state": "atlantis"}}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unrecognized state")
}

func TestRecommend_InvalidGenderRejected(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend",
		`{"profile": {"gender": "robot"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecommend_MalformedJSONRejected(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/recommend", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestParse(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/parse",
		`{"text": "21 year old female student from karnataka with income 2 lakh"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile types.UserProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	require.NotNil(t, profile.Age)
	assert.Equal(t, 21, *profile.Age)
	assert.Equal(t, "female", profile.Gender)
	assert.Equal(t, "karnataka", profile.State)
	require.NotNil(t, profile.Income)
	assert.Equal(t, int64(200_000), *profile.Income)
}

func TestParse_MissingTextRejected(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "POST", "/parse", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListSchemes(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "GET", "/schemes", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Count   int `json:"count"`
		Schemes []struct {
			Slug string `json:"slug"`
		} `json:"schemes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Schemes, 2)
	assert.Equal(t, "kisan-credit", body.Schemes[0].Slug)
}

func TestGetScheme_BySlug(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "GET", "/schemes/merit-scholarship", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var scheme types.SchemeRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scheme))
	assert.Equal(t, "Merit Scholarship", scheme.SchemeName)
}

func TestGetScheme_NotFound(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "GET", "/schemes/unknown-scheme", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	rr := doJSON(t, newTestServer(t), "OPTIONS", "/recommend", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
