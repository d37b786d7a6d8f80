package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jatin/yojana-sahayak/internal/extract"
	"github.com/jatin/yojana-sahayak/internal/pipeline"
	"github.com/jatin/yojana-sahayak/internal/types"
)

// recommendRequest is the POST /recommend body. Text and Profile can
// be combined; at least one must be present.
type recommendRequest struct {
	Text    string          `json:"text" validate:"omitempty,max=2000"`
	Profile *profilePayload `json:"profile" validate:"omitempty"`
	Limit   int             `json:"limit" validate:"gte=0,lte=100"`
}

// profilePayload is a structured profile supplied directly by the
// caller instead of being extracted from text.
type profilePayload struct {
	Age       *int     `json:"age" validate:"omitempty,gte=1,lte=120"`
	Gender    string   `json:"gender" validate:"omitempty,oneof=male female"`
	State     string   `json:"state"`
	Income    *int64   `json:"income" validate:"omitempty,gte=-1"`
	Tags      []string `json:"tags" validate:"omitempty,dive,min=1"`
	Interests []string `json:"interests"`
	Needs     []string `json:"needs"`
}

// parseRequest is the POST /parse body.
type parseRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// schemeSummary is the GET /schemes list item shape.
type schemeSummary struct {
	Slug       string `json:"slug"`
	SchemeName string `json:"scheme_name"`
	Category   string `json:"schemeCategory,omitempty"`
	Ministry   string `json:"ministry,omitempty"`
	State      string `json:"state_or_scope,omitempty"`
}

// toProfile converts the payload into the internal profile form, with
// the state canonicalized into the recognized set.
func (p *profilePayload) toProfile() (*types.UserProfile, error) {
	profile := &types.UserProfile{
		Age:       p.Age,
		Gender:    p.Gender,
		Income:    p.Income,
		Interests: p.Interests,
		Needs:     p.Needs,
	}
	for _, t := range p.Tags {
		profile.Tags = append(profile.Tags, strings.ToLower(strings.TrimSpace(t)))
	}
	if s := strings.TrimSpace(p.State); s != "" {
		canon := extract.CanonicalizeState(s)
		if canon == "" {
			return nil, &ErrValidation{Field: "profile.state", Message: "unrecognized state: " + s}
		}
		profile.State = canon
	}
	return profile, nil
}

// handleRecommend runs the full recommendation pipeline for a request.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Text) == "" && req.Profile == nil {
		s.errorResponse(w, http.StatusBadRequest, "either text or profile is required")
		return
	}

	pipelineReq := pipeline.Request{Text: req.Text, Limit: req.Limit}
	if req.Profile != nil {
		profile, err := req.Profile.toProfile()
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		pipelineReq.Profile = profile
	}

	rec := s.svc.Run(r.Context(), pipelineReq)
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleParse extracts a structured profile from text without running
// retrieval or ranking.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		return
	}

	profile := s.svc.Extract(r.Context(), req.Text)
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleListSchemes returns a summary of every catalog entry.
func (s *Server) handleListSchemes(w http.ResponseWriter, _ *http.Request) {
	schemes := s.svc.Schemes()
	summaries := make([]schemeSummary, 0, len(schemes))
	for _, scheme := range schemes {
		summaries = append(summaries, schemeSummary{
			Slug:       scheme.Slug,
			SchemeName: scheme.SchemeName,
			Category:   scheme.SchemeCategory,
			Ministry:   scheme.Ministry,
			State:      scheme.StateOrScope,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":   len(summaries),
		"schemes": summaries,
	})
}

// handleGetScheme returns the full record for one scheme, looked up by
// slug or exact name.
func (s *Server) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("slug")
	scheme := s.svc.Lookup(key)
	if scheme == nil {
		err := &ErrSchemeNotFound{Key: key}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, scheme)
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing the error response itself on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return err
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			vErr := &ErrValidation{Field: first.Field(), Message: "failed " + first.Tag() + " validation"}
			s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
			return vErr
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}
