package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/generation"
	"github.com/jonathan/cv-studio/internal/ingest"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/merge"
	"github.com/jonathan/cv-studio/internal/server/middleware"
)

// GenerateContext mirrors generation.Context on the wire.
type GenerateContext struct {
	JobTitle                       string `json:"job_title,omitempty"`
	Company                        string `json:"company,omitempty"`
	Degree                         string `json:"degree,omitempty"`
	Institution                    string `json:"institution,omitempty"`
	SkillCategory                  string `json:"skill_category,omitempty"`
	ApplyDetailedExperienceUpdates bool   `json:"apply_detailed_experience_updates,omitempty"`
}

// GenerateRequest is the body for POST /generate. Input may be replaced by
// JobDescriptionURL for the job-description kinds; the server then fetches
// and extracts the posting text itself. CVID is required for tailoring.
type GenerateRequest struct {
	Kind              string          `json:"kind"`
	Input             string          `json:"input"`
	JobDescriptionURL string          `json:"job_description_url,omitempty"`
	CVID              string          `json:"cv_id,omitempty"`
	Context           GenerateContext `json:"context"`
}

// FragmentPayload is the wire form of a normalized generation fragment.
// Exactly one value field is set, determined by Kind.
type FragmentPayload struct {
	Kind       string              `json:"kind"`
	Text       string              `json:"text,omitempty"`
	Items      []string            `json:"items,omitempty"`
	Experience *cv.ExperienceEntry `json:"experience,omitempty"`
	Education  *cv.EducationEntry  `json:"education,omitempty"`
	Document   *cv.Document        `json:"document,omitempty"`
	Tailoring  *cv.TailoringResult `json:"tailoring,omitempty"`
}

func encodeFragment(kind generation.Kind, fragment generation.Fragment) FragmentPayload {
	payload := FragmentPayload{Kind: string(kind)}
	switch f := fragment.(type) {
	case generation.TextFragment:
		payload.Text = f.Text
	case generation.ListFragment:
		payload.Items = f.Items
	case generation.ExperienceFragment:
		entry := f.Entry
		payload.Experience = &entry
	case generation.EducationFragment:
		entry := f.Entry
		payload.Education = &entry
	case generation.DocumentFragment:
		payload.Document = f.Document
	case generation.TailoringFragment:
		result := f.Result
		payload.Tailoring = &result
	}
	return payload
}

// fragmentField names the value slot a payload kind is allowed to populate.
type fragmentField int

const (
	fieldText fragmentField = iota
	fieldItems
	fieldExperience
	fieldEducation
	fieldDocument
	fieldTailoring
)

func fragmentFieldFor(kind generation.Kind) fragmentField {
	switch kind {
	case generation.KindSummary:
		return fieldText
	case generation.KindExperienceResponsibilities, generation.KindEducationDetails, generation.KindSkillSuggestions:
		return fieldItems
	case generation.KindNewExperienceEntry:
		return fieldExperience
	case generation.KindNewEducationEntry:
		return fieldEducation
	case generation.KindInitialCVFromTitle, generation.KindInitialCVFromJobDescription:
		return fieldDocument
	default:
		return fieldTailoring
	}
}

// checkFragmentShape rejects payloads whose populated value does not belong to
// the declared kind. Decoding such a payload would otherwise coerce the kind's
// own field to its zero value and the merge would silently wipe the target
// section.
func checkFragmentShape(kind generation.Kind, payload FragmentPayload) error {
	want := fragmentFieldFor(kind)
	if (payload.Text != "" && want != fieldText) ||
		(payload.Items != nil && want != fieldItems) ||
		(payload.Experience != nil && want != fieldExperience) ||
		(payload.Education != nil && want != fieldEducation) ||
		(payload.Document != nil && want != fieldDocument) ||
		(payload.Tailoring != nil && want != fieldTailoring) {
		return &merge.MismatchError{Kind: kind, Fragment: nil}
	}
	return nil
}

func decodeFragment(payload FragmentPayload) (generation.Kind, generation.Fragment, error) {
	kind, err := generation.ParseKind(payload.Kind)
	if err != nil {
		return "", nil, err
	}
	if err := checkFragmentShape(kind, payload); err != nil {
		return "", nil, err
	}

	switch kind {
	case generation.KindSummary:
		return kind, generation.TextFragment{Text: payload.Text}, nil
	case generation.KindExperienceResponsibilities, generation.KindEducationDetails, generation.KindSkillSuggestions:
		if payload.Items == nil {
			return "", nil, &merge.MismatchError{Kind: kind, Fragment: nil}
		}
		return kind, generation.ListFragment{Items: payload.Items}, nil
	case generation.KindNewExperienceEntry:
		if payload.Experience == nil {
			return "", nil, &merge.MismatchError{Kind: kind, Fragment: nil}
		}
		return kind, generation.ExperienceFragment{Entry: *payload.Experience}, nil
	case generation.KindNewEducationEntry:
		if payload.Education == nil {
			return "", nil, &merge.MismatchError{Kind: kind, Fragment: nil}
		}
		return kind, generation.EducationFragment{Entry: *payload.Education}, nil
	case generation.KindInitialCVFromTitle, generation.KindInitialCVFromJobDescription:
		if payload.Document == nil {
			return "", nil, &merge.MismatchError{Kind: kind, Fragment: nil}
		}
		return kind, generation.DocumentFragment{Document: payload.Document}, nil
	case generation.KindTailorCVToJobDescription:
		if payload.Tailoring == nil {
			return "", nil, &merge.MismatchError{Kind: kind, Fragment: nil}
		}
		return kind, generation.TailoringFragment{Result: *payload.Tailoring}, nil
	}
	return "", nil, &generation.UnknownKindError{Kind: payload.Kind}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := generation.ParseKind(req.Kind)
	if err != nil {
		errorJSON(w, HTTPStatus(err), err.Error())
		return
	}

	input := req.Input
	if input == "" && req.JobDescriptionURL != "" {
		input, err = ingest.FromURL(r.Context(), req.JobDescriptionURL)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "failed to fetch job description: "+err.Error())
			return
		}
	}

	genCtx := generation.Context{
		JobTitle:                       req.Context.JobTitle,
		Company:                        req.Context.Company,
		Degree:                         req.Context.Degree,
		Institution:                    req.Context.Institution,
		SkillCategory:                  req.Context.SkillCategory,
		ApplyDetailedExperienceUpdates: req.Context.ApplyDetailedExperienceUpdates,
	}

	// Tailoring operates on a stored document.
	if kind == generation.KindTailorCVToJobDescription {
		cvID, err := uuid.Parse(req.CVID)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "cv_id is required for tailoring")
			return
		}
		rec, err := s.db.GetCV(r.Context(), userID, cvID)
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rec == nil {
			notFound := &ErrCVNotFound{CVID: cvID}
			errorJSON(w, HTTPStatus(notFound), notFound.Error())
			return
		}
		genCtx.CV = rec.Document
	}

	fragment, err := s.generate(r, userID, kind, input, genCtx)
	if err != nil {
		errorJSON(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, encodeFragment(kind, fragment))
}

// generate runs the full prompt -> model -> normalize path and records the
// usage event.
func (s *Server) generate(r *http.Request, userID uuid.UUID, kind generation.Kind, input string, genCtx generation.Context) (generation.Fragment, error) {
	if s.llm == nil {
		return nil, llm.ErrNotConfigured
	}

	prompt, wantsJSON, err := generation.BuildPrompt(kind, input, genCtx)
	if err != nil {
		return nil, err
	}

	tier := kind.Tier()
	var raw string
	if wantsJSON {
		raw, err = s.llm.GenerateJSON(r.Context(), prompt, tier)
	} else {
		raw, err = s.llm.GenerateContent(r.Context(), prompt, tier)
	}
	if err != nil {
		if err == llm.ErrNotConfigured {
			return nil, err
		}
		return nil, &ErrUpstream{Err: err}
	}

	fragment, err := generation.Normalize(kind, input, raw)
	if err != nil {
		return nil, err
	}

	// Usage accounting never fails the request.
	if err := s.db.RecordGeneration(r.Context(), userID, string(kind), s.models.GetModel(tier)); err != nil {
		log.Printf("[generate] failed to record event: %v", err)
	}

	return fragment, nil
}

// MergeRequest is the body for POST /cvs/{id}/merge.
type MergeRequest struct {
	Fragment FragmentPayload `json:"fragment"`
	Target   struct {
		Index                int  `json:"index"`
		ApplyDetailedUpdates bool `json:"apply_detailed_updates"`
	} `json:"target"`
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	userID, cvID, ok := s.cvRequest(w, r)
	if !ok {
		return
	}

	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, fragment, err := decodeFragment(req.Fragment)
	if err != nil {
		errorJSON(w, HTTPStatus(err), err.Error())
		return
	}

	rec, err := s.db.GetCV(r.Context(), userID, cvID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		notFound := &ErrCVNotFound{CVID: cvID}
		errorJSON(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	merged, err := merge.Apply(rec.Document, kind, fragment, merge.Target{
		Index:                req.Target.Index,
		ApplyDetailedUpdates: req.Target.ApplyDetailedUpdates,
	})
	if err != nil {
		errorJSON(w, HTTPStatus(err), err.Error())
		return
	}

	if _, err := s.db.UpdateCV(r.Context(), userID, cvID, "", nil, merged); err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec, err = s.db.GetCV(r.Context(), userID, cvID)
	if err != nil || rec == nil {
		errorJSON(w, http.StatusInternalServerError, "failed to load merged cv")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// TailorRequest is the body for POST /cvs/{id}/tailor, the one-shot variant
// of generate-then-merge for job-description tailoring.
type TailorRequest struct {
	JobDescription       string `json:"job_description"`
	JobDescriptionURL    string `json:"job_description_url,omitempty"`
	ApplyDetailedUpdates bool   `json:"apply_detailed_updates"`
}

func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	userID, cvID, ok := s.cvRequest(w, r)
	if !ok {
		return
	}

	var req TailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := req.JobDescription
	if input == "" && req.JobDescriptionURL != "" {
		var err error
		input, err = ingest.FromURL(r.Context(), req.JobDescriptionURL)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "failed to fetch job description: "+err.Error())
			return
		}
	}

	rec, err := s.db.GetCV(r.Context(), userID, cvID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		notFound := &ErrCVNotFound{CVID: cvID}
		errorJSON(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	genCtx := generation.Context{
		CV:                             rec.Document,
		ApplyDetailedExperienceUpdates: req.ApplyDetailedUpdates,
	}
	fragment, err := s.generate(r, userID, generation.KindTailorCVToJobDescription, input, genCtx)
	if err != nil {
		errorJSON(w, HTTPStatus(err), err.Error())
		return
	}

	merged, err := merge.Apply(rec.Document, generation.KindTailorCVToJobDescription, fragment, merge.Target{
		ApplyDetailedUpdates: req.ApplyDetailedUpdates,
	})
	if err != nil {
		errorJSON(w, HTTPStatus(err), err.Error())
		return
	}

	if _, err := s.db.UpdateCV(r.Context(), userID, cvID, "", nil, merged); err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec, err = s.db.GetCV(r.Context(), userID, cvID)
	if err != nil || rec == nil {
		errorJSON(w, http.StatusInternalServerError, "failed to load tailored cv")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
