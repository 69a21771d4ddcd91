package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/schemas"
	"github.com/jonathan/cv-studio/internal/server/middleware"
)

// CreateCVRequest is the body for POST /cvs. Document is optional; when
// omitted the CV starts from the placeholder skeleton.
type CreateCVRequest struct {
	Title      string       `json:"title"`
	TemplateID *string      `json:"template_id,omitempty"`
	Document   *cv.Document `json:"document,omitempty"`
}

// UpdateCVRequest is the body for PUT /cvs/{id}. Title and TemplateID are
// optional; when absent the stored values are kept.
type UpdateCVRequest struct {
	Title      string       `json:"title,omitempty"`
	TemplateID *string      `json:"template_id,omitempty"`
	Document   *cv.Document `json:"document"`
}

func (s *Server) handleCreateCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc := req.Document
	if doc == nil {
		doc = cv.NewDocument()
	} else {
		if err := schemas.ValidateDocument(doc); err != nil {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		// Client-supplied entries may arrive without identifiers.
		doc.EnsureIDs()
	}

	title := req.Title
	if title == "" {
		title = "Untitled CV"
	}

	id, err := s.db.CreateCV(r.Context(), userID, title, req.TemplateID, doc)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec, err := s.db.GetCV(r.Context(), userID, id)
	if err != nil || rec == nil {
		errorJSON(w, http.StatusInternalServerError, "failed to load created cv")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := s.db.ListCVs(r.Context(), userID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	userID, cvID, ok := s.cvRequest(w, r)
	if !ok {
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
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateCV(w http.ResponseWriter, r *http.Request) {
	userID, cvID, ok := s.cvRequest(w, r)
	if !ok {
		return
	}

	var req UpdateCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Document == nil {
		errorJSON(w, http.StatusBadRequest, "document is required")
		return
	}
	if err := schemas.ValidateDocument(req.Document); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Document.EnsureIDs()

	updated, err := s.db.UpdateCV(r.Context(), userID, cvID, req.Title, req.TemplateID, req.Document)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !updated {
		notFound := &ErrCVNotFound{CVID: cvID}
		errorJSON(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	rec, err := s.db.GetCV(r.Context(), userID, cvID)
	if err != nil || rec == nil {
		errorJSON(w, http.StatusInternalServerError, "failed to load updated cv")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	userID, cvID, ok := s.cvRequest(w, r)
	if !ok {
		return
	}

	deleted, err := s.db.DeleteCV(r.Context(), userID, cvID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		notFound := &ErrCVNotFound{CVID: cvID}
		errorJSON(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cvRequest extracts the authenticated user and the {id} path value. It
// writes the error response itself when either is missing.
func (s *Server) cvRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	cvID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid cv id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, cvID, true
}
