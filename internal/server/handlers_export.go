package server

import (
	"fmt"
	"net/http"
)

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
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

	pdfBytes, err := s.exporter.Export(r.Context(), rec.Document)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, fmt.Sprintf("pdf export failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Title+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		return
	}
}
