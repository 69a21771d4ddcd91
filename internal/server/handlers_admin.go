package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-studio/internal/server/middleware"
)

// AdminStats is the aggregate usage report for GET /admin/stats.
type AdminStats struct {
	Users           int            `json:"users"`
	CVs             int            `json:"cvs"`
	Generations     int            `json:"generations"`
	GenerationsKind map[string]int `json:"generations_by_kind"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil || !s.cfg.IsAdmin(user.Email) {
		forbidden := &ErrForbidden{}
		errorJSON(w, HTTPStatus(forbidden), forbidden.Error())
		return
	}

	var stats AdminStats
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats.Users, err = s.db.CountUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CVs, err = s.db.CountCVs(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Generations, err = s.db.CountGenerations(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.GenerationsKind, err = s.db.GenerationKindCounts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
