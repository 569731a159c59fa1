package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/server/models"
	"github.com/dmitrijs2005/interntrack/internal/server/services"
)

const healthTimeout = 2 * time.Second

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", res.Username, "user_id", res.UserID)
	writeJSON(w, http.StatusCreated, authResponse{Token: res.Token, Username: res.Username})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: res.Token, Username: res.Username})
}

func (s *Server) listInternships(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	q := r.URL.Query()
	filter, err := services.ParseFilter(q.Get("status"), q.Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.internships.List(r.Context(), id.UserID, filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Internship{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getInternship(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	itemID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.internships.Get(r.Context(), id.UserID, itemID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) createInternship(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	var in models.InternshipInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.internships.Create(r.Context(), id.UserID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateInternship(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	itemID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in models.InternshipInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.internships.Update(r.Context(), id.UserID, itemID, in); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) deleteInternship(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	itemID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.internships.Delete(r.Context(), id.UserID, itemID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.health.Ping(ctx); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
