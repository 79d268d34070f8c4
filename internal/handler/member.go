package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// CreateMember handles POST /members.
func (s *Server) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	member, err := s.members.Create(r.Context(), req.Name, req.Role, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// ListMembers handles GET /members. ?active=true filters to active members.
func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	members, err := s.members.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// UpdateMember handles PUT /members/{memberID}.
// Setting "active": false also unassigns the member from every task.
func (s *Server) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Email  *string `json:"email"`
		Active *bool   `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	member, err := s.members.Update(r.Context(), chi.URLParam(r, "memberID"), domain.MemberPatch{
		Name:   req.Name,
		Role:   req.Role,
		Email:  req.Email,
		Active: req.Active,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// LinkMember handles PUT /trips/{tripID}/members/{memberID}.
// Linking an already-linked member succeeds.
func (s *Server) LinkMember(w http.ResponseWriter, r *http.Request) {
	err := s.members.AddToTrip(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "memberID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnlinkMember handles DELETE /trips/{tripID}/members/{memberID}.
// The member's task assignments within the trip are cleared.
func (s *Server) UnlinkMember(w http.ResponseWriter, r *http.Request) {
	err := s.members.RemoveFromTrip(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "memberID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
