package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// AddDay handles POST /trips/{tripID}/days.
// The new day is appended at the end of the sequence; there is no body.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	day, err := s.days.Add(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, day)
}

// UpdateDay handles PUT /trips/{tripID}/days/{dayID}.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date *string `json:"date"`
		Note *string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	day, err := s.days.Update(r.Context(), chi.URLParam(r, "dayID"), domain.DayPatch{
		Date: req.Date,
		Note: req.Note,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

// DeleteDay handles DELETE /trips/{tripID}/days/{dayID}.
// The remaining days are renumbered back to a contiguous sequence.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	err := s.days.Delete(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "dayID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
