package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// AddEvent handles POST /trips/{tripID}/days/{dayID}/events.
// Events are created blank with defaults and filled in via update.
func (s *Server) AddEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.Add(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "dayID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /trips/{tripID}/events/{eventID}.
// Cost arrives as free text; the service coerces it.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Time     *string `json:"time"`
		Title    *string `json:"title"`
		Location *string `json:"location"`
		Category *string `json:"category"`
		Cost     *string `json:"cost"`
		Notes    *string `json:"notes"`
		Tags     *string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	event, err := s.events.Update(r.Context(), chi.URLParam(r, "eventID"), domain.EventPatch{
		Time:     req.Time,
		Title:    req.Title,
		Location: req.Location,
		Category: req.Category,
		Cost:     req.Cost,
		Notes:    req.Notes,
		Tags:     req.Tags,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /trips/{tripID}/events/{eventID}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := s.events.Delete(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
