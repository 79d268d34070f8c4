package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ExportTrip handles GET /trips/{tripID}/export.
// The response is the self-contained portable document for the trip.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	doc, err := s.porter.Export(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// ImportTrip handles POST /import.
// The body is an export document; a new trip is always created. A payload
// without a top-level trip object is rejected before anything is written.
func (s *Server) ImportTrip(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondBadRequest(w, "could not read request body")
		return
	}

	trip, err := s.porter.Import(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}
