package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// AddChecklist handles POST /trips/{tripID}/checklists.
func (s *Server) AddChecklist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListKey string `json:"list_key"`
		Title   string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	cl, err := s.checklists.Add(r.Context(), chi.URLParam(r, "tripID"), req.ListKey, req.Title)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cl)
}

// DeleteChecklist handles DELETE /checklists/{checklistID}.
func (s *Server) DeleteChecklist(w http.ResponseWriter, r *http.Request) {
	if err := s.checklists.Delete(r.Context(), chi.URLParam(r, "checklistID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /checklists/{checklistID}/items.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := s.checklists.AddItem(r.Context(), chi.URLParam(r, "checklistID"), req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /items/{itemID}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    *string `json:"text"`
		Checked *bool   `json:"checked"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := s.checklists.UpdateItem(r.Context(), chi.URLParam(r, "itemID"), domain.ItemPatch{
		Text:    req.Text,
		Checked: req.Checked,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.checklists.DeleteItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
