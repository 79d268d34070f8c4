package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// AddTask handles POST /trips/{tripID}/events/{eventID}/tasks.
func (s *Server) AddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string  `json:"text"`
		AssigneeID *string `json:"assignee_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	task, err := s.tasks.Add(r.Context(),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "eventID"), req.Text, req.AssigneeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{taskID}.
// Sending "assignee_id": null in the body clears the assignee; omitting the
// key leaves it alone. The two are distinguished by tracking key presence
// during decoding.
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       *string      `json:"text"`
		Status     *string      `json:"status"`
		AssigneeID jsonNullable `json:"assignee_id"`
		DueDate    *string      `json:"due_date"`
		Priority   *int         `json:"priority"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	patch := domain.TaskPatch{
		Text:     req.Text,
		Status:   req.Status,
		DueDate:  req.DueDate,
		Priority: req.Priority,
	}
	if req.AssigneeID.Set {
		if req.AssigneeID.Value == nil {
			patch.Unassign = true
		} else {
			patch.AssigneeID = req.AssigneeID.Value
		}
	}

	task, err := s.tasks.Update(r.Context(), chi.URLParam(r, "taskID"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// jsonNullable distinguishes an absent JSON key from an explicit null.
// UnmarshalJSON only runs when the key is present.
type jsonNullable struct {
	Set   bool
	Value *string
}

func (n *jsonNullable) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
