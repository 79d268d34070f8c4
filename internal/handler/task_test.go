package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/handler"
)

// mockTaskServicer is a test double for handler.TaskServicer.
type mockTaskServicer struct {
	add    func(ctx context.Context, tripID, eventID, text string, assigneeID *string) (domain.Task, error)
	update func(ctx context.Context, taskID string, p domain.TaskPatch) (domain.Task, error)
	delete func(ctx context.Context, taskID string) error
}

func (m *mockTaskServicer) Add(ctx context.Context, tripID, eventID, text string, assigneeID *string) (domain.Task, error) {
	return m.add(ctx, tripID, eventID, text, assigneeID)
}
func (m *mockTaskServicer) Update(ctx context.Context, taskID string, p domain.TaskPatch) (domain.Task, error) {
	return m.update(ctx, taskID, p)
}
func (m *mockTaskServicer) Delete(ctx context.Context, taskID string) error {
	return m.delete(ctx, taskID)
}

var _ handler.TaskServicer = (*mockTaskServicer)(nil)

func newTaskRouter(svc handler.TaskServicer) http.Handler {
	return handler.NewServer(nil, nil, nil, svc, nil, nil, nil, nil).Routes()
}

// ---- POST /trips/{tripID}/events/{eventID}/tasks ---------------------------

func TestAddTask_201(t *testing.T) {
	svc := &mockTaskServicer{
		add: func(_ context.Context, tripID, eventID, text string, assigneeID *string) (domain.Task, error) {
			assert.Equal(t, "trip_01hq", tripID)
			assert.Equal(t, "ev_01hq", eventID)
			assert.Equal(t, "buy tickets", text)
			require.NotNil(t, assigneeID)
			assert.Equal(t, "mem_01hq", *assigneeID)
			return domain.Task{ID: "tk_01hq", Text: text, Status: domain.StatusTodo}, nil
		},
	}

	body := jsonBody(t, map[string]any{"text": "buy tickets", "assignee_id": "mem_01hq"})
	req := httptest.NewRequest(http.MethodPost, "/trips/trip_01hq/events/ev_01hq/tasks", body)
	rec := httptest.NewRecorder()

	newTaskRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddTask_422_BlankText(t *testing.T) {
	svc := &mockTaskServicer{
		add: func(_ context.Context, _, _, _ string, _ *string) (domain.Task, error) {
			return domain.Task{}, fmt.Errorf("service.TaskService.Add: text is required: %w", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/trips/trip_01hq/events/ev_01hq/tasks", body)
	rec := httptest.NewRecorder()

	newTaskRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	code, message := decodeErrorBody(t, rec)
	assert.Equal(t, "validation_error", code)
	assert.Equal(t, "text is required", message)
}

// ---- PUT /tasks/{taskID} ---------------------------------------------------

// The assignee key carries three intents: absent (leave alone), null (clear),
// string (assign). Each must arrive at the service as a distinct patch.
func TestUpdateTask_AssigneeKeySemantics(t *testing.T) {
	cases := []struct {
		name         string
		body         string
		wantUnassign bool
		wantAssignee *string
	}{
		{
			name:         "key absent leaves assignee alone",
			body:         `{"status": "done"}`,
			wantUnassign: false,
			wantAssignee: nil,
		},
		{
			name:         "explicit null clears the assignee",
			body:         `{"assignee_id": null}`,
			wantUnassign: true,
			wantAssignee: nil,
		},
		{
			name:         "string value assigns",
			body:         `{"assignee_id": "mem_01hq"}`,
			wantUnassign: false,
			wantAssignee: ptr("mem_01hq"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got domain.TaskPatch
			svc := &mockTaskServicer{
				update: func(_ context.Context, _ string, p domain.TaskPatch) (domain.Task, error) {
					got = p
					return domain.Task{ID: "tk_01hq"}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPut, "/tasks/tk_01hq",
				strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			newTaskRouter(svc).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.wantUnassign, got.Unassign)
			if tc.wantAssignee == nil {
				assert.Nil(t, got.AssigneeID)
			} else {
				require.NotNil(t, got.AssigneeID)
				assert.Equal(t, *tc.wantAssignee, *got.AssigneeID)
			}
		})
	}
}

func TestDeleteTask_204(t *testing.T) {
	svc := &mockTaskServicer{
		delete: func(_ context.Context, taskID string) error {
			assert.Equal(t, "tk_01hq", taskID)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/tasks/tk_01hq", nil)
	rec := httptest.NewRecorder()

	newTaskRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func ptr(s string) *string { return &s }
