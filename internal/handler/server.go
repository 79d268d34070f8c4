// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server; methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routes builds the chi route tree.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// The *Servicer interfaces define the business operations each handler file
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.

// TripServicer defines the business operations the trip handler depends on.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	GetByID(ctx context.Context, tripID string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, tripID string, p domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, tripID string) error
	GetBundle(ctx context.Context, tripID string) (domain.TripBundle, error)
}

// DayServicer defines the business operations the day handler depends on.
type DayServicer interface {
	Add(ctx context.Context, tripID string) (domain.Day, error)
	Update(ctx context.Context, dayID string, p domain.DayPatch) (domain.Day, error)
	Delete(ctx context.Context, tripID, dayID string) error
}

// EventServicer defines the business operations the event handler depends on.
type EventServicer interface {
	Add(ctx context.Context, tripID, dayID string) (domain.Event, error)
	Update(ctx context.Context, eventID string, p domain.EventPatch) (domain.Event, error)
	Delete(ctx context.Context, tripID, eventID string) error
}

// TaskServicer defines the business operations the task handler depends on.
type TaskServicer interface {
	Add(ctx context.Context, tripID, eventID, text string, assigneeID *string) (domain.Task, error)
	Update(ctx context.Context, taskID string, p domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}

// MemberServicer defines the business operations the member handler depends on.
type MemberServicer interface {
	Create(ctx context.Context, name, role, email string) (domain.Member, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Member, error)
	Update(ctx context.Context, memberID string, p domain.MemberPatch) (domain.Member, error)
	AddToTrip(ctx context.Context, tripID, memberID string) error
	RemoveFromTrip(ctx context.Context, tripID, memberID string) error
}

// ChecklistServicer defines the business operations the checklist handler
// depends on.
type ChecklistServicer interface {
	Add(ctx context.Context, tripID, listKey, title string) (domain.Checklist, error)
	Delete(ctx context.Context, checklistID string) error
	AddItem(ctx context.Context, checklistID, text string) (domain.ChecklistItem, error)
	UpdateItem(ctx context.Context, itemID string, p domain.ItemPatch) (domain.ChecklistItem, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// StatsServicer defines the aggregation operation the stats endpoint depends on.
type StatsServicer interface {
	ForTrip(ctx context.Context, tripID string) (domain.Stats, error)
}

// Porter defines the export/import codec the transfer endpoints depend on.
type Porter interface {
	Export(ctx context.Context, tripID string) (domain.ExportDocument, error)
	Import(ctx context.Context, payload []byte) (domain.Trip, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods live in domain-specific files but all operate on this struct.
type Server struct {
	trips      TripServicer
	days       DayServicer
	events     EventServicer
	tasks      TaskServicer
	members    MemberServicer
	checklists ChecklistServicer
	stats      StatsServicer
	porter     Porter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	days DayServicer,
	events EventServicer,
	tasks TaskServicer,
	members MemberServicer,
	checklists ChecklistServicer,
	stats StatsServicer,
	porter Porter,
) *Server {
	return &Server{
		trips:      trips,
		days:       days,
		events:     events,
		tasks:      tasks,
		members:    members,
		checklists: checklists,
		stats:      stats,
		porter:     porter,
	}
}

// Routes builds the API route tree. The caller mounts it on the root router
// after applying global middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/bundle", s.GetBundle)
			r.Get("/stats", s.GetStats)
			r.Get("/export", s.ExportTrip)

			r.Post("/days", s.AddDay)
			r.Put("/days/{dayID}", s.UpdateDay)
			r.Delete("/days/{dayID}", s.DeleteDay)

			r.Post("/days/{dayID}/events", s.AddEvent)
			r.Put("/events/{eventID}", s.UpdateEvent)
			r.Delete("/events/{eventID}", s.DeleteEvent)

			r.Post("/events/{eventID}/tasks", s.AddTask)

			r.Put("/members/{memberID}", s.LinkMember)
			r.Delete("/members/{memberID}", s.UnlinkMember)

			r.Post("/checklists", s.AddChecklist)
		})
	})

	r.Put("/tasks/{taskID}", s.UpdateTask)
	r.Delete("/tasks/{taskID}", s.DeleteTask)

	r.Post("/members", s.CreateMember)
	r.Get("/members", s.ListMembers)
	r.Put("/members/{memberID}", s.UpdateMember)

	r.Delete("/checklists/{checklistID}", s.DeleteChecklist)
	r.Post("/checklists/{checklistID}/items", s.AddItem)
	r.Put("/items/{itemID}", s.UpdateItem)
	r.Delete("/items/{itemID}", s.DeleteItem)

	r.Post("/import", s.ImportTrip)

	return r
}
