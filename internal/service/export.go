package service

import (
	"context"
	"fmt"

	"github.com/yclin/travel-planner/internal/domain"
)

// ExportService turns a trip into a self-contained portable document and
// back. Export is a read-only deep copy of the bundle; Import is its
// inverse, rebuilt through the regular services so every invariant (day
// numbering, defaults, coercions) holds for imported data too.
type ExportService struct {
	trips      *TripService
	days       *DayService
	events     *EventService
	tasks      *TaskService
	members    *MemberService
	checklists *ChecklistService
}

// NewExportService constructs an ExportService on top of the entity services.
func NewExportService(
	trips *TripService,
	days *DayService,
	events *EventService,
	tasks *TaskService,
	members *MemberService,
	checklists *ChecklistService,
) *ExportService {
	return &ExportService{
		trips:      trips,
		days:       days,
		events:     events,
		tasks:      tasks,
		members:    members,
		checklists: checklists,
	}
}

// Export assembles the trip's bundle and deep-copies it into the portable
// document form, original identifiers included.
func (s *ExportService) Export(ctx context.Context, tripID string) (domain.ExportDocument, error) {
	bundle, err := s.trips.GetBundle(ctx, tripID)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	doc := domain.ExportDocument{
		Trip: domain.ExportTrip{
			TripID:      bundle.Trip.ID,
			TripTitle:   bundle.Trip.Title,
			Destination: bundle.Trip.Destination,
			StartDate:   bundle.Trip.StartDate,
			EndDate:     bundle.Trip.EndDate,
			Currency:    bundle.Trip.Currency,
			CreatedAt:   bundle.Trip.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		Days:       []domain.ExportDay{},
		Checklists: []domain.ExportChecklist{},
		Members:    []domain.ExportMember{},
	}

	for _, day := range bundle.Days {
		ed := domain.ExportDay{
			DayID:  day.ID,
			DayNo:  day.DayNo,
			Date:   day.Date,
			Note:   day.Note,
			Events: []domain.ExportEvent{},
		}
		for _, event := range day.Events {
			ee := domain.ExportEvent{
				EventID:  event.ID,
				Time:     event.Time,
				Title:    event.Title,
				Location: event.Location,
				Category: string(event.Category),
				Cost:     event.Cost,
				Notes:    event.Notes,
				Tags:     event.Tags,
				Tasks:    []domain.ExportTask{},
			}
			for _, task := range event.Tasks {
				ee.Tasks = append(ee.Tasks, domain.ExportTask{
					TaskID:     task.ID,
					Text:       task.Text,
					Status:     string(task.Status),
					AssigneeID: task.AssigneeID,
					DueDate:    task.DueDate,
					Priority:   task.Priority,
					Completed:  task.Completed,
				})
			}
			ed.Events = append(ed.Events, ee)
		}
		doc.Days = append(doc.Days, ed)
	}

	for _, cl := range bundle.Checklists {
		ec := domain.ExportChecklist{
			ChecklistID: cl.ID,
			ListKey:     cl.ListKey,
			Title:       cl.Title,
			Items:       []domain.ExportItem{},
		}
		for _, it := range cl.Items {
			ec.Items = append(ec.Items, domain.ExportItem{
				ItemID:  it.ID,
				Text:    it.Text,
				Checked: it.Checked,
			})
		}
		doc.Checklists = append(doc.Checklists, ec)
	}

	for _, m := range bundle.Members {
		doc.Members = append(doc.Members, domain.ExportMember{
			MemberID: m.ID,
			Name:     m.Name,
			Role:     m.Role,
			Email:    m.Email,
		})
	}

	return doc, nil
}
