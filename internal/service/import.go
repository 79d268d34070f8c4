package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yclin/travel-planner/internal/domain"
)

// Import rebuilds a trip from a portable document. It always creates a
// brand-new trip — identifiers in the document are remapped, never reused.
// The payload is validated before any write: a document without a trip key
// fails with domain.ErrStructure and leaves nothing behind.
//
// Members are matched weakly against the existing registry — exact
// case-insensitive email first, then exact name — and only created when
// neither matches. Day numbers are honored by filling gaps with empty days,
// so a document claiming day 5 lands on day 5.
func (s *ExportService) Import(ctx context.Context, payload []byte) (domain.Trip, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: parse: %w", domain.ErrStructure)
	}
	if _, ok := probe["trip"]; !ok {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: document has no trip: %w", domain.ErrStructure)
	}

	var doc domain.ExportDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: decode: %w", domain.ErrStructure)
	}

	trip, err := s.trips.Create(ctx, domain.TripInput{
		Title:       doc.Trip.TripTitle,
		Destination: doc.Trip.Destination,
		StartDate:   doc.Trip.StartDate,
		EndDate:     doc.Trip.EndDate,
		Currency:    doc.Trip.Currency,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}

	memberMap, err := s.importMembers(ctx, trip.ID, doc.Members)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}

	if err := s.importDays(ctx, trip.ID, doc.Days, memberMap); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}

	for _, cl := range doc.Checklists {
		if err := s.importChecklist(ctx, trip.ID, cl); err != nil {
			return domain.Trip{}, fmt.Errorf("service.ExportService.Import: %w", err)
		}
	}

	// Re-read so normalized dates and defaults are reflected.
	imported, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}
	return imported, nil
}

// importMembers resolves the document's members against the registry and
// links them to the new trip. Returns old member ID -> new member ID.
func (s *ExportService) importMembers(ctx context.Context, tripID string, docMembers []domain.ExportMember) (map[string]string, error) {
	existing, err := s.members.List(ctx, false)
	if err != nil {
		return nil, err
	}

	memberMap := make(map[string]string, len(docMembers))
	for _, dm := range docMembers {
		name := strings.TrimSpace(dm.Name)
		if name == "" {
			continue
		}

		match := matchMember(existing, name, strings.TrimSpace(dm.Email))
		if match == nil {
			created, err := s.members.Create(ctx, name, dm.Role, dm.Email)
			if err != nil {
				return nil, err
			}
			existing = append(existing, created)
			match = &created
		}

		if err := s.members.AddToTrip(ctx, tripID, match.ID); err != nil {
			return nil, err
		}
		if dm.MemberID != "" {
			memberMap[dm.MemberID] = match.ID
		}
	}
	return memberMap, nil
}

// matchMember finds an existing member by case-insensitive email, then by
// exact name. Returns nil when nothing matches.
func matchMember(existing []domain.Member, name, email string) *domain.Member {
	if email != "" {
		for i := range existing {
			if strings.EqualFold(existing[i].Email, email) {
				return &existing[i]
			}
		}
	}
	for i := range existing {
		if existing[i].Name == name {
			return &existing[i]
		}
	}
	return nil
}

// importDays lands each document day on its claimed day_no, creating empty
// filler days for any gaps, then recreates its events and tasks.
func (s *ExportService) importDays(ctx context.Context, tripID string, docDays []domain.ExportDay, memberMap map[string]string) error {
	sorted := make([]domain.ExportDay, len(docDays))
	copy(sorted, docDays)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DayNo < sorted[j].DayNo })

	// Trip creation already made day 1.
	maxDayNo := 1

	for _, dd := range sorted {
		dayNo := dd.DayNo
		if dayNo < 1 {
			dayNo = 1
		}
		for maxDayNo < dayNo {
			if _, err := s.days.Add(ctx, tripID); err != nil {
				return err
			}
			maxDayNo++
		}

		day, err := s.days.store.Repos().Days.GetByTripAndNo(ctx, tripID, dayNo)
		if err != nil {
			return err
		}
		// Empty date/note fields are left alone, so day 1 keeps the start
		// date it inherited from trip creation instead of being blanked by
		// a document that never set one.
		if dd.Date != "" || dd.Note != "" {
			patch := domain.DayPatch{}
			if dd.Date != "" {
				patch.Date = &dd.Date
			}
			if dd.Note != "" {
				patch.Note = &dd.Note
			}
			if _, err := s.days.Update(ctx, day.ID, patch); err != nil {
				return err
			}
		}

		for _, de := range dd.Events {
			if err := s.importEvent(ctx, tripID, day.ID, de, memberMap); err != nil {
				return err
			}
		}
	}
	return nil
}

// importEvent recreates one event and its tasks under the given day.
func (s *ExportService) importEvent(ctx context.Context, tripID, dayID string, de domain.ExportEvent, memberMap map[string]string) error {
	event, err := s.events.Add(ctx, tripID, dayID)
	if err != nil {
		return err
	}

	cost := de.Cost.String()
	patch := domain.EventPatch{
		Time:     &de.Time,
		Title:    &de.Title,
		Location: &de.Location,
		Category: &de.Category,
		Cost:     &cost,
		Notes:    &de.Notes,
		Tags:     &de.Tags,
	}
	if _, err := s.events.Update(ctx, event.ID, patch); err != nil {
		return err
	}

	for _, dt := range de.Tasks {
		if strings.TrimSpace(dt.Text) == "" {
			continue
		}

		var assignee *string
		if dt.AssigneeID != nil {
			if newID, ok := memberMap[*dt.AssigneeID]; ok {
				assignee = &newID
			}
		}

		task, err := s.tasks.Add(ctx, tripID, event.ID, dt.Text, assignee)
		if err != nil {
			return err
		}

		// Legacy documents mark progress with completed instead of status.
		status := dt.Status
		if status == "" && dt.Completed {
			status = string(domain.StatusDone)
		}
		tp := domain.TaskPatch{}
		if status != "" && domain.NormalizeStatus(status) != domain.StatusTodo {
			tp.Status = &status
		}
		if dt.DueDate != "" {
			tp.DueDate = &dt.DueDate
		}
		if dt.Priority != 0 && dt.Priority != domain.DefaultPriority {
			tp.Priority = &dt.Priority
		}
		if !tp.IsZero() {
			if _, err := s.tasks.Update(ctx, task.ID, tp); err != nil {
				return err
			}
		}
	}
	return nil
}

// importChecklist recreates one checklist and its items. Checked state is
// applied as a follow-up patch since items are always created unchecked.
func (s *ExportService) importChecklist(ctx context.Context, tripID string, dc domain.ExportChecklist) error {
	cl, err := s.checklists.Add(ctx, tripID, dc.ListKey, dc.Title)
	if err != nil {
		return err
	}

	for _, di := range dc.Items {
		if strings.TrimSpace(di.Text) == "" {
			continue
		}
		item, err := s.checklists.AddItem(ctx, cl.ID, di.Text)
		if err != nil {
			return err
		}
		if di.Checked {
			checked := true
			if _, err := s.checklists.UpdateItem(ctx, item.ID, domain.ItemPatch{Checked: &checked}); err != nil {
				return err
			}
		}
	}
	return nil
}
