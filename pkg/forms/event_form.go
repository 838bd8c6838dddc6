package forms

import (
	"context"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/repos"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

// EventForm is the create/edit screen for an event. A non-empty selection
// event id means edit mode; otherwise submit inserts a new event.
type EventForm struct {
	events *repos.EventRepo
	coords *repos.CoordinatorRepo

	eventID     string
	organizerID string
	groupID     string

	Name         string
	Categories   []string
	Description  string
	Image        string
	Dates        DateMode
	Location     string
	Coordinators CoordinatorList
	Status       string
	View         string

	state      State
	Errors     FieldErrors
	LastReport repos.Report

	original map[string]any
}

func NewEventForm(events *repos.EventRepo, coords *repos.CoordinatorRepo, sel session.Selection, organizerID string) *EventForm {
	return &EventForm{
		events:      events,
		coords:      coords,
		eventID:     sel.EventID,
		organizerID: organizerID,
		Status:      model.StatusScheduled,
		View:        model.ViewStaged,
		Errors:      FieldErrors{},
		state:       StateEmpty,
	}
}

func (f *EventForm) State() State { return f.state }

func (f *EventForm) EventID() string { return f.eventID }

// Load pulls existing data when editing; a new form goes straight to editing.
func (f *EventForm) Load(ctx context.Context) error {
	if f.eventID == "" {
		f.state = StateEditing
		return nil
	}

	f.state = StateLoading
	event, err := f.events.Get(ctx, f.eventID)
	if err != nil {
		f.state = StateEmpty
		return err
	}

	f.Name = event.Name
	f.Categories = event.Categories
	f.Description = event.Description
	f.Image = event.Image
	f.Location = event.Location
	f.Status = event.Status
	f.View = event.View
	f.organizerID = event.OrganizerID
	f.groupID = event.CoordinatorGroupID

	if event.EndDate != "" && event.EndDate != event.StartDate {
		f.Dates = DateMode{Ranged: true, Start: event.StartDate, End: event.EndDate}
	} else {
		f.Dates = DateMode{Single: event.StartDate}
	}

	if f.groupID != "" {
		if slots, err := f.coords.GetGroup(ctx, f.groupID); err == nil {
			f.Coordinators = slots
		}
	}

	f.original = f.fields()
	f.state = StateEditing
	return nil
}

// Validate recomputes the field error map. The event screen requires the
// first coordinator slot specifically.
func (f *EventForm) Validate() bool {
	f.Errors = FieldErrors{
		"name":         f.Name == "",
		"categories":   len(f.Categories) == 0,
		"dates":        !f.Dates.Valid(),
		"location":     f.Location == "",
		"coordinators": !f.Coordinators.FirstSlotComplete() || !f.Coordinators.NoPartialSlots(),
	}
	if f.Errors.Any() {
		f.state = StateValidationFailed
		return false
	}
	f.state = StateEditing
	return true
}

func (f *EventForm) fields() map[string]any {
	start, end := f.Dates.Extent()
	return map[string]any{
		"name":        f.Name,
		"categories":  append([]string(nil), f.Categories...),
		"description": f.Description,
		"image":       f.Image,
		"start_date":  start,
		"end_date":    end,
		"location":    f.Location,
		"status":      f.Status,
		"view":        f.View,
	}
}

// Submit persists the draft: an insert for a new event, a per-field update of
// the changed fields otherwise. Returns the event id on success.
func (f *EventForm) Submit(ctx context.Context) (string, bool) {
	if !f.Validate() {
		return "", false
	}
	f.state = StateSubmitting

	if f.eventID == "" {
		groupID, err := f.coords.CreateGroup(ctx, f.Coordinators.Slots())
		if err != nil {
			f.state = StateFailed
			return "", false
		}
		start, end := f.Dates.Extent()
		id, err := f.events.Create(ctx, model.Event{
			OrganizerID:        f.organizerID,
			Name:               f.Name,
			Categories:         f.Categories,
			Description:        f.Description,
			Image:              f.Image,
			StartDate:          start,
			EndDate:            end,
			Location:           f.Location,
			CoordinatorGroupID: groupID,
			Status:             f.Status,
			View:               f.View,
		})
		if err != nil {
			f.state = StateFailed
			return "", false
		}
		f.eventID = id
		f.groupID = groupID
		f.state = StateSucceeded
		return id, true
	}

	changed := changedFields(f.original, f.fields())
	f.LastReport = f.events.Save(ctx, f.eventID, changed)
	if !f.coords.SaveGroup(ctx, f.groupID, f.Coordinators.Slots()) {
		f.LastReport.Failed = append(f.LastReport.Failed, "coordinators")
	}
	if !f.LastReport.AllSaved() {
		f.state = StateFailed
		return f.eventID, false
	}
	f.original = f.fields()
	f.state = StateSucceeded
	return f.eventID, true
}

// Cancel flags the event as cancelled; events are never hard-deleted.
func (f *EventForm) Cancel(ctx context.Context) bool {
	if f.eventID == "" {
		return false
	}
	if !f.events.Cancel(ctx, f.eventID) {
		return false
	}
	f.Status = model.StatusCancelled
	return true
}
