package forms

import (
	"context"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/repos"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

// ProgramForm is the create/edit screen for a program inside an event. The
// parent event's date range bounds the program date.
type ProgramForm struct {
	programs *repos.ProgramRepo
	events   *repos.EventRepo
	coords   *repos.CoordinatorRepo

	programID string
	eventID   string
	groupID   string

	eventStart string
	eventEnd   string

	Name         string
	Type         string
	Date         string
	Time         string
	Venue        string
	Image        string
	Rules        string
	RulesDoc     string
	Fee          int
	Team         TeamSize
	Open         bool
	Coordinators CoordinatorList

	state      State
	Errors     FieldErrors
	LastReport repos.Report

	original map[string]any
}

func NewProgramForm(programs *repos.ProgramRepo, events *repos.EventRepo, coords *repos.CoordinatorRepo, sel session.Selection) *ProgramForm {
	return &ProgramForm{
		programs:  programs,
		events:    events,
		coords:    coords,
		programID: sel.ProgramID,
		eventID:   sel.EventID,
		Team:      TeamSize{Min: 1, Max: 1},
		Open:      true,
		Errors:    FieldErrors{},
		state:     StateEmpty,
	}
}

func (f *ProgramForm) State() State { return f.state }

func (f *ProgramForm) ProgramID() string { return f.programID }

func (f *ProgramForm) Load(ctx context.Context) error {
	f.state = StateLoading

	dates, err := f.events.GetDates(ctx, f.eventID)
	if err != nil {
		f.state = StateEmpty
		return err
	}
	f.eventStart, f.eventEnd = dates.StartDate, dates.EndDate

	if f.programID == "" {
		f.state = StateEditing
		return nil
	}

	program, err := f.programs.Get(ctx, f.programID)
	if err != nil {
		f.state = StateEmpty
		return err
	}

	f.Name = program.Name
	f.Type = program.Type
	f.Date = program.Date
	f.Time = program.Time
	f.Venue = program.Venue
	f.Image = program.Image
	f.Rules = program.Rules
	f.RulesDoc = program.RulesDoc
	f.Fee = program.Fee
	f.Team = TeamSize{Min: program.MinParticipants, Max: program.MaxParticipants}
	f.Open = program.Open
	f.groupID = program.CoordinatorGroupID

	if f.groupID != "" {
		if slots, err := f.coords.GetGroup(ctx, f.groupID); err == nil {
			f.Coordinators = slots
		}
	}

	f.original = f.fields()
	f.state = StateEditing
	return nil
}

// Validate recomputes the field error map. The program screen accepts any
// fully populated coordinator slot, not slot 0 specifically.
func (f *ProgramForm) Validate() bool {
	f.Errors = FieldErrors{
		"name":         f.Name == "",
		"date":         !Contains(f.eventStart, f.eventEnd, f.Date),
		"venue":        f.Venue == "",
		"fee":          f.Fee < 0,
		"team":         f.Team.Min < 1 || f.Team.Min > f.Team.Max,
		"coordinators": !f.Coordinators.AnySlotComplete() || !f.Coordinators.NoPartialSlots(),
	}
	if f.Errors.Any() {
		f.state = StateValidationFailed
		return false
	}
	f.state = StateEditing
	return true
}

func (f *ProgramForm) fields() map[string]any {
	return map[string]any{
		"name":             f.Name,
		"type":             f.Type,
		"date":             f.Date,
		"time":             f.Time,
		"venue":            f.Venue,
		"image":            f.Image,
		"rules":            f.Rules,
		"rules_doc":        f.RulesDoc,
		"fee":              f.Fee,
		"min_participants": f.Team.Min,
		"max_participants": f.Team.Max,
		"team_event":       f.Team.TeamEvent(),
		"open":             f.Open,
	}
}

func (f *ProgramForm) Submit(ctx context.Context) (string, bool) {
	if !f.Validate() {
		return "", false
	}
	f.state = StateSubmitting

	if f.programID == "" {
		groupID, err := f.coords.CreateGroup(ctx, f.Coordinators.Slots())
		if err != nil {
			f.state = StateFailed
			return "", false
		}
		id, err := f.programs.Create(ctx, model.Program{
			EventID:            f.eventID,
			Name:               f.Name,
			Type:               f.Type,
			Date:               f.Date,
			Time:               f.Time,
			Venue:              f.Venue,
			Image:              f.Image,
			Rules:              f.Rules,
			RulesDoc:           f.RulesDoc,
			Fee:                f.Fee,
			MinParticipants:    f.Team.Min,
			MaxParticipants:    f.Team.Max,
			TeamEvent:          f.Team.TeamEvent(),
			Open:               f.Open,
			CoordinatorGroupID: groupID,
		})
		if err != nil {
			f.state = StateFailed
			return "", false
		}
		f.programID = id
		f.groupID = groupID
		f.state = StateSucceeded
		return id, true
	}

	changed := changedFields(f.original, f.fields())
	f.LastReport = f.programs.Save(ctx, f.programID, changed)
	if !f.coords.SaveGroup(ctx, f.groupID, f.Coordinators.Slots()) {
		f.LastReport.Failed = append(f.LastReport.Failed, "coordinators")
	}
	if !f.LastReport.AllSaved() {
		f.state = StateFailed
		return f.programID, false
	}
	f.original = f.fields()
	f.state = StateSucceeded
	return f.programID, true
}

// Delete removes the program from the event's list entirely.
func (f *ProgramForm) Delete(ctx context.Context) bool {
	if f.programID == "" {
		return false
	}
	return f.programs.Delete(ctx, f.programID)
}
