package forms

import (
	"context"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
	"github.com/Mathew005/event-platform-sub000/pkg/repos"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

// RegistrationForm signs a participant up for a program. Paid programs go
// through the payment gateway first; the registration is confirmed only when
// checkout succeeds, and a pending row that never gets paid is lapsed by the
// backend.
type RegistrationForm struct {
	registrations *repos.RegistrationRepo
	programs      *repos.ProgramRepo
	gateway       client.Gateway

	programID     string
	eventID       string
	participantID string

	bounds repos.TeamBounds

	Name       string
	Email      string
	Phone      string
	Members    []model.Member
	College    string
	Department string
	Course     string

	state  State
	Errors FieldErrors
}

func NewRegistrationForm(registrations *repos.RegistrationRepo, programs *repos.ProgramRepo, gateway client.Gateway, sel session.Selection, participantID string) *RegistrationForm {
	return &RegistrationForm{
		registrations: registrations,
		programs:      programs,
		gateway:       gateway,
		programID:     sel.ProgramID,
		eventID:       sel.EventID,
		participantID: participantID,
		Errors:        FieldErrors{},
		state:         StateEmpty,
	}
}

func (f *RegistrationForm) State() State { return f.state }

func (f *RegistrationForm) Bounds() repos.TeamBounds { return f.bounds }

func (f *RegistrationForm) Load(ctx context.Context) error {
	f.state = StateLoading
	bounds, err := f.programs.GetTeamBounds(ctx, f.programID)
	if err != nil {
		f.state = StateEmpty
		return err
	}
	f.bounds = *bounds
	f.state = StateEditing
	return nil
}

// Validate enforces the team-size invariant: member count (including the
// primary registrant) within [min, max] for a team event, exactly 1 otherwise.
func (f *RegistrationForm) Validate() bool {
	count := 1 + len(f.Members)
	var sizeOK bool
	if f.bounds.TeamEvent {
		sizeOK = count >= f.bounds.MinParticipants && count <= f.bounds.MaxParticipants
	} else {
		sizeOK = count == 1
	}

	membersOK := true
	for _, m := range f.Members {
		if m.Name == "" {
			membersOK = false
			break
		}
	}

	f.Errors = FieldErrors{
		"name":    f.Name == "",
		"email":   f.Email == "",
		"phone":   f.Phone == "",
		"members": !sizeOK || !membersOK,
		"closed":  !f.bounds.Open,
	}
	if f.Errors.Any() {
		f.state = StateValidationFailed
		return false
	}
	f.state = StateEditing
	return true
}

func (f *RegistrationForm) Submit(ctx context.Context, programName string) (string, bool) {
	if !f.Validate() {
		return "", false
	}
	f.state = StateSubmitting

	reg := model.Registration{
		ProgramID:     f.programID,
		EventID:       f.eventID,
		ParticipantID: f.participantID,
		Name:          f.Name,
		Email:         f.Email,
		Phone:         f.Phone,
		Members:       f.Members,
		College:       f.College,
		Department:    f.Department,
		Course:        f.Course,
		Status:        model.RegistrationConfirmed,
	}

	if f.bounds.Fee > 0 {
		reg.Status = model.RegistrationPending
		id, err := f.registrations.Create(ctx, reg)
		if err != nil {
			f.state = StateFailed
			return "", false
		}

		if _, err := f.gateway.Checkout(ctx, client.Order{
			Amount:      f.bounds.Fee,
			Currency:    "INR",
			Description: programName,
		}); err != nil {
			// the pending row stays; the lapse pipeline cleans it up
			f.state = StateFailed
			return id, false
		}

		if !f.registrations.Confirm(ctx, id) {
			f.state = StateFailed
			return id, false
		}
		f.state = StateSucceeded
		return id, true
	}

	id, err := f.registrations.Create(ctx, reg)
	if err != nil {
		f.state = StateFailed
		return "", false
	}
	f.state = StateSucceeded
	return id, true
}
