package forms

import (
	"context"
	"regexp"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{6,15}$`)
)

// ProfileForm edits the role-specific profile field set and saves through
// the whole-profile dump, not per-field updates.
type ProfileForm struct {
	session *session.Context
	client  *client.Client
	role    string

	Draft model.User

	state  State
	Errors FieldErrors
}

func NewProfileForm(sess *session.Context, cl *client.Client, role string) *ProfileForm {
	return &ProfileForm{
		session: sess,
		client:  cl,
		role:    role,
		Errors:  FieldErrors{},
		state:   StateEmpty,
	}
}

func (f *ProfileForm) State() State { return f.state }

func (f *ProfileForm) Load(ctx context.Context, userID string) error {
	f.state = StateLoading
	if err := f.session.FetchUserData(ctx, f.client, userID, f.role); err != nil {
		f.state = StateEmpty
		return err
	}
	f.Draft = f.session.Profile()
	f.state = StateEditing
	return nil
}

func (f *ProfileForm) Validate() bool {
	f.Errors = FieldErrors{
		"name":  f.Draft.Name == "",
		"email": !emailRegex.MatchString(f.Draft.Email),
		"phone": !phoneRegex.MatchString(f.Draft.Phone),
	}
	if f.role == model.RoleOrganizer {
		f.Errors["address"] = f.Draft.Address == ""
	}
	if f.Errors.Any() {
		f.state = StateValidationFailed
		return false
	}
	f.state = StateEditing
	return true
}

func (f *ProfileForm) Submit(ctx context.Context) bool {
	if !f.Validate() {
		return false
	}
	f.state = StateSubmitting

	f.Draft.Role = f.role
	f.session.SetProfile(f.Draft)
	if !f.session.DumpUserData(ctx, f.client, f.role) {
		f.state = StateFailed
		return false
	}
	f.Draft = f.session.Profile()
	f.state = StateSucceeded
	return true
}
