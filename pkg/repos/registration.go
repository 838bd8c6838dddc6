package repos

import (
	"context"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

const registrationsTable = "registrations"

var registrationColumns = []string{
	"id", "program_id", "event_id", "participant_id", "name", "email",
	"phone", "members", "college", "department", "course", "status",
}

type RegistrationRepo struct {
	c *client.Client
}

func NewRegistrationRepo(c *client.Client) *RegistrationRepo {
	return &RegistrationRepo{c: c}
}

func (r *RegistrationRepo) Create(ctx context.Context, reg model.Registration) (string, error) {
	row, err := toRow(reg)
	if err != nil {
		return "", err
	}
	id, ok := r.c.InsertRow(ctx, registrationsTable, row)
	if !ok {
		return "", ErrNotLoaded
	}
	return id, nil
}

func (r *RegistrationRepo) Get(ctx context.Context, id string) (*model.Registration, error) {
	row, err := r.c.FetchFields(ctx, registrationsTable, id, "id", registrationColumns)
	if err != nil {
		return nil, err
	}
	var reg model.Registration
	if err := fromRow(row, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Confirm marks payment as captured, which stops the lapse pipeline from
// cancelling the registration.
func (r *RegistrationRepo) Confirm(ctx context.Context, id string) bool {
	return r.c.SaveField(ctx, registrationsTable, id, "id", "status", model.RegistrationConfirmed)
}

func (r *RegistrationRepo) Delete(ctx context.Context, id string) bool {
	return r.c.DeleteRow(ctx, registrationsTable, id, "id")
}
