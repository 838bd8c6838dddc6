package repos

import (
	"context"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

const programsTable = "programs"

var programColumns = []string{
	"id", "event_id", "name", "type", "date", "time", "venue", "image",
	"rules", "rules_doc", "fee", "min_participants", "max_participants",
	"team_event", "open", "coordinator_group_id",
}

// TeamBounds is the projection the registration screen needs to size a team.
type TeamBounds struct {
	MinParticipants int  `json:"min_participants"`
	MaxParticipants int  `json:"max_participants"`
	TeamEvent       bool `json:"team_event"`
	Fee             int  `json:"fee"`
	Open            bool `json:"open"`
}

type ProgramRepo struct {
	c *client.Client
}

func NewProgramRepo(c *client.Client) *ProgramRepo {
	return &ProgramRepo{c: c}
}

func (r *ProgramRepo) Create(ctx context.Context, p model.Program) (string, error) {
	row, err := toRow(p)
	if err != nil {
		return "", err
	}
	id, ok := r.c.InsertRow(ctx, programsTable, row)
	if !ok {
		return "", ErrNotLoaded
	}
	return id, nil
}

func (r *ProgramRepo) Get(ctx context.Context, id string) (*model.Program, error) {
	row, err := r.c.FetchFields(ctx, programsTable, id, "id", programColumns)
	if err != nil {
		return nil, err
	}
	var p model.Program
	if err := fromRow(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgramRepo) GetTeamBounds(ctx context.Context, id string) (*TeamBounds, error) {
	row, err := r.c.FetchFields(ctx, programsTable, id, "id",
		[]string{"min_participants", "max_participants", "team_event", "fee", "open"})
	if err != nil {
		return nil, err
	}
	var bounds TeamBounds
	if err := fromRow(row, &bounds); err != nil {
		return nil, err
	}
	return &bounds, nil
}

func (r *ProgramRepo) Save(ctx context.Context, id string, fields map[string]any) Report {
	return BatchSave(ctx, r.c, programsTable, id, "id", fields)
}

func (r *ProgramRepo) SetOpen(ctx context.Context, id string, open bool) bool {
	return r.c.SaveField(ctx, programsTable, id, "id", "open", open)
}

// Delete removes the program from its event's list. Unlike events, programs
// are hard-deleted.
func (r *ProgramRepo) Delete(ctx context.Context, id string) bool {
	return r.c.DeleteRow(ctx, programsTable, id, "id")
}
