package repos

import (
	"context"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

const eventsTable = "events"

var eventColumns = []string{
	"id", "organizer_id", "name", "categories", "description", "image",
	"start_date", "end_date", "location", "coordinator_group_id",
	"status", "view",
}

// EventDates is the projection used when only the temporal extent matters,
// e.g. validating a child program's date.
type EventDates struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type EventRepo struct {
	c *client.Client
}

func NewEventRepo(c *client.Client) *EventRepo {
	return &EventRepo{c: c}
}

func (r *EventRepo) Create(ctx context.Context, e model.Event) (string, error) {
	row, err := toRow(e)
	if err != nil {
		return "", err
	}
	id, ok := r.c.InsertRow(ctx, eventsTable, row)
	if !ok {
		return "", ErrNotLoaded
	}
	return id, nil
}

func (r *EventRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	row, err := r.c.FetchFields(ctx, eventsTable, id, "id", eventColumns)
	if err != nil {
		return nil, err
	}
	var e model.Event
	if err := fromRow(row, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) GetDates(ctx context.Context, id string) (*EventDates, error) {
	row, err := r.c.FetchFields(ctx, eventsTable, id, "id", []string{"start_date", "end_date"})
	if err != nil {
		return nil, err
	}
	var dates EventDates
	if err := fromRow(row, &dates); err != nil {
		return nil, err
	}
	return &dates, nil
}

func (r *EventRepo) Save(ctx context.Context, id string, fields map[string]any) Report {
	return BatchSave(ctx, r.c, eventsTable, id, "id", fields)
}

// Cancel flags the event; events are never hard-deleted.
func (r *EventRepo) Cancel(ctx context.Context, id string) bool {
	return r.c.SaveField(ctx, eventsTable, id, "id", "status", model.StatusCancelled)
}

func (r *EventRepo) SetView(ctx context.Context, id, view string) bool {
	return r.c.SaveField(ctx, eventsTable, id, "id", "view", view)
}
