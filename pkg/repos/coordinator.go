package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

const coordinatorGroupsTable = "coordinator_groups"

// CoordinatorRepo manages the fixed-width coordinator record shared by
// events and programs. Updates rewrite all four slots at once.
type CoordinatorRepo struct {
	c *client.Client
}

func NewCoordinatorRepo(c *client.Client) *CoordinatorRepo {
	return &CoordinatorRepo{c: c}
}

func (r *CoordinatorRepo) CreateGroup(ctx context.Context, slots [model.CoordinatorSlots]model.Coordinator) (string, error) {
	id, ok := r.c.InsertRow(ctx, coordinatorGroupsTable, client.Row{"slots": slots[:]})
	if !ok {
		return "", ErrNotLoaded
	}
	return id, nil
}

func (r *CoordinatorRepo) SaveGroup(ctx context.Context, groupID string, slots [model.CoordinatorSlots]model.Coordinator) bool {
	return r.c.SaveField(ctx, coordinatorGroupsTable, groupID, "id", "slots", slots[:])
}

func (r *CoordinatorRepo) GetGroup(ctx context.Context, groupID string) ([model.CoordinatorSlots]model.Coordinator, error) {
	var slots [model.CoordinatorSlots]model.Coordinator
	row, err := r.c.FetchFields(ctx, coordinatorGroupsTable, groupID, "id", []string{"slots"})
	if err != nil {
		return slots, err
	}
	if row == nil {
		return slots, ErrNotLoaded
	}
	raw, err := json.Marshal(row["slots"])
	if err != nil {
		return slots, fmt.Errorf("failed to encode slots: %w", err)
	}
	var list []model.Coordinator
	if err := json.Unmarshal(raw, &list); err != nil {
		return slots, fmt.Errorf("failed to decode slots: %w", err)
	}
	copy(slots[:], list)
	return slots, nil
}
