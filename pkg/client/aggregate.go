package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/Mathew005/event-platform-sub000/internal/dto"
	"github.com/Mathew005/event-platform-sub000/pkg/validator"
)

// ErrBadView reports an aggregate response that decoded but failed its shape
// check. A missing field fails here, typed, instead of blowing up wherever
// the view happens to be rendered.
var ErrBadView = errors.New("malformed view response")

func (c *Client) EventOverview(ctx context.Context, eventID string) (*dto.EventOverview, error) {
	var view dto.EventOverview
	if err := c.fetchView(ctx, "event_overview", eventID, &view); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, view.Event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadView, err)
	}
	return &view, nil
}

func (c *Client) EventProgramView(ctx context.Context, programID string) (*dto.EventProgramView, error) {
	var view dto.EventProgramView
	if err := c.fetchView(ctx, "event_program_view", programID, &view); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, view.Program); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadView, err)
	}
	if err := validator.Validate(ctx, view.Event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadView, err)
	}
	return &view, nil
}

func (c *Client) OrganizerDashboard(ctx context.Context, organizerID string) (*dto.OrganizerDashboard, error) {
	var view dto.OrganizerDashboard
	if err := c.fetchView(ctx, "organizer_dashboard", organizerID, &view); err != nil {
		return nil, err
	}
	for _, event := range view.Events {
		if err := validator.Validate(ctx, event); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadView, err)
		}
	}
	return &view, nil
}

func (c *Client) ParticipantDashboard(ctx context.Context, participantID string) (*dto.ParticipantDashboard, error) {
	var view dto.ParticipantDashboard
	if err := c.fetchView(ctx, "participant_dashboard", participantID, &view); err != nil {
		return nil, err
	}
	for _, summary := range view.Registered {
		if err := validator.Validate(ctx, summary.Program); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadView, err)
		}
	}
	return &view, nil
}

func (c *Client) Analysis(ctx context.Context, eventID string) (*dto.Analysis, error) {
	var view dto.Analysis
	if err := c.fetchView(ctx, "analysis", eventID, &view); err != nil {
		return nil, err
	}
	if view.EventID == "" {
		return nil, fmt.Errorf("%w: missing event_id", ErrBadView)
	}
	return &view, nil
}

func (c *Client) fetchView(ctx context.Context, name, id string, dst any) error {
	query := url.Values{}
	query.Set("id", id)
	body, err := c.getJSON(ctx, "/views/"+name, query)
	if err != nil {
		c.log.Error().Err(err).Str("view", name).Str("id", id).Msg("view fetch failed")
		return err
	}

	raw, err := json.Marshal(body["view"])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadView, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadView, err)
	}
	return nil
}
