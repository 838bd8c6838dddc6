package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"github.com/Mathew005/event-platform-sub000/internal/model"
)

const (
	MsgNullValue     = "null value rejected for single-field update"
	MsgUnknownTable  = "unknown table"
	MsgRowNotFound   = "row not found"
	MsgInvalidJSON   = "invalid JSON payload"
	MsgInternalError = "service is currently unavailable, please try again later"
)

// FetchRequest asks for a column subset of a single row.
type FetchRequest struct {
	Table         string   `json:"table" validate:"required"`
	ID            string   `json:"id" validate:"required"`
	IDColumn      string   `json:"idColumn" validate:"required"`
	ColumnTargets []string `json:"columnTargets" validate:"required,min=1"`
}

// SaveRequest updates exactly one column of exactly one row.
type SaveRequest struct {
	Table    string `json:"table" validate:"required"`
	ID       string `json:"id" validate:"required"`
	IDColumn string `json:"idColumn" validate:"required"`
	Target   string `json:"target" validate:"required"`
	Data     any    `json:"data"`
}

type InsertRequest struct {
	Table string         `json:"table" validate:"required"`
	Data  map[string]any `json:"data" validate:"required"`
}

type AuthRequest struct {
	Action   string `json:"action" validate:"required,oneof=login register"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=participant organizer"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type CheckoutRequest struct {
	Amount      int    `json:"amount" validate:"gt=0"`
	Currency    string `json:"currency" validate:"required"`
	Description string `json:"description"`
}

// LapseMessage is published to the delay queue when a paid registration is
// created pending payment capture.
type LapseMessage struct {
	RegistrationID string    `json:"registration_id"`
	ProgramID      string    `json:"program_id"`
	ExpireAt       time.Time `json:"expire_at"`
}

// ProgramSummary is a program row joined with its parent event flags, as the
// dashboard views present it.
type ProgramSummary struct {
	model.Program
	EventName   string `json:"event_name"`
	EventStatus string `json:"event_status"`
}

type EventOverview struct {
	Event        model.Event         `json:"event"`
	Programs     []model.Program     `json:"programs"`
	Coordinators []model.Coordinator `json:"coordinators"`
}

type EventProgramView struct {
	Event        model.Event         `json:"event"`
	Program      model.Program       `json:"program"`
	Coordinators []model.Coordinator `json:"coordinators"`
}

type OrganizerDashboard struct {
	OrganizerID string        `json:"organizer_id"`
	Events      []model.Event `json:"events"`
}

type ParticipantDashboard struct {
	ParticipantID string               `json:"participant_id"`
	Registered    []ProgramSummary     `json:"registered"`
	Bookmarked    []ProgramSummary     `json:"bookmarked"`
	Registrations []model.Registration `json:"registrations"`
}

type Analysis struct {
	EventID       string               `json:"event_id"`
	Registrations []model.Registration `json:"registrations"`
	Total         int                  `json:"total"`
	Participants  int                  `json:"participants"`
}

// The endpoints report success in the body, not by HTTP status alone; clients
// key off the explicit boolean.

func OK(c *ginext.Context, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(200, body)
}

func Fail(c *ginext.Context, status int, msg string) {
	c.JSON(status, map[string]any{"success": false, "message": msg})
}

func BadRequest(c *ginext.Context, msg string) {
	Fail(c, 400, msg)
}

func NotFound(c *ginext.Context, msg string) {
	Fail(c, 404, msg)
}

func InternalServerError(c *ginext.Context) {
	Fail(c, 500, MsgInternalError)
}
