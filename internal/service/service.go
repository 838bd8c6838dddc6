package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/Mathew005/event-platform-sub000/internal/dto"
	"github.com/Mathew005/event-platform-sub000/internal/files"
	"github.com/Mathew005/event-platform-sub000/internal/mailer"
	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/internal/queue"
	"github.com/Mathew005/event-platform-sub000/internal/store"
	"github.com/Mathew005/event-platform-sub000/pkg/validator"
)

type Service interface {
	Fetch(ctx *ginext.Context)
	Save(ctx *ginext.Context)
	Insert(ctx *ginext.Context)
	Delete(ctx *ginext.Context)
	Bookmark(ctx *ginext.Context)
	Upload(ctx *ginext.Context)
	File(ctx *ginext.Context)
	Auth(ctx *ginext.Context)
	Checkout(ctx *ginext.Context)
	EventOverview(ctx *ginext.Context)
	EventProgramView(ctx *ginext.Context)
	OrganizerDashboard(ctx *ginext.Context)
	ParticipantDashboard(ctx *ginext.Context)
	Analysis(ctx *ginext.Context)
}

type service struct {
	store          store.Store
	files          files.Store
	rmq            *queue.Client
	mail           mailer.Config
	log            *zerolog.Logger
	paymentTimeout int
}

// NewService wires the data endpoints. rmq may be nil; the cron sweeper then
// covers registration lapsing on its own.
func NewService(st store.Store, fs files.Store, rmq *queue.Client, mail mailer.Config, log *zerolog.Logger, paymentTimeoutMinutes int) Service {
	return &service{
		store:          st,
		files:          fs,
		rmq:            rmq,
		mail:           mail,
		log:            log,
		paymentTimeout: paymentTimeoutMinutes,
	}
}

func (s *service) Fetch(ctx *ginext.Context) {
	var req dto.FetchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse fetch request")
		dto.BadRequest(ctx, dto.MsgInvalidJSON)
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequest(ctx, fmt.Sprintf("%v", verr))
		return
	}

	row, err := s.store.FetchFields(req.Table, req.ID, req.IDColumn, req.ColumnTargets)
	if err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			dto.NotFound(ctx, dto.MsgRowNotFound)
			return
		}
		s.log.Error().Err(err).Str("table", req.Table).Msg("fetch failed")
		dto.InternalServerError(ctx)
		return
	}

	// Requested columns are spread at the top level next to the success flag.
	extra := make(map[string]any, len(row))
	for k, v := range row {
		extra[k] = v
	}
	dto.OK(ctx, extra)
}

func (s *service) Save(ctx *ginext.Context) {
	var req dto.SaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse save request")
		dto.BadRequest(ctx, dto.MsgInvalidJSON)
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequest(ctx, fmt.Sprintf("%v", verr))
		return
	}

	err := s.store.SaveField(req.Table, req.ID, req.IDColumn, req.Target, req.Data)
	switch {
	case errors.Is(err, store.ErrNullValue):
		dto.BadRequest(ctx, dto.MsgNullValue)
	case errors.Is(err, store.ErrRowNotFound):
		dto.NotFound(ctx, dto.MsgRowNotFound)
	case err != nil:
		s.log.Error().Err(err).Str("table", req.Table).Str("target", req.Target).Msg("save failed")
		dto.InternalServerError(ctx)
	default:
		dto.OK(ctx, nil)
	}
}

func (s *service) Insert(ctx *ginext.Context) {
	var req dto.InsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse insert request")
		dto.BadRequest(ctx, dto.MsgInvalidJSON)
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequest(ctx, fmt.Sprintf("%v", verr))
		return
	}

	data := store.Row(req.Data)
	if req.Table == "registrations" && fmt.Sprint(data["status"]) == model.RegistrationPending {
		data["expire_at"] = time.Now().UTC().Add(time.Duration(s.paymentTimeout) * time.Minute).Format(time.RFC3339)
	}

	id, err := s.store.InsertRow(req.Table, data)
	if err != nil {
		s.log.Error().Err(err).Str("table", req.Table).Msg("insert failed")
		dto.InternalServerError(ctx)
		return
	}
	s.log.Info().Str("table", req.Table).Str("id", id).Msg("row inserted")

	if req.Table == "registrations" && fmt.Sprint(data["status"]) == model.RegistrationPending {
		s.scheduleLapse(id, fmt.Sprint(data["program_id"]), fmt.Sprint(data["email"]), fmt.Sprint(data["name"]))
	}

	dto.OK(ctx, map[string]any{"insertId": id})
}

// scheduleLapse publishes a delayed cancel message for a payment-pending
// registration. Without a broker the sweeper picks the row up via expire_at.
func (s *service) scheduleLapse(registrationID, programID, email, name string) {
	programName := ""
	if prog, err := s.store.FetchFields("programs", programID, "id", []string{"name"}); err == nil {
		programName = fmt.Sprint(prog["name"])
	}
	if err := mailer.SendRegistrationEmail(s.log, s.mail, programName, model.RegistrationPending, email, s.paymentTimeout); err != nil {
		s.log.Warn().Err(err).Msg("failed to send pending registration email")
	}

	if s.rmq == nil {
		return
	}
	msg := dto.LapseMessage{
		RegistrationID: registrationID,
		ProgramID:      programID,
		ExpireAt:       time.Now().Add(time.Duration(s.paymentTimeout) * time.Minute),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal lapse message")
		return
	}
	if err := s.rmq.Publish(payload, s.paymentTimeout*60); err != nil {
		s.log.Error().Err(err).Msg("failed to publish lapse message")
	}
}

func (s *service) Delete(ctx *ginext.Context) {
	table := ctx.Query("table")
	id := ctx.Query("id")
	column := ctx.Query("column")
	if table == "" || id == "" || column == "" {
		dto.BadRequest(ctx, "table, id and column are required")
		return
	}

	if err := s.store.DeleteRow(table, id, column); err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			dto.NotFound(ctx, dto.MsgRowNotFound)
			return
		}
		s.log.Error().Err(err).Str("table", table).Msg("delete failed")
		dto.InternalServerError(ctx)
		return
	}
	dto.OK(ctx, nil)
}

func (s *service) Bookmark(ctx *ginext.Context) {
	userID := ctx.Query("userId")
	typ := ctx.Query("type")
	action := ctx.Query("action")
	targetID := ctx.Query("bookMarkId")

	if userID == "" || targetID == "" {
		dto.BadRequest(ctx, "userId and bookMarkId are required")
		return
	}
	if typ != "event" && typ != "program" {
		dto.BadRequest(ctx, "type must be event or program")
		return
	}

	switch action {
	case "add":
		if err := s.store.AddBookmark(userID, typ, targetID); err != nil {
			s.log.Error().Err(err).Msg("failed to add bookmark")
			dto.InternalServerError(ctx)
			return
		}
	case "remove":
		if err := s.store.RemoveBookmark(userID, typ, targetID); err != nil {
			s.log.Error().Err(err).Msg("failed to remove bookmark")
			dto.InternalServerError(ctx)
			return
		}
	case "check":
		// read-only
	default:
		dto.BadRequest(ctx, "action must be add, remove or check")
		return
	}

	dto.OK(ctx, map[string]any{"isBookmarked": s.store.IsBookmarked(userID, typ, targetID)})
}

func (s *service) Upload(ctx *ginext.Context) {
	kind := ctx.PostForm("type")
	if !files.ValidKind(kind) {
		dto.BadRequest(ctx, "type must be one of avatar, event, program, docs")
		return
	}

	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		dto.BadRequest(ctx, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read upload")
		dto.InternalServerError(ctx)
		return
	}

	id, err := s.files.Put(kind, data)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store upload")
		dto.InternalServerError(ctx)
		return
	}

	dto.OK(ctx, map[string]any{"url": "/v1/files/" + kind + "/" + id})
}

func (s *service) File(ctx *ginext.Context) {
	data, err := s.files.Get(ctx.Param("kind"), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			dto.NotFound(ctx, "file not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to read file")
		dto.InternalServerError(ctx)
		return
	}
	ctx.Data(200, "application/octet-stream", data)
}

func (s *service) Auth(ctx *ginext.Context) {
	var req dto.AuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(ctx, dto.MsgInvalidJSON)
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequest(ctx, fmt.Sprintf("%v", verr))
		return
	}

	switch req.Action {
	case "register":
		if len(s.store.FindBy("users", "username", req.Username)) > 0 {
			dto.BadRequest(ctx, "username already taken")
			return
		}
		id, err := s.store.InsertRow("users", store.Row{
			"username": req.Username,
			"password": req.Password,
			"role":     req.Role,
			"name":     req.Name,
			"email":    req.Email,
			"phone":    req.Phone,
		})
		if err != nil {
			s.log.Error().Err(err).Msg("failed to register user")
			dto.InternalServerError(ctx)
			return
		}
		s.log.Info().Str("user_id", id).Str("role", req.Role).Msg("user registered")
		dto.OK(ctx, map[string]any{"user": map[string]any{
			"id":       id,
			"username": req.Username,
			"role":     req.Role,
		}})
	case "login":
		rows := s.store.FindBy("users", "username", req.Username)
		if len(rows) == 0 || fmt.Sprint(rows[0]["password"]) != req.Password || fmt.Sprint(rows[0]["role"]) != req.Role {
			dto.BadRequest(ctx, "invalid credentials")
			return
		}
		dto.OK(ctx, map[string]any{"user": map[string]any{
			"id":       fmt.Sprint(rows[0]["id"]),
			"username": req.Username,
			"role":     req.Role,
		}})
	}
}

// Checkout is a dev stand-in for the third-party payment gateway.
func (s *service) Checkout(ctx *ginext.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(ctx, dto.MsgInvalidJSON)
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequest(ctx, fmt.Sprintf("%v", verr))
		return
	}
	dto.OK(ctx, map[string]any{
		"paymentId": "pay-" + strconv.FormatInt(time.Now().UnixNano(), 36),
	})
}

func (s *service) EventOverview(ctx *ginext.Context) {
	var event model.Event
	if !s.loadOne(ctx, "events", ctx.Query("id"), &event) {
		return
	}

	view := dto.EventOverview{
		Event:        event,
		Programs:     s.programsOf(event.ID),
		Coordinators: s.coordinators(event.CoordinatorGroupID),
	}
	dto.OK(ctx, map[string]any{"view": view})
}

func (s *service) EventProgramView(ctx *ginext.Context) {
	var program model.Program
	if !s.loadOne(ctx, "programs", ctx.Query("id"), &program) {
		return
	}
	var event model.Event
	if !s.loadOne(ctx, "events", program.EventID, &event) {
		return
	}

	view := dto.EventProgramView{
		Event:        event,
		Program:      program,
		Coordinators: s.coordinators(program.CoordinatorGroupID),
	}
	dto.OK(ctx, map[string]any{"view": view})
}

func (s *service) OrganizerDashboard(ctx *ginext.Context) {
	id := ctx.Query("id")
	if id == "" {
		dto.BadRequest(ctx, "id is required")
		return
	}

	rows := s.store.FindBy("events", "organizer_id", id)
	sortByID(rows)
	events := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		var e model.Event
		if err := store.Decode(row, &e); err != nil {
			s.log.Error().Err(err).Msg("failed to decode event row")
			continue
		}
		events = append(events, e)
	}

	dto.OK(ctx, map[string]any{"view": dto.OrganizerDashboard{OrganizerID: id, Events: events}})
}

func (s *service) ParticipantDashboard(ctx *ginext.Context) {
	id := ctx.Query("id")
	if id == "" {
		dto.BadRequest(ctx, "id is required")
		return
	}

	view := dto.ParticipantDashboard{ParticipantID: id}

	regRows := s.store.FindBy("registrations", "participant_id", id)
	sortByID(regRows)
	for _, row := range regRows {
		var reg model.Registration
		if err := store.Decode(row, &reg); err != nil {
			continue
		}
		view.Registrations = append(view.Registrations, reg)
		if summary, ok := s.programSummary(reg.ProgramID); ok {
			view.Registered = append(view.Registered, summary)
		}
	}

	markRows := s.store.FindBy("bookmarks", "user_id", id)
	sortByID(markRows)
	for _, row := range markRows {
		if fmt.Sprint(row["type"]) != "program" {
			continue
		}
		if summary, ok := s.programSummary(fmt.Sprint(row["target_id"])); ok {
			view.Bookmarked = append(view.Bookmarked, summary)
		}
	}

	dto.OK(ctx, map[string]any{"view": view})
}

func (s *service) Analysis(ctx *ginext.Context) {
	id := ctx.Query("id")
	if id == "" {
		dto.BadRequest(ctx, "id is required")
		return
	}

	rows := s.store.FindBy("registrations", "event_id", id)
	sortByID(rows)

	view := dto.Analysis{EventID: id}
	for _, row := range rows {
		var reg model.Registration
		if err := store.Decode(row, &reg); err != nil {
			s.log.Error().Err(err).Msg("failed to decode registration row")
			continue
		}
		view.Registrations = append(view.Registrations, reg)
		view.Participants += 1 + len(reg.Members)
	}
	view.Total = len(view.Registrations)

	dto.OK(ctx, map[string]any{"view": view})
}

func (s *service) loadOne(ctx *ginext.Context, table, id string, dst any) bool {
	if id == "" {
		dto.BadRequest(ctx, "id is required")
		return false
	}
	rows := s.store.FindBy(table, "id", id)
	if len(rows) == 0 {
		dto.NotFound(ctx, dto.MsgRowNotFound)
		return false
	}
	if err := store.Decode(rows[0], dst); err != nil {
		s.log.Error().Err(err).Str("table", table).Msg("failed to decode row")
		dto.InternalServerError(ctx)
		return false
	}
	return true
}

func (s *service) programsOf(eventID string) []model.Program {
	rows := s.store.FindBy("programs", "event_id", eventID)
	sortByID(rows)
	out := make([]model.Program, 0, len(rows))
	for _, row := range rows {
		var p model.Program
		if err := store.Decode(row, &p); err != nil {
			s.log.Error().Err(err).Msg("failed to decode program row")
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *service) programSummary(programID string) (dto.ProgramSummary, bool) {
	rows := s.store.FindBy("programs", "id", programID)
	if len(rows) == 0 {
		return dto.ProgramSummary{}, false
	}
	var p model.Program
	if err := store.Decode(rows[0], &p); err != nil {
		return dto.ProgramSummary{}, false
	}
	summary := dto.ProgramSummary{Program: p}
	if eventRows := s.store.FindBy("events", "id", p.EventID); len(eventRows) > 0 {
		var e model.Event
		if err := store.Decode(eventRows[0], &e); err == nil {
			summary.EventName = e.Name
			summary.EventStatus = e.Status
		}
	}
	return summary, true
}

// coordinators reads the fixed four-slot group and drops empty slots.
func (s *service) coordinators(groupID string) []model.Coordinator {
	if groupID == "" {
		return nil
	}
	row, err := s.store.FetchFields("coordinator_groups", groupID, "id", []string{"slots"})
	if err != nil {
		return nil
	}
	raw, err := json.Marshal(row["slots"])
	if err != nil {
		return nil
	}
	var slots []model.Coordinator
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil
	}
	out := slots[:0]
	for _, c := range slots {
		if c.Name != "" || c.Phone != "" || c.Email != "" {
			out = append(out, c)
		}
	}
	return out
}

func sortByID(rows []store.Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, _ := strconv.Atoi(fmt.Sprint(rows[i]["id"]))
		b, _ := strconv.Atoi(fmt.Sprint(rows[j]["id"]))
		return a < b
	})
}
