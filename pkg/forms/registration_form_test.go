package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
	"github.com/Mathew005/event-platform-sub000/pkg/repos"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

type fakeGateway struct {
	err    error
	orders []client.Order
}

func (g *fakeGateway) Checkout(_ context.Context, order client.Order) (string, error) {
	g.orders = append(g.orders, order)
	if g.err != nil {
		return "", g.err
	}
	return "pay_1", nil
}

func seedProgram(t *testing.T, c *client.Client, p model.Program) (eventID, programID string) {
	t.Helper()
	eventID = seedEvent(t, c)
	p.EventID = eventID
	id, err := repos.NewProgramRepo(c).Create(context.Background(), p)
	if err != nil {
		t.Fatalf("failed to seed program: %v", err)
	}
	return eventID, id
}

func newRegistrationForm(c *client.Client, gw client.Gateway, sel session.Selection) *RegistrationForm {
	f := NewRegistrationForm(repos.NewRegistrationRepo(c), repos.NewProgramRepo(c), gw, sel, "9")
	f.Name = "Asha"
	f.Email = "asha@x.in"
	f.Phone = "9876543210"
	return f
}

func TestFreeRegistrationConfirmsImmediately(t *testing.T) {
	c := newTestBackend(t)
	ctx := context.Background()
	eventID, programID := seedProgram(t, c, model.Program{
		Name: "Quiz", Date: "2026-03-02", MinParticipants: 1, MaxParticipants: 1, Open: true,
	})
	sel := session.Selection{}.WithEvent(eventID).WithProgram(programID)

	gw := &fakeGateway{}
	f := newRegistrationForm(c, gw, sel)
	if err := f.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	id, ok := f.Submit(ctx, "Quiz")
	if !ok {
		t.Fatalf("submit failed, errors %v", f.Errors)
	}
	if len(gw.orders) != 0 {
		t.Fatal("free registration must skip the gateway")
	}

	reg, err := repos.NewRegistrationRepo(c).Get(ctx, id)
	if err != nil {
		t.Fatalf("registration not fetchable: %v", err)
	}
	if reg.Status != model.RegistrationConfirmed {
		t.Fatalf("status = %q, want confirmed", reg.Status)
	}
}

func TestPaidRegistrationGoesThroughGateway(t *testing.T) {
	c := newTestBackend(t)
	ctx := context.Background()
	eventID, programID := seedProgram(t, c, model.Program{
		Name: "Hackathon", Date: "2026-03-02", Fee: 500,
		MinParticipants: 2, MaxParticipants: 4, TeamEvent: true, Open: true,
	})
	sel := session.Selection{}.WithEvent(eventID).WithProgram(programID)

	gw := &fakeGateway{}
	f := newRegistrationForm(c, gw, sel)
	if err := f.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	f.Members = []model.Member{{Name: "Ravi"}}

	id, ok := f.Submit(ctx, "Hackathon")
	if !ok {
		t.Fatalf("submit failed, errors %v", f.Errors)
	}
	if len(gw.orders) != 1 || gw.orders[0].Amount != 500 || gw.orders[0].Description != "Hackathon" {
		t.Fatalf("unexpected checkout order: %#v", gw.orders)
	}

	reg, _ := repos.NewRegistrationRepo(c).Get(ctx, id)
	if reg.Status != model.RegistrationConfirmed {
		t.Fatalf("status = %q, want confirmed", reg.Status)
	}
}

func TestFailedCheckoutLeavesPendingRow(t *testing.T) {
	c := newTestBackend(t)
	ctx := context.Background()
	eventID, programID := seedProgram(t, c, model.Program{
		Name: "Hackathon", Date: "2026-03-02", Fee: 500,
		MinParticipants: 1, MaxParticipants: 1, Open: true,
	})
	sel := session.Selection{}.WithEvent(eventID).WithProgram(programID)

	gw := &fakeGateway{err: errors.New("card declined")}
	f := newRegistrationForm(c, gw, sel)
	if err := f.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	id, ok := f.Submit(ctx, "Hackathon")
	if ok {
		t.Fatal("declined payment must fail the submit")
	}
	if f.State() != StateFailed {
		t.Fatalf("state = %v, want failed", f.State())
	}

	// the pending row stays for the lapse pipeline
	reg, err := repos.NewRegistrationRepo(c).Get(ctx, id)
	if err != nil {
		t.Fatalf("pending row missing: %v", err)
	}
	if reg.Status != model.RegistrationPending {
		t.Fatalf("status = %q, want pending", reg.Status)
	}
}

func TestTeamSizeValidation(t *testing.T) {
	c := newTestBackend(t)
	ctx := context.Background()
	eventID, programID := seedProgram(t, c, model.Program{
		Name: "Hackathon", Date: "2026-03-02",
		MinParticipants: 3, MaxParticipants: 4, TeamEvent: true, Open: true,
	})
	sel := session.Selection{}.WithEvent(eventID).WithProgram(programID)

	f := newRegistrationForm(c, &fakeGateway{}, sel)
	if err := f.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// 2 total, minimum is 3
	f.Members = []model.Member{{Name: "Ravi"}}
	if f.Validate() {
		t.Fatal("undersized team passed validation")
	}
	if !f.Errors["members"] {
		t.Fatal("members not flagged")
	}

	f.Members = append(f.Members, model.Member{Name: "Meena"})
	if !f.Validate() {
		t.Fatalf("valid team rejected: %v", f.Errors)
	}

	// unnamed member
	f.Members = append(f.Members, model.Member{})
	if f.Validate() {
		t.Fatal("unnamed member passed validation")
	}
}

func TestClosedProgramRejectsRegistration(t *testing.T) {
	c := newTestBackend(t)
	ctx := context.Background()
	eventID, programID := seedProgram(t, c, model.Program{
		Name: "Quiz", Date: "2026-03-02", MinParticipants: 1, MaxParticipants: 1, Open: false,
	})
	sel := session.Selection{}.WithEvent(eventID).WithProgram(programID)

	f := newRegistrationForm(c, &fakeGateway{}, sel)
	if err := f.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if f.Validate() {
		t.Fatal("closed program accepted a registration")
	}
	if !f.Errors["closed"] {
		t.Fatal("closed not flagged")
	}
}
