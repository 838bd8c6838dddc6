package forms

import (
	"context"
	"testing"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

func TestProfileFormValidation(t *testing.T) {
	c := newTestBackend(t)
	f := NewProfileForm(session.NewContext(), c, model.RoleOrganizer)

	f.Draft = model.User{Name: "Ravi", Email: "not-an-email", Phone: "12"}
	if f.Validate() {
		t.Fatal("bad email and phone passed validation")
	}
	if !f.Errors["email"] || !f.Errors["phone"] || !f.Errors["address"] {
		t.Fatalf("errors = %v", f.Errors)
	}

	f.Draft.Email = "ravi@x.in"
	f.Draft.Phone = "9876543210"
	f.Draft.Address = "MG Road"
	if !f.Validate() {
		t.Fatalf("valid draft rejected: %v", f.Errors)
	}
}

func TestProfileFormSubmitRoundTrip(t *testing.T) {
	c := newTestBackend(t)
	ctx := context.Background()
	sess := session.NewContext()

	f := NewProfileForm(sess, c, model.RoleParticipant)
	f.Draft = model.User{
		Username: "asha", Name: "Asha",
		Email: "asha@x.in", Phone: "9876543210",
		Course: "B.Tech",
	}
	if !f.Submit(ctx) {
		t.Fatalf("submit failed, errors %v", f.Errors)
	}
	if f.State() != StateSucceeded {
		t.Fatalf("state = %v", f.State())
	}
	id := f.Draft.ID
	if id == "" {
		t.Fatal("submit did not propagate the new id back into the draft")
	}

	reload := NewProfileForm(session.NewContext(), c, model.RoleParticipant)
	if err := reload.Load(ctx, id); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if reload.Draft.Name != "Asha" || reload.Draft.Course != "B.Tech" {
		t.Fatalf("round trip mismatch: %#v", reload.Draft)
	}
}
