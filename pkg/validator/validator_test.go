package validator

import (
	"context"
	"strings"
	"testing"
)

type eventDraft struct {
	Name      string `validate:"required"`
	StartDate string `validate:"required,isodate"`
	Phone     string `validate:"omitempty,phone"`
	Fee       int    `validate:"gte=0"`
}

func TestValidDraftPasses(t *testing.T) {
	err := Validate(context.Background(), eventDraft{
		Name:      "Tech Fest",
		StartDate: "2026-03-01",
		Phone:     "9876543210",
	})
	if err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestRequiredMessage(t *testing.T) {
	err := Validate(context.Background(), eventDraft{StartDate: "2026-03-01"})
	if err == nil {
		t.Fatal("missing name passed")
	}
	if !strings.HasPrefix(err.Error(), ErrFieldRequired) {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestISODateTag(t *testing.T) {
	for _, bad := range []string{"01-03-2026", "2026/03/01", "2026-13-40", "tomorrow"} {
		err := Validate(context.Background(), eventDraft{Name: "x", StartDate: bad})
		if err == nil {
			t.Fatalf("date %q passed", bad)
		}
		if !strings.Contains(err.Error(), "YYYY-MM-DD") {
			t.Fatalf("message for %q = %q", bad, err.Error())
		}
	}
}

func TestPhoneTag(t *testing.T) {
	for _, bad := range []string{"12", "phone-number", "+919876543210"} {
		err := Validate(context.Background(), eventDraft{Name: "x", StartDate: "2026-03-01", Phone: bad})
		if err == nil {
			t.Fatalf("phone %q passed", bad)
		}
		if !strings.Contains(err.Error(), "phone") && !strings.Contains(err.Error(), "Phone") {
			t.Fatalf("message for %q = %q", bad, err.Error())
		}
	}
}

func TestNumericBoundMessage(t *testing.T) {
	err := Validate(context.Background(), eventDraft{Name: "x", StartDate: "2026-03-01", Fee: -1})
	if err == nil {
		t.Fatal("negative fee passed")
	}
	if !strings.HasPrefix(err.Error(), ErrFieldBelowMinVal) {
		t.Fatalf("message = %q", err.Error())
	}
}
