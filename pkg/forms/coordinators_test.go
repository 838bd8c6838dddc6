package forms

import (
	"testing"

	"github.com/Mathew005/event-platform-sub000/internal/model"
)

func full(name string) model.Coordinator {
	return model.Coordinator{Name: name, Phone: "9876543210", Email: name + "@x.in"}
}

func TestFirstSlotRule(t *testing.T) {
	var l CoordinatorList
	l[1] = full("meena")

	// a complete later slot does not satisfy the event rule
	if l.FirstSlotComplete() {
		t.Fatal("slot 1 must not satisfy the first-slot rule")
	}
	if !l.AnySlotComplete() {
		t.Fatal("slot 1 must satisfy the any-slot rule")
	}

	l[0] = full("rao")
	if !l.FirstSlotComplete() {
		t.Fatal("complete slot 0 rejected")
	}
}

func TestPartialSlotDetection(t *testing.T) {
	var l CoordinatorList
	l[0] = full("rao")
	if !l.NoPartialSlots() {
		t.Fatal("complete plus empty slots flagged as partial")
	}

	l[2] = model.Coordinator{Name: "half-filled"}
	if l.NoPartialSlots() {
		t.Fatal("partial slot not detected")
	}
}

func TestEmptyListFailsBothRules(t *testing.T) {
	var l CoordinatorList
	if l.FirstSlotComplete() || l.AnySlotComplete() {
		t.Fatal("empty list must fail both completeness rules")
	}
	if !l.NoPartialSlots() {
		t.Fatal("empty list has no partial slots")
	}
}
