package forms

import "github.com/Mathew005/event-platform-sub000/internal/model"

// CoordinatorList is the fixed four-slot draft attached to an event or
// program form.
type CoordinatorList [model.CoordinatorSlots]model.Coordinator

func slotComplete(c model.Coordinator) bool {
	return c.Name != "" && c.Phone != "" && c.Email != ""
}

func slotEmpty(c model.Coordinator) bool {
	return c.Name == "" && c.Phone == "" && c.Email == ""
}

// FirstSlotComplete is the event-creation rule: slot 0 must be fully
// populated, later slots are optional.
func (l CoordinatorList) FirstSlotComplete() bool {
	return slotComplete(l[0])
}

// AnySlotComplete is the program-creation rule: at least one slot, not
// necessarily the first, must be fully populated.
func (l CoordinatorList) AnySlotComplete() bool {
	for _, c := range l {
		if slotComplete(c) {
			return true
		}
	}
	return false
}

// NoPartialSlots reports whether every non-empty slot is fully populated.
func (l CoordinatorList) NoPartialSlots() bool {
	for _, c := range l {
		if !slotEmpty(c) && !slotComplete(c) {
			return false
		}
	}
	return true
}

func (l CoordinatorList) Slots() [model.CoordinatorSlots]model.Coordinator {
	return [model.CoordinatorSlots]model.Coordinator(l)
}
