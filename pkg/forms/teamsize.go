package forms

// TeamSize is the min/max participants pair. Each bound is reconciled when
// its input loses focus: values are clamped to at least 1 and min ≤ max is
// restored by pushing the other bound, never by rejecting the edit.
type TeamSize struct {
	Min int
	Max int
}

func (t *TeamSize) BlurMin() {
	if t.Min < 1 {
		t.Min = 1
	}
	if t.Max < t.Min {
		t.Max = t.Min
	}
}

func (t *TeamSize) BlurMax() {
	if t.Max < 1 {
		t.Max = 1
	}
	if t.Min > t.Max {
		t.Min = t.Max
	}
}

// TeamEvent holds exactly when more than one participant is allowed.
func (t TeamSize) TeamEvent() bool {
	return t.Max > 1
}
