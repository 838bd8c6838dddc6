// Package forms holds the per-screen draft state and validation rules for
// the create/edit screens. Every form follows the same lifecycle and keeps a
// field→error map recomputed on validation.
package forms

// State is the create/edit screen lifecycle. Leaving a form loses unsaved
// edits; there is no draft persistence across navigation.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateEditing
	StateValidationFailed
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateValidationFailed:
		return "validation_failed"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// FieldErrors marks which draft fields are currently invalid.
type FieldErrors map[string]bool

func (e FieldErrors) Any() bool {
	for _, bad := range e {
		if bad {
			return true
		}
	}
	return false
}

// changedFields diffs the current field map against the snapshot taken at
// load time; only changed fields go through the per-field save path.
func changedFields(original, current map[string]any) map[string]any {
	out := make(map[string]any)
	for name, value := range current {
		if !equalValue(original[name], value) {
			out[name] = value
		}
	}
	return out
}

func equalValue(a, b any) bool {
	switch av := a.(type) {
	case []string:
		bv, ok := b.([]string)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	}
	return a == b
}
