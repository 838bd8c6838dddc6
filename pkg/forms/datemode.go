package forms

import "time"

const dateLayout = "2006-01-02"

// DateMode is the dual representation of an event's temporal extent: a
// single day or a date range, selected by a toggle. Switching modes does not
// clear the inactive representation, so flipping back restores whatever was
// typed before.
type DateMode struct {
	Ranged bool
	Single string
	Start  string
	End    string
}

func (d *DateMode) Toggle(ranged bool) {
	d.Ranged = ranged
}

// Extent resolves the active representation to a start/end pair.
func (d DateMode) Extent() (start, end string) {
	if d.Ranged {
		return d.Start, d.End
	}
	return d.Single, d.Single
}

// Valid checks only the active representation; stale values in the inactive
// one are ignored.
func (d DateMode) Valid() bool {
	start, end := d.Extent()
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return false
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return false
	}
	return !to.Before(from)
}

// Contains reports whether the given day falls inside the active extent.
func Contains(start, end, day string) bool {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return false
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return false
	}
	d, err := time.Parse(dateLayout, day)
	if err != nil {
		return false
	}
	return !d.Before(from) && !d.After(to)
}
