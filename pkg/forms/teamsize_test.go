package forms

import "testing"

func TestBlurMinClampsAndPushesMax(t *testing.T) {
	ts := TeamSize{Min: 0, Max: 3}
	ts.BlurMin()
	if ts.Min != 1 || ts.Max != 3 {
		t.Fatalf("after blur: %+v", ts)
	}

	ts = TeamSize{Min: 5, Max: 3}
	ts.BlurMin()
	if ts.Min != 5 || ts.Max != 5 {
		t.Fatalf("max not pushed up: %+v", ts)
	}
}

func TestBlurMaxClampsAndPushesMin(t *testing.T) {
	ts := TeamSize{Min: 2, Max: 0}
	ts.BlurMax()
	if ts.Max != 1 || ts.Min != 1 {
		t.Fatalf("after blur: %+v", ts)
	}

	ts = TeamSize{Min: 4, Max: 2}
	ts.BlurMax()
	if ts.Min != 2 || ts.Max != 2 {
		t.Fatalf("min not pushed down: %+v", ts)
	}
}

func TestBlurSequencesKeepInvariant(t *testing.T) {
	// arbitrary edit sequences always settle on 1 <= min <= max
	edits := []struct {
		min, max int
		blurMin  bool
	}{
		{-3, 7, true},
		{10, 2, false},
		{0, 0, true},
		{6, 1, false},
		{3, 3, true},
	}
	for _, e := range edits {
		ts := TeamSize{Min: e.min, Max: e.max}
		if e.blurMin {
			ts.BlurMin()
		} else {
			ts.BlurMax()
		}
		if ts.Min < 1 || ts.Min > ts.Max {
			t.Fatalf("invariant broken for %+v: %+v", e, ts)
		}
	}
}

func TestTeamEventFollowsMax(t *testing.T) {
	if (TeamSize{Min: 1, Max: 1}).TeamEvent() {
		t.Fatal("solo program flagged as team event")
	}
	if !(TeamSize{Min: 1, Max: 4}).TeamEvent() {
		t.Fatal("team program not flagged")
	}
}
