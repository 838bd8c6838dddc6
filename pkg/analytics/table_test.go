package analytics

import (
	"reflect"
	"testing"
)

func fixtureRows() []Row {
	return []Row{
		{"id": "1", "name": "Asha", "college": "NIT Calicut", "members": 3},
		{"id": "2", "name": "Ravi", "college": "IIT Madras", "members": 1},
		{"id": "3", "name": "Meena", "college": "NIT Calicut", "members": 10},
		{"id": "4", "name": "Arjun", "college": "CUSAT", "members": 2},
	}
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["id"].(string)
	}
	return out
}

func TestFilterMatchesAnyColumn(t *testing.T) {
	tbl := NewTable(fixtureRows())

	tbl.SetFilter("nit")
	if got := ids(tbl.Visible()); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Fatalf("filtered ids = %v", got)
	}

	// case-insensitive, matches name column too
	tbl.SetFilter("ARJ")
	if got := ids(tbl.Visible()); !reflect.DeepEqual(got, []string{"4"}) {
		t.Fatalf("filtered ids = %v", got)
	}

	tbl.SetFilter("")
	if got := len(tbl.Visible()); got != 4 {
		t.Fatalf("cleared filter shows %d rows", got)
	}
}

func TestSortCycleRestoresFetchOrder(t *testing.T) {
	tbl := NewTable(fixtureRows())

	tbl.ClickSort("name")
	asc := ids(tbl.Visible())
	if !reflect.DeepEqual(asc, []string{"4", "1", "3", "2"}) {
		t.Fatalf("asc ids = %v", asc)
	}

	tbl.ClickSort("name")
	desc := ids(tbl.Visible())
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", asc, desc)
		}
	}

	tbl.ClickSort("name")
	if got := ids(tbl.Visible()); !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Fatalf("third click did not restore fetch order: %v", got)
	}
	if col, dir := tbl.Sort(); col != "" || dir != SortNone {
		t.Fatalf("sort state not cleared: %s %v", col, dir)
	}
}

func TestClickingOtherColumnRestartsAscending(t *testing.T) {
	tbl := NewTable(fixtureRows())

	tbl.ClickSort("name")
	tbl.ClickSort("name") // name desc
	tbl.ClickSort("members")

	if col, dir := tbl.Sort(); col != "members" || dir != SortAsc {
		t.Fatalf("sort = %s %v, want members asc", col, dir)
	}
	// numeric compare: 10 sorts after 3, not between 1 and 2
	if got := ids(tbl.Visible()); !reflect.DeepEqual(got, []string{"2", "4", "1", "3"}) {
		t.Fatalf("numeric sort order = %v", got)
	}
}

func TestFilterAndSortCompose(t *testing.T) {
	tbl := NewTable(fixtureRows())
	tbl.SetFilter("nit")
	tbl.ClickSort("members")
	tbl.ClickSort("members") // desc

	if got := ids(tbl.Visible()); !reflect.DeepEqual(got, []string{"3", "1"}) {
		t.Fatalf("composed view = %v", got)
	}
}

func TestSelectionSurvivesFilterChanges(t *testing.T) {
	tbl := NewTable(fixtureRows())
	tbl.ToggleSelect("2")
	tbl.ToggleSelect("4")
	tbl.SetFilter("nit") // hides both selected rows

	if got := tbl.Selected(); !reflect.DeepEqual(got, []string{"2", "4"}) {
		t.Fatalf("selected = %v", got)
	}

	tbl.ToggleSelect("2")
	if got := tbl.Selected(); !reflect.DeepEqual(got, []string{"4"}) {
		t.Fatalf("toggle off failed: %v", got)
	}
}
