// Package analytics is the client-side registration table: free-text
// filtering, tri-state single-column sorting and row selection, all
// recomputed from the full fetched dataset. Linear per keystroke, which is
// fine at the row counts a single event produces.
package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// Row is one registration record as fetched, column name to value.
type Row map[string]any

// Table keeps the full dataset in fetch order and derives the visible rows
// on demand.
type Table struct {
	original []Row

	filter     string
	sortColumn string
	sortDir    SortDir

	selected map[string]bool
}

func NewTable(rows []Row) *Table {
	return &Table{
		original: rows,
		selected: make(map[string]bool),
	}
}

func (t *Table) SetFilter(query string) {
	t.filter = strings.ToLower(query)
}

// ClickSort cycles the clicked column through ascending, descending and
// none; none restores the original fetch order. Clicking a different column
// starts that column at ascending.
func (t *Table) ClickSort(column string) {
	if column != t.sortColumn {
		t.sortColumn = column
		t.sortDir = SortAsc
		return
	}
	switch t.sortDir {
	case SortAsc:
		t.sortDir = SortDesc
	case SortDesc:
		t.sortDir = SortNone
		t.sortColumn = ""
	default:
		t.sortDir = SortAsc
	}
}

func (t *Table) Sort() (column string, dir SortDir) {
	return t.sortColumn, t.sortDir
}

// Visible recomputes the filtered, sorted view of the dataset.
func (t *Table) Visible() []Row {
	rows := make([]Row, 0, len(t.original))
	for _, row := range t.original {
		if t.matches(row) {
			rows = append(rows, row)
		}
	}

	if t.sortDir != SortNone && t.sortColumn != "" {
		column := t.sortColumn
		asc := t.sortDir == SortAsc
		sort.SliceStable(rows, func(i, j int) bool {
			less := valueLess(rows[i][column], rows[j][column])
			if asc {
				return less
			}
			return valueLess(rows[j][column], rows[i][column])
		})
	}
	return rows
}

func (t *Table) matches(row Row) bool {
	if t.filter == "" {
		return true
	}
	for _, value := range row {
		if strings.Contains(strings.ToLower(fmt.Sprint(value)), t.filter) {
			return true
		}
	}
	return false
}

// valueLess compares numerically when both values parse as numbers,
// lexically otherwise.
func valueLess(a, b any) bool {
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	an, aerr := strconv.ParseFloat(as, 64)
	bn, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		return an < bn
	}
	return as < bs
}

func (t *Table) ToggleSelect(id string) {
	if t.selected[id] {
		delete(t.selected, id)
		return
	}
	t.selected[id] = true
}

func (t *Table) Selected() []string {
	out := make([]string, 0, len(t.selected))
	for id := range t.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
