package dataset

import (
	"sort"

	"github.com/pkg/errors"
)

// Row is one labeled observation row: plot type, sampling round, and one
// value per analyte column.
type Row struct {
	Plot   string
	Round  int
	Values []float64
}

// Table is a (plot, round)-indexed analyte table with deterministic row
// order: rows sort ascending by plot label, then round.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable validates and sorts the rows. Every row must carry a known plot
// label and exactly one value per column.
func NewTable(columns []string, rows []Row) (*Table, error) {
	if len(columns) < 1 {
		return nil, errors.Errorf("table has no columns")
	}

	t := &Table{
		columns: make([]string, len(columns)),
		rows:    make([]Row, len(rows)),
	}
	copy(t.columns, columns)

	for i, r := range rows {
		if r.Plot != Control && r.Plot != Treatment {
			return nil, errors.Errorf("row %d has plot label %q, want %q or %q", i, r.Plot, Control, Treatment)
		}
		if len(r.Values) != len(columns) {
			return nil, errors.Errorf("row %d has %d values, want %d", i, len(r.Values), len(columns))
		}
		vals := make([]float64, len(r.Values))
		copy(vals, r.Values)
		t.rows[i] = Row{Plot: r.Plot, Round: r.Round, Values: vals}
	}

	sort.SliceStable(t.rows, func(i, j int) bool {
		if t.rows[i].Plot != t.rows[j].Plot {
			return t.rows[i].Plot < t.rows[j].Plot
		}
		return t.rows[i].Round < t.rows[j].Round
	})

	return t, nil
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the sorted rows. Callers must not modify the value slices.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Loc returns a copy of the values for the given (plot, round) pair. A
// missing pair is an error; so is an ambiguous one.
func (t *Table) Loc(plot string, round int) ([]float64, error) {
	var found []float64
	for _, r := range t.rows {
		if r.Plot != plot || r.Round != round {
			continue
		}
		if found != nil {
			return nil, errors.Errorf("multiple rows for plot %q round %d", plot, round)
		}
		found = r.Values
	}
	if found == nil {
		return nil, errors.Errorf("no row for plot %q round %d", plot, round)
	}

	out := make([]float64, len(found))
	copy(out, found)
	return out, nil
}
