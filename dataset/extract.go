package dataset

import (
	"github.com/pkg/errors"
)

// Extract selects one realization from the cube and reshapes it into a
// (plot, round)-indexed table. The trailing analyte column is dropped: it is
// a non-chemical metadata column appended during upstream processing. No
// value is altered beyond the integer-to-label remapping of the plot tag.
func Extract(c *Cube, realization int) (*Table, error) {
	if realization < 0 || realization >= c.realizations {
		return nil, errors.Errorf("realization %d out of range [0, %d)", realization, c.realizations)
	}

	columns := c.analytes[:len(c.analytes)-1]
	rows := make([]Row, c.samples)
	for s := 0; s < c.samples; s++ {
		vals := make([]float64, len(columns))
		for a := range columns {
			vals[a] = c.At(s, a, realization)
		}
		rows[s] = Row{
			Plot:   plotLabel(c.control[s]),
			Round:  c.round[s],
			Values: vals,
		}
	}

	return NewTable(columns, rows)
}

func plotLabel(tag int) string {
	if tag == controlTag {
		return Control
	}
	return Treatment
}
