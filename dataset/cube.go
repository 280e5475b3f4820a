// Package dataset reshapes raw field-trial measurement cubes into the
// labeled tables the process model consumes.
package dataset

import (
	"github.com/pkg/errors"
)

// Plot-type tag values as they appear in raw sample metadata.
const (
	controlTag   = 1
	treatmentTag = 0
)

// Plot-type labels used in table row indexes. The tag mapping is fixed and
// total: every sample is exactly one of the two.
const (
	Control   = "control"
	Treatment = "treatment"
)

// Cube is an immutable (sample x analyte x realization) block of
// chemical-analyte concentrations with per-sample plot and round metadata.
// One realization is a single resampling draw of the whole trial.
type Cube struct {
	analytes     []string
	control      []int
	round        []int
	data         []float64 // sample-major, then analyte, then realization
	samples      int
	realizations int
}

// NewCube validates the shape contract and copies everything in: analytes
// names the second axis, control/round tag each sample along the first axis,
// and data[sample][analyte] holds one value per realization.
func NewCube(analytes []string, control, round []int, data [][][]float64) (*Cube, error) {
	if len(analytes) < 2 {
		return nil, errors.Errorf("cube needs at least 2 analytes, got %d", len(analytes))
	}
	samples := len(data)
	if samples < 1 {
		return nil, errors.Errorf("cube has no samples")
	}
	if len(control) != samples {
		return nil, errors.Errorf("control tags cover %d samples, cube has %d", len(control), samples)
	}
	if len(round) != samples {
		return nil, errors.Errorf("round tags cover %d samples, cube has %d", len(round), samples)
	}

	realizations := -1
	flat := make([]float64, 0, samples*len(analytes))
	for s, row := range data {
		if len(row) != len(analytes) {
			return nil, errors.Errorf("sample %d has %d analyte columns, want %d", s, len(row), len(analytes))
		}
		for a, reals := range row {
			if realizations < 0 {
				realizations = len(reals)
			}
			if len(reals) != realizations || realizations < 1 {
				return nil, errors.Errorf("sample %d analyte %d has %d realizations, want %d", s, a, len(reals), realizations)
			}
			flat = append(flat, reals...)
		}
	}

	for s, tag := range control {
		if tag != controlTag && tag != treatmentTag {
			return nil, errors.Errorf("sample %d has plot tag %d, want %d or %d", s, tag, treatmentTag, controlTag)
		}
	}

	c := &Cube{
		analytes:     make([]string, len(analytes)),
		control:      make([]int, samples),
		round:        make([]int, samples),
		data:         flat,
		samples:      samples,
		realizations: realizations,
	}
	copy(c.analytes, analytes)
	copy(c.control, control)
	copy(c.round, round)
	return c, nil
}

// Samples returns the first-axis length.
func (c *Cube) Samples() int { return c.samples }

// Realizations returns the third-axis length.
func (c *Cube) Realizations() int { return c.realizations }

// Analytes returns a copy of the analyte names for the second axis.
func (c *Cube) Analytes() []string {
	out := make([]string, len(c.analytes))
	copy(out, c.analytes)
	return out
}

// At returns the value at (sample, analyte, realization). Indices must be
// in-bounds; Extract is the checked entry point.
func (c *Cube) At(sample, analyte, realization int) float64 {
	return c.data[(sample*len(c.analytes)+analyte)*c.realizations+realization]
}
