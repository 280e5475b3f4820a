package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// vanillaCube builds a 6-sample cube: 2 plot types x 3 rounds, 3 analytes
// (the last is upstream metadata), 2 realizations. Sample order is shuffled
// to exercise the sort.
func vanillaCube(t *testing.T) *Cube {
	assert := assert.New(t)

	analytes := []string{"Mg", "Ca", "qc_flag"}
	control := []int{0, 1, 0, 1, 0, 1}
	round := []int{2, 2, 1, 3, 3, 1}

	data := [][][]float64{
		{{0.070, 0.071}, {0.050, 0.051}, {1, 1}}, // treatment r2
		{{0.051, 0.052}, {0.041, 0.042}, {1, 1}}, // control r2
		{{0.050, 0.050}, {0.040, 0.040}, {1, 1}}, // treatment r1
		{{0.0505, 0.0506}, {0.0405, 0.0406}, {1, 1}}, // control r3
		{{0.065, 0.066}, {0.045, 0.046}, {1, 1}}, // treatment r3
		{{0.050, 0.050}, {0.040, 0.040}, {1, 1}}, // control r1
	}

	c, err := NewCube(analytes, control, round, data)
	assert.NoError(err)
	assert.NotNil(c)
	return c
}

func TestCubeSchema(t *testing.T) {
	assert := assert.New(t)

	c := vanillaCube(t)
	assert.Equal(6, c.Samples())
	assert.Equal(2, c.Realizations())
	assert.Equal([]string{"Mg", "Ca", "qc_flag"}, c.Analytes())
	assert.InDelta(0.051, c.At(1, 0, 0), 1e-12)
	assert.InDelta(0.046, c.At(4, 1, 1), 1e-12)

	good := [][][]float64{{{1}, {2}}}

	// too few analytes
	_, err := NewCube([]string{"Mg"}, []int{0}, []int{1}, [][][]float64{{{1}}})
	assert.Error(err)

	// metadata length mismatches
	_, err = NewCube([]string{"Mg", "Ca"}, []int{0, 1}, []int{1}, good)
	assert.Error(err)
	_, err = NewCube([]string{"Mg", "Ca"}, []int{0}, []int{1, 2}, good)
	assert.Error(err)

	// ragged analyte row
	_, err = NewCube([]string{"Mg", "Ca"}, []int{0}, []int{1}, [][][]float64{{{1}}})
	assert.Error(err)

	// ragged realizations
	_, err = NewCube([]string{"Mg", "Ca"}, []int{0}, []int{1}, [][][]float64{{{1, 2}, {3}}})
	assert.Error(err)

	// plot tag outside {0, 1}
	_, err = NewCube([]string{"Mg", "Ca"}, []int{2}, []int{1}, good)
	assert.Error(err)

	// no samples
	_, err = NewCube([]string{"Mg", "Ca"}, nil, nil, nil)
	assert.Error(err)
}

func TestExtract(t *testing.T) {
	assert := assert.New(t)

	c := vanillaCube(t)
	tbl, err := Extract(c, 0)
	assert.NoError(err)

	// 6 rows, trailing analyte dropped
	assert.Equal(6, tbl.Len())
	assert.Equal([]string{"Mg", "Ca"}, tbl.Columns())

	// rows sorted by (plot, round), labels mapped 1->control / 0->treatment
	rows := tbl.Rows()
	for i, exp := range []struct {
		plot  string
		round int
	}{
		{Control, 1}, {Control, 2}, {Control, 3},
		{Treatment, 1}, {Treatment, 2}, {Treatment, 3},
	} {
		assert.Equal(exp.plot, rows[i].Plot)
		assert.Equal(exp.round, rows[i].Round)
		assert.True(rows[i].Plot == Control || rows[i].Plot == Treatment)
	}

	// values pass through unaltered
	v, err := tbl.Loc(Treatment, 2)
	assert.NoError(err)
	assert.Equal([]float64{0.070, 0.050}, v)

	v, err = tbl.Loc(Control, 3)
	assert.NoError(err)
	assert.Equal([]float64{0.0505, 0.0405}, v)

	// second realization
	tbl2, err := Extract(c, 1)
	assert.NoError(err)
	v, err = tbl2.Loc(Treatment, 3)
	assert.NoError(err)
	assert.Equal([]float64{0.066, 0.046}, v)
}

func TestExtractDeterministic(t *testing.T) {
	assert := assert.New(t)

	c := vanillaCube(t)
	t1, err := Extract(c, 1)
	assert.NoError(err)
	t2, err := Extract(c, 1)
	assert.NoError(err)

	assert.Equal(t1.Columns(), t2.Columns())
	assert.Equal(t1.Rows(), t2.Rows())
}

func TestExtractBounds(t *testing.T) {
	assert := assert.New(t)

	c := vanillaCube(t)

	_, err := Extract(c, -1)
	assert.Error(err)

	_, err = Extract(c, 2)
	assert.Error(err)
}

func TestTableLoc(t *testing.T) {
	assert := assert.New(t)

	c := vanillaCube(t)
	tbl, err := Extract(c, 0)
	assert.NoError(err)

	_, err = tbl.Loc(Control, 4)
	assert.Error(err)

	_, err = tbl.Loc("nope", 1)
	assert.Error(err)

	// returned slice is a copy
	v, err := tbl.Loc(Control, 1)
	assert.NoError(err)
	v[0] = 99
	v2, err := tbl.Loc(Control, 1)
	assert.NoError(err)
	assert.Equal([]float64{0.050, 0.040}, v2)
}

func TestTableValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTable(nil, nil)
	assert.Error(err)

	_, err = NewTable([]string{"Mg"}, []Row{{Plot: "weird", Round: 1, Values: []float64{1}}})
	assert.Error(err)

	_, err = NewTable([]string{"Mg"}, []Row{{Plot: Control, Round: 1, Values: []float64{1, 2}}})
	assert.Error(err)

	// duplicate (plot, round) pairs are ambiguous at lookup
	tbl, err := NewTable([]string{"Mg"}, []Row{
		{Plot: Control, Round: 1, Values: []float64{1}},
		{Plot: Control, Round: 1, Values: []float64{2}},
	})
	assert.NoError(err)
	_, err = tbl.Loc(Control, 1)
	assert.Error(err)
}
