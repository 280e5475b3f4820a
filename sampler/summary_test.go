package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldcdr/weathering/model"
)

func TestSummarizeKnownDraws(t *testing.T) {
	assert := assert.New(t)

	draws := []model.Env{
		{"x": []float64{1, 10}},
		{"x": []float64{2, 20}},
		{"x": []float64{3, 30}},
		{"x": []float64{4, 40}},
	}

	sums, err := Summarize(draws, "x", 0.5)
	assert.NoError(err)
	assert.Len(sums, 2)

	assert.Equal("x", sums[0].Name)
	assert.Equal(0, sums[0].Element)
	assert.InDelta(2.5, sums[0].Mean, 1e-12)
	assert.Equal(1, sums[1].Element)
	assert.InDelta(25.0, sums[1].Mean, 1e-12)

	for _, s := range sums {
		assert.True(s.Lo <= s.Mean)
		assert.True(s.Mean <= s.Hi)
		assert.True(s.StdDev > 0)
	}
}

func TestSummarizeCDR(t *testing.T) {
	assert := assert.New(t)

	p := newTrialPrior(t, 7)
	draws := make([]model.Env, 0, 300)
	for i := 0; i < 300; i++ {
		env, err := p.Sample()
		assert.NoError(err)
		draws = append(draws, env)
	}

	sums, err := Summarize(draws, "CDR [metric ton CO2]", 0.94)
	assert.NoError(err)
	assert.Len(sums, 1)
	assert.True(sums[0].Lo < sums[0].Hi)

	// potential per mass sits near its prior mean sum([.07 .05]*[2.196 3.621])
	sums, err = Summarize(draws, "CDR potential (per mass)", 0.94)
	assert.NoError(err)
	exp := 0.07*2.196 + 0.05*3.621
	assert.InDelta(exp, sums[0].Mean, 0.01)
	assert.True(sums[0].Lo < exp && exp < sums[0].Hi)
}

func TestSummarizeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Summarize(nil, "x", 0.5)
	assert.Error(err)

	draws := []model.Env{{"x": []float64{1}}}
	_, err = Summarize(draws, "x", 0)
	assert.Error(err)
	_, err = Summarize(draws, "x", 1)
	assert.Error(err)
	_, err = Summarize(draws, "nope", 0.5)
	assert.Error(err)

	// dimension disagreement between draws
	draws = append(draws, model.Env{"x": []float64{1, 2}})
	_, err = Summarize(draws, "x", 0.5)
	assert.Error(err)
}
