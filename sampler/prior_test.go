package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldcdr/weathering/dataset"
	"github.com/fieldcdr/weathering/model"
	"github.com/fieldcdr/weathering/process"
	"github.com/fieldcdr/weathering/rand"
)

func trialGraph(t *testing.T) *model.Graph {
	assert := assert.New(t)

	tbl, err := dataset.NewTable([]string{"Mg", "Ca"}, []dataset.Row{
		{Plot: dataset.Treatment, Round: 1, Values: []float64{0.05, 0.04}},
		{Plot: dataset.Treatment, Round: 2, Values: []float64{0.07, 0.05}},
		{Plot: dataset.Treatment, Round: 3, Values: []float64{0.065, 0.045}},
		{Plot: dataset.Control, Round: 1, Values: []float64{0.05, 0.04}},
		{Plot: dataset.Control, Round: 2, Values: []float64{0.051, 0.041}},
		{Plot: dataset.Control, Round: 3, Values: []float64{0.0505, 0.0405}},
	})
	assert.NoError(err)

	g, err := process.Build(tbl)
	assert.NoError(err)
	return g
}

func newTrialPrior(t *testing.T, seed int64) *Prior {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(seed)
	assert.NoError(err)

	p, err := NewPrior(gen)
	assert.NoError(err)
	assert.NoError(p.Init(trialGraph(t)))
	return p
}

func TestPriorInit(t *testing.T) {
	assert := assert.New(t)

	_, err := NewPrior(nil)
	assert.Error(err)

	gen, err := rand.NewGenerator(1)
	assert.NoError(err)
	p, err := NewPrior(gen)
	assert.NoError(err)

	_, err = p.Sample()
	assert.Error(err)
	_, err = p.LogLikelihood(model.Env{})
	assert.Error(err)

	assert.Error(p.Init(nil))
}

func TestPriorSampleShape(t *testing.T) {
	assert := assert.New(t)

	p := newTrialPrior(t, 42)
	env, err := p.Sample()
	assert.NoError(err)

	// every latent and deterministic node has a value; observations do not
	assert.Len(env, 26)
	_, ok := env["obs enriched"]
	assert.False(ok)

	assert.Len(env["wet feedstock mass"], 1)
	assert.Len(env["feedstock concentration"], 2)
	assert.Len(env["norm loss"], 2)
	assert.Len(env["mixed concentration"], 2)
	assert.Len(env["CDR potential (per mass)"], 1)
	assert.Len(env["CDR completion [-]"], 1)
}

func TestPriorIdentities(t *testing.T) {
	assert := assert.New(t)

	p := newTrialPrior(t, 42)
	for i := 0; i < 200; i++ {
		env, err := p.Sample()
		assert.NoError(err)

		wet := env["wet feedstock mass"][0]
		moisture := env["feedstock moisture fraction"][0]
		dry := env["dry feedstock mass"][0]
		assert.InDelta((1-moisture)*wet, dry, 1e-9)

		rate := env["application rate"][0]
		area := env["treatment area"][0]
		assert.InDelta(dry/area, rate, 1e-9)

		mix := env["mixing fraction"][0]
		assert.Greater(mix, 0.0)
		assert.Less(mix, 1.0)

		cdr := env["CDR (per area)"][0]
		potArea := env["CDR potential (per area)"][0]
		completion := env["CDR completion [-]"][0]
		assert.InDelta(cdr/potArea, completion, 1e-9)
	}
}

func TestPriorDeterministicUnderSeed(t *testing.T) {
	assert := assert.New(t)

	p1 := newTrialPrior(t, 1234)
	p2 := newTrialPrior(t, 1234)

	for i := 0; i < 5; i++ {
		e1, err := p1.Sample()
		assert.NoError(err)
		e2, err := p2.Sample()
		assert.NoError(err)
		assert.Equal(e1, e2)
	}
}

func TestPriorLogLikelihood(t *testing.T) {
	assert := assert.New(t)

	p := newTrialPrior(t, 42)
	env, err := p.Sample()
	assert.NoError(err)

	lp, err := p.LogLikelihood(env)
	assert.NoError(err)
	assert.False(math.IsNaN(lp))
}
