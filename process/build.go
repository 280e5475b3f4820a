package process

import (
	"github.com/pkg/errors"

	"github.com/fieldcdr/weathering/dataset"
	"github.com/fieldcdr/weathering/model"
)

// The sampling rounds every trial table must carry for both plot types.
const (
	baselineRound  = 1
	shortTermRound = 2
	longTermRound  = 3
)

// analyteCount is the number of tracked CDR-relevant analytes.
const analyteCount = 2

// Build assembles the generative graph from a (plot, round)-indexed table
// using the default deployment configuration.
func Build(tbl *dataset.Table) (*model.Graph, error) {
	return BuildConfig(tbl, DefaultConfig())
}

// BuildConfig assembles the five-stage generative graph. The table must
// carry control and treatment rows for rounds 1..3 with one column per
// tracked analyte; a missing pair fails the build at the point it is first
// dereferenced and no partial graph is returned. The returned graph is fully
// determined by the configuration and those six table slices.
func BuildConfig(tbl *dataset.Table, cfg Config) (*model.Graph, error) {
	b := &builder{g: model.NewGraph("enhanced weathering CDR")}

	// Stage 1: deployment
	wet := b.latent("wet feedstock mass", &model.Normal{
		Mu:    model.Const(cfg.WetFeedstockMass.Mu),
		Sigma: model.Const(cfg.WetFeedstockMass.Sigma),
	})
	area := b.latent("treatment area", &model.Normal{
		Mu:    model.Const(cfg.TreatmentArea.Mu),
		Sigma: model.Const(cfg.TreatmentArea.Sigma),
	})
	depth := b.latent("sample depth", &model.Gamma{
		Mean: model.Const(cfg.SampleDepth.Mu),
		SD:   model.Const(cfg.SampleDepth.Sigma),
	})
	moisture := b.latent("feedstock moisture fraction", &model.Normal{
		Mu:    model.Const(cfg.MoistureFraction.Mu),
		Sigma: model.Const(cfg.MoistureFraction.Sigma),
	})
	dry := b.det("dry feedstock mass", model.Mul(model.OneMinus(moisture), wet))
	rate := b.det("application rate", model.Div(dry, area))
	feedstock := b.latent("feedstock concentration", &model.Normal{
		Mu:    model.Const(cfg.FeedstockConcentration.Mu...),
		Sigma: model.Const(cfg.FeedstockConcentration.Sigma...),
	})

	// Stage 2: mixing into the sampled soil layer
	density := b.latent("soil density", &model.Normal{
		Mu:    model.Const(cfg.SoilDensity.Mu),
		Sigma: model.Const(cfg.SoilDensity.Sigma),
	})
	soil := b.det("soil mass", model.Mul(density, depth))
	mix := b.det("mixing fraction", model.Div(rate, model.Add(rate, soil)))
	treat1 := b.slice(tbl, dataset.Treatment, baselineRound)
	mixed := b.det("mixed concentration", model.Add(
		model.Mul(mix, feedstock),
		model.Mul(model.OneMinus(mix), model.Const(treat1...)),
	))

	// Stage 3: short-term enrichment anchors mixing and application rate
	enrichment := b.det("enrichment", model.Sub(mixed, model.Const(treat1...)))
	enrichSigma := b.latent("enrichment sigma", &model.Exponential{
		Mean:  model.Const(cfg.EnrichmentNoiseMean),
		Shape: analyteCount,
	})
	treat2 := b.slice(tbl, dataset.Treatment, shortTermRound)
	b.observe("obs enriched",
		&model.Normal{Mu: enrichment, Sigma: enrichSigma},
		sub(treat2, treat1))

	// Stage 4: background drift measured on the control plots
	drift := b.latent("control change", &model.Normal{
		Mu:    model.Const(0),
		Sigma: model.Const(cfg.ControlDriftScale),
		Shape: analyteCount,
	})
	driftSigma := b.latent("control change sigma", &model.HalfNormal{
		Sigma: model.Const(cfg.ControlDriftScale),
		Shape: analyteCount,
	})
	ctrl1 := b.slice(tbl, dataset.Control, baselineRound)
	ctrl2 := b.slice(tbl, dataset.Control, shortTermRound)
	ctrl3 := b.slice(tbl, dataset.Control, longTermRound)
	b.observe("obs control",
		&model.Normal{Mu: drift, Sigma: driftSigma},
		sub(ctrl3, mean2(ctrl1, ctrl2)))

	// Stage 5: weathering loss and the CDR estimate. The normalized loss is
	// a fraction of enrichment but deliberately keeps an unbounded normal
	// prior for sampler tractability.
	lossMu := b.latent("norm loss mu", &model.Uniform{Min: 0, Max: 1})
	lossSigma := b.latent("norm loss sigma", &model.Beta{Alpha: lossSpreadAlpha, Beta: lossSpreadBeta})
	loss := b.latent("norm loss", &model.Normal{Mu: lossMu, Sigma: lossSigma, Shape: analyteCount})
	concLoss := b.det("concentration loss", model.Mul(loss, enrichment))
	weathered := b.det("weathered concentration", model.Sub(
		model.Const(treat2...),
		model.Sub(concLoss, drift),
	))
	weatheredSigma := b.latent("weathered sigma", &model.Exponential{
		Mean:  model.Const(cfg.WeatheredNoiseMean),
		Shape: analyteCount,
	})
	treat3 := b.slice(tbl, dataset.Treatment, longTermRound)
	b.observe("obs weathered",
		&model.Normal{Mu: weathered, Sigma: weatheredSigma},
		treat3)

	potMass := b.det("CDR potential (per mass)", model.Dot(feedstock, ConversionFactors))
	potArea := b.det("CDR potential (per area)", model.Mul(rate, potMass))
	cdr := b.det("CDR (per area)", model.Mul(
		model.Dot(model.Mul(loss, feedstock), ConversionFactors),
		rate,
	))
	b.det("CDR [metric ton CO2]", model.Scale(1/metricTonDivisor, model.Mul(cdr, area)))
	b.det("CDR completion [-]", model.Div(cdr, potArea))

	if b.err != nil {
		return nil, b.err
	}
	if err := b.g.Check(); err != nil {
		return nil, err
	}
	return b.g, nil
}

// builder threads the one shared graph and a sticky error through the
// stages, so a failure stops all further declarations but the stage code
// above stays linear.
type builder struct {
	g   *model.Graph
	err error
}

func (b *builder) latent(name string, d model.Dist) *model.Node {
	if b.err != nil {
		return nil
	}
	n, err := b.g.Latent(name, d)
	if err != nil {
		b.err = err
	}
	return n
}

func (b *builder) det(name string, e model.Expr) *model.Node {
	if b.err != nil {
		return nil
	}
	n, err := b.g.Deterministic(name, e)
	if err != nil {
		b.err = err
	}
	return n
}

func (b *builder) observe(name string, d model.Dist, observed []float64) *model.Node {
	if b.err != nil {
		return nil
	}
	n, err := b.g.Observe(name, d, observed)
	if err != nil {
		b.err = err
	}
	return n
}

// slice dereferences one (plot, round) pair of the table. This is where a
// missing pair surfaces.
func (b *builder) slice(tbl *dataset.Table, plot string, round int) []float64 {
	if b.err != nil {
		return nil
	}
	v, err := tbl.Loc(plot, round)
	if err != nil {
		b.err = err
		return nil
	}
	if len(v) != analyteCount {
		b.err = errors.Errorf("plot %q round %d has %d analyte columns, want %d", plot, round, len(v), analyteCount)
		return nil
	}
	return v
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

func mean2(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}
