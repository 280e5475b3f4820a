package sampler

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/fieldcdr/weathering/model"
)

// Summary describes one element of a node's sampled distribution.
type Summary struct {
	Name    string
	Element int
	Mean    float64
	StdDev  float64
	Lo      float64 // lower credible-interval bound
	Hi      float64 // upper credible-interval bound
}

// Summarize reduces draws of the named node to per-element summaries with a
// central credible interval holding the given probability mass (e.g. 0.94).
func Summarize(draws []model.Env, name string, prob float64) ([]Summary, error) {
	if len(draws) < 1 {
		return nil, errors.Errorf("no draws to summarize")
	}
	if prob <= 0 || prob >= 1 {
		return nil, errors.Errorf("interval mass %v outside (0, 1)", prob)
	}

	first, ok := draws[0][name]
	if !ok {
		return nil, errors.Errorf("draws have no value for node %q", name)
	}
	dim := len(first)

	tail := (1 - prob) / 2
	out := make([]Summary, 0, dim)
	for el := 0; el < dim; el++ {
		xs := make([]float64, 0, len(draws))
		for i, d := range draws {
			v, ok := d[name]
			if !ok || len(v) != dim {
				return nil, errors.Errorf("draw %d disagrees on node %q", i, name)
			}
			xs = append(xs, v[el])
		}
		sort.Float64s(xs)

		out = append(out, Summary{
			Name:    name,
			Element: el,
			Mean:    stat.Mean(xs, nil),
			StdDev:  stat.StdDev(xs, nil),
			Lo:      stat.Quantile(tail, stat.Empirical, xs, nil),
			Hi:      stat.Quantile(1-tail, stat.Empirical, xs, nil),
		})
	}

	return out, nil
}
