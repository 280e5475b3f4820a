// Package sampler draws from weathering model graphs. The full posterior
// engine (MCMC chains, tuning) is an external collaborator; this package
// covers the seam it plugs into, plus forward prior sampling used for graph
// evaluation and prior predictive summaries.
package sampler

import (
	"github.com/fieldcdr/weathering/model"
)

// A Sampler draws joint samples from the given graph.
type Sampler interface {
	Init(*model.Graph) error
	Sample() (model.Env, error)
}
