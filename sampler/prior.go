package sampler

import (
	"github.com/pkg/errors"

	"github.com/fieldcdr/weathering/model"
	"github.com/fieldcdr/weathering/rand"
)

// Prior is an ancestral sampler: latents draw from their declared priors in
// declaration order and deterministic nodes evaluate in place. Observation
// nodes contribute nothing to a draw; they only matter for scoring.
type Prior struct {
	gen   *rand.Generator
	graph *model.Graph
}

// NewPrior returns a prior sampler drawing entropy from gen.
func NewPrior(gen *rand.Generator) (*Prior, error) {
	if gen == nil {
		return nil, errors.Errorf("prior sampler needs a generator")
	}
	return &Prior{gen: gen}, nil
}

// Init implements Sampler.
func (p *Prior) Init(g *model.Graph) error {
	if g == nil {
		return errors.Errorf("cannot sample a nil graph")
	}
	if err := g.Check(); err != nil {
		return errors.Wrapf(err, "graph failed validation")
	}
	p.graph = g
	return nil
}

// Sample implements Sampler. Each call returns a fresh, fully evaluated
// environment: one value per latent and deterministic node.
func (p *Prior) Sample() (model.Env, error) {
	if p.graph == nil {
		return nil, errors.Errorf("sampler not initialized")
	}

	env := make(model.Env, len(p.graph.Nodes))
	for _, n := range p.graph.Nodes {
		switch n.Kind {
		case model.Latent:
			v, err := n.Dist.Rand(env, p.gen)
			if err != nil {
				return nil, errors.Wrapf(err, "drawing %q", n.Name)
			}
			env[n.Name] = v
		case model.Deterministic:
			v, err := n.Expr.Eval(env)
			if err != nil {
				return nil, errors.Wrapf(err, "evaluating %q", n.Name)
			}
			env[n.Name] = v
		case model.Observed:
			// fixed data - nothing to draw
		}
	}

	return env, nil
}

// LogLikelihood sums the observation-node log densities for the latent and
// deterministic values in env.
func (p *Prior) LogLikelihood(env model.Env) (float64, error) {
	if p.graph == nil {
		return 0, errors.Errorf("sampler not initialized")
	}

	total := 0.0
	for _, n := range p.graph.Nodes {
		if n.Kind != model.Observed {
			continue
		}
		lp, err := n.Dist.LogProb(env, n.Observed)
		if err != nil {
			return 0, errors.Wrapf(err, "scoring %q", n.Name)
		}
		total += lp
	}

	return total, nil
}
