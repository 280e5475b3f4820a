package model

import (
	"github.com/pkg/errors"
)

// NodeKind tags the role a node plays in a graph.
type NodeKind int

// The three node kinds: random variables, closed-form functions of other
// nodes, and likelihoods bound to fixed data.
const (
	Latent NodeKind = iota
	Deterministic
	Observed
)

func (k NodeKind) String() string {
	switch k {
	case Latent:
		return "latent"
	case Deterministic:
		return "deterministic"
	case Observed:
		return "observed"
	}
	return "unknown"
}

// Node is a single named vertex in a model graph. Exactly one of Dist/Expr
// is meaningful depending on Kind; Observed nodes also carry the fixed data
// array their likelihood is bound to.
type Node struct {
	Name     string
	Kind     NodeKind
	Dist     Dist      // Latent and Observed nodes
	Expr     Expr      // Deterministic nodes
	Observed []float64 // Observed nodes only
}

// Eval looks the node's current value up in env, so a declared node can be
// used directly inside downstream expressions.
func (n *Node) Eval(env Env) ([]float64, error) {
	v, ok := env[n.Name]
	if !ok {
		return nil, errors.Errorf("node %q has no value in environment", n.Name)
	}
	return v, nil
}

// Graph is an ordered, name-indexed collection of nodes. Declaration order
// is ancestral order: a node may only reference nodes declared before it, so
// walking Nodes front to back is always a valid evaluation order. A graph is
// assembled by one builder call and never mutated after it is returned.
type Graph struct {
	Name  string
	Nodes []*Node
	index map[string]*Node
}

// NewGraph returns an empty graph with the given name.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:  name,
		index: make(map[string]*Node),
	}
}

// Latent declares a random variable with the given prior. The prior's
// constant parameters are validated now; node-valued parameters are
// validated when drawn.
func (g *Graph) Latent(name string, d Dist) (*Node, error) {
	if d == nil {
		return nil, errors.Errorf("latent %q has no distribution", name)
	}
	if err := d.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid prior for %q", name)
	}
	return g.insert(&Node{Name: name, Kind: Latent, Dist: d})
}

// Deterministic declares a named closed-form function of previously
// declared nodes.
func (g *Graph) Deterministic(name string, e Expr) (*Node, error) {
	if e == nil {
		return nil, errors.Errorf("deterministic %q has no expression", name)
	}
	return g.insert(&Node{Name: name, Kind: Deterministic, Expr: e})
}

// Observe declares a likelihood binding the distribution to a fixed data
// array. This is the only place measured data enters the graph.
func (g *Graph) Observe(name string, d Dist, observed []float64) (*Node, error) {
	if d == nil {
		return nil, errors.Errorf("observation %q has no distribution", name)
	}
	if len(observed) < 1 {
		return nil, errors.Errorf("observation %q has no data", name)
	}
	if err := d.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid likelihood for %q", name)
	}
	data := make([]float64, len(observed))
	copy(data, observed)
	return g.insert(&Node{Name: name, Kind: Observed, Dist: d, Observed: data})
}

// Node returns the named node if it has been declared.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.index[name]
	return n, ok
}

func (g *Graph) insert(n *Node) (*Node, error) {
	if len(n.Name) < 1 {
		return nil, errors.Errorf("node must have a name")
	}
	if _, ok := g.index[n.Name]; ok {
		return nil, errors.Errorf("duplicate node name %q", n.Name)
	}
	g.Nodes = append(g.Nodes, n)
	g.index[n.Name] = n
	return n, nil
}

// Check returns an error if there is a problem with the graph.
func (g *Graph) Check() error {
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.Name] {
			return errors.Errorf("graph %s has duplicate node %q", g.Name, n.Name)
		}
		seen[n.Name] = true

		switch n.Kind {
		case Latent:
			if n.Dist == nil {
				return errors.Errorf("latent %q has no distribution", n.Name)
			}
		case Deterministic:
			if n.Expr == nil {
				return errors.Errorf("deterministic %q has no expression", n.Name)
			}
		case Observed:
			if n.Dist == nil {
				return errors.Errorf("observation %q has no distribution", n.Name)
			}
			if len(n.Observed) < 1 {
				return errors.Errorf("observation %q has no data", n.Name)
			}
		default:
			return errors.Errorf("node %q has unknown kind %d", n.Name, n.Kind)
		}
	}

	return nil
}
