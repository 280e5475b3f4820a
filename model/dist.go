package model

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dist is a distribution family usable as a latent prior or an observation
// likelihood. Parameters are expressions so hierarchical priors can be
// parameterized by other nodes. Constant parameters are validated when the
// distribution is declared; node-valued parameters can only be checked at
// draw/score time, once an environment exists.
type Dist interface {
	// Validate checks whatever parameters are constant-evaluable.
	Validate() error
	// Rand draws one value, with one element per distribution dimension.
	Rand(env Env, src rand.Source) ([]float64, error)
	// LogProb returns the joint log-density of x.
	LogProb(env Env, x []float64) (float64, error)
}

// Normal is an independent normal over Shape elements; scalar Mu/Sigma
// broadcast across the shape.
type Normal struct {
	Mu    Expr
	Sigma Expr
	Shape int // element count; 0 means infer from the parameters
}

// Validate partially implements Dist.
func (d *Normal) Validate() error {
	if d.Mu == nil {
		return errors.Errorf("missing mu parameter")
	}
	return checkPositive("sigma", d.Sigma)
}

func (d *Normal) params(env Env) (mu, sigma []float64, err error) {
	mu, err = d.Mu.Eval(env)
	if err != nil {
		return nil, nil, err
	}
	sigma, err = d.Sigma.Eval(env)
	if err != nil {
		return nil, nil, err
	}
	mu, sigma, err = shaped(mu, sigma, d.Shape)
	if err != nil {
		return nil, nil, err
	}
	if err = allPositive("sigma", sigma); err != nil {
		return nil, nil, err
	}
	return mu, sigma, nil
}

// Rand implements Dist.
func (d *Normal) Rand(env Env, src rand.Source) ([]float64, error) {
	mu, sigma, err := d.params(env)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(mu))
	for i := range out {
		out[i] = distuv.Normal{Mu: mu[i], Sigma: sigma[i], Src: src}.Rand()
	}
	return out, nil
}

// LogProb implements Dist.
func (d *Normal) LogProb(env Env, x []float64) (float64, error) {
	mu, sigma, err := d.params(env)
	if err != nil {
		return 0, err
	}
	if len(x) != len(mu) {
		return 0, errors.Errorf("normal dimension %d does not match %d values", len(mu), len(x))
	}
	lp := 0.0
	for i := range x {
		lp += distuv.Normal{Mu: mu[i], Sigma: sigma[i]}.LogProb(x[i])
	}
	return lp, nil
}

// HalfNormal is the absolute value of a zero-mean normal, over Shape
// elements.
type HalfNormal struct {
	Sigma Expr
	Shape int
}

// Validate partially implements Dist.
func (d *HalfNormal) Validate() error {
	return checkPositive("sigma", d.Sigma)
}

func (d *HalfNormal) params(env Env) ([]float64, error) {
	sigma, err := d.Sigma.Eval(env)
	if err != nil {
		return nil, err
	}
	if len(sigma) == 1 && d.Shape > 1 {
		sigma = stretch(sigma[0], d.Shape)
	}
	if d.Shape > 0 && len(sigma) != d.Shape {
		return nil, errors.Errorf("half-normal sigma has %d elements, want %d", len(sigma), d.Shape)
	}
	if err = allPositive("sigma", sigma); err != nil {
		return nil, err
	}
	return sigma, nil
}

// Rand implements Dist.
func (d *HalfNormal) Rand(env Env, src rand.Source) ([]float64, error) {
	sigma, err := d.params(env)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(sigma))
	for i := range out {
		out[i] = math.Abs(distuv.Normal{Mu: 0, Sigma: sigma[i], Src: src}.Rand())
	}
	return out, nil
}

// LogProb implements Dist.
func (d *HalfNormal) LogProb(env Env, x []float64) (float64, error) {
	sigma, err := d.params(env)
	if err != nil {
		return 0, err
	}
	if len(x) != len(sigma) {
		return 0, errors.Errorf("half-normal dimension %d does not match %d values", len(sigma), len(x))
	}
	lp := 0.0
	for i := range x {
		if x[i] < 0 {
			return math.Inf(-1), nil
		}
		lp += math.Ln2 + distuv.Normal{Mu: 0, Sigma: sigma[i]}.LogProb(x[i])
	}
	return lp, nil
}

// Gamma is mean/sd parameterized, matching how field priors are specified,
// and converted to shape/rate internally.
type Gamma struct {
	Mean Expr
	SD   Expr
}

// Validate partially implements Dist.
func (d *Gamma) Validate() error {
	if err := checkPositive("mean", d.Mean); err != nil {
		return err
	}
	return checkPositive("sd", d.SD)
}

func (d *Gamma) params(env Env) (alpha, rate float64, err error) {
	m, err := scalar("mean", d.Mean, env)
	if err != nil {
		return 0, 0, err
	}
	s, err := scalar("sd", d.SD, env)
	if err != nil {
		return 0, 0, err
	}
	if m <= 0 || s <= 0 {
		return 0, 0, errors.Errorf("gamma mean/sd must be positive, got %v/%v", m, s)
	}
	return (m / s) * (m / s), m / (s * s), nil
}

// Rand implements Dist.
func (d *Gamma) Rand(env Env, src rand.Source) ([]float64, error) {
	alpha, rate, err := d.params(env)
	if err != nil {
		return nil, err
	}
	return []float64{distuv.Gamma{Alpha: alpha, Beta: rate, Src: src}.Rand()}, nil
}

// LogProb implements Dist.
func (d *Gamma) LogProb(env Env, x []float64) (float64, error) {
	alpha, rate, err := d.params(env)
	if err != nil {
		return 0, err
	}
	if len(x) != 1 {
		return 0, errors.Errorf("gamma is scalar, got %d values", len(x))
	}
	return distuv.Gamma{Alpha: alpha, Beta: rate}.LogProb(x[0]), nil
}

// Exponential is mean parameterized (rate = 1/mean), over Shape elements.
type Exponential struct {
	Mean  Expr
	Shape int
}

// Validate partially implements Dist.
func (d *Exponential) Validate() error {
	return checkPositive("mean", d.Mean)
}

func (d *Exponential) params(env Env) ([]float64, error) {
	m, err := d.Mean.Eval(env)
	if err != nil {
		return nil, err
	}
	if len(m) == 1 && d.Shape > 1 {
		m = stretch(m[0], d.Shape)
	}
	if d.Shape > 0 && len(m) != d.Shape {
		return nil, errors.Errorf("exponential mean has %d elements, want %d", len(m), d.Shape)
	}
	if err = allPositive("mean", m); err != nil {
		return nil, err
	}
	return m, nil
}

// Rand implements Dist.
func (d *Exponential) Rand(env Env, src rand.Source) ([]float64, error) {
	m, err := d.params(env)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(m))
	for i := range out {
		out[i] = distuv.Exponential{Rate: 1 / m[i], Src: src}.Rand()
	}
	return out, nil
}

// LogProb implements Dist.
func (d *Exponential) LogProb(env Env, x []float64) (float64, error) {
	m, err := d.params(env)
	if err != nil {
		return 0, err
	}
	if len(x) != len(m) {
		return 0, errors.Errorf("exponential dimension %d does not match %d values", len(m), len(x))
	}
	lp := 0.0
	for i := range x {
		lp += distuv.Exponential{Rate: 1 / m[i]}.LogProb(x[i])
	}
	return lp, nil
}

// Uniform is a scalar uniform on [Min, Max].
type Uniform struct {
	Min float64
	Max float64
}

// Validate implements Dist.
func (d *Uniform) Validate() error {
	if d.Max <= d.Min {
		return errors.Errorf("uniform bounds [%v, %v] are empty", d.Min, d.Max)
	}
	return nil
}

// Rand implements Dist.
func (d *Uniform) Rand(_ Env, src rand.Source) ([]float64, error) {
	return []float64{distuv.Uniform{Min: d.Min, Max: d.Max, Src: src}.Rand()}, nil
}

// LogProb implements Dist.
func (d *Uniform) LogProb(_ Env, x []float64) (float64, error) {
	if len(x) != 1 {
		return 0, errors.Errorf("uniform is scalar, got %d values", len(x))
	}
	return distuv.Uniform{Min: d.Min, Max: d.Max}.LogProb(x[0]), nil
}

// Beta is a scalar beta distribution with fixed hyperparameters.
type Beta struct {
	Alpha float64
	Beta  float64
}

// Validate implements Dist.
func (d *Beta) Validate() error {
	if d.Alpha <= 0 || d.Beta <= 0 {
		return errors.Errorf("beta parameters must be positive, got %v/%v", d.Alpha, d.Beta)
	}
	return nil
}

// Rand implements Dist.
func (d *Beta) Rand(_ Env, src rand.Source) ([]float64, error) {
	return []float64{distuv.Beta{Alpha: d.Alpha, Beta: d.Beta, Src: src}.Rand()}, nil
}

// LogProb implements Dist.
func (d *Beta) LogProb(_ Env, x []float64) (float64, error) {
	if len(x) != 1 {
		return 0, errors.Errorf("beta is scalar, got %d values", len(x))
	}
	return distuv.Beta{Alpha: d.Alpha, Beta: d.Beta}.LogProb(x[0]), nil
}

// shaped broadcasts a parameter pair against each other and an optional
// declared shape.
func shaped(a, b []float64, shape int) ([]float64, []float64, error) {
	a, b, err := broadcast(a, b)
	if err != nil {
		return nil, nil, err
	}
	if len(a) == 1 && shape > 1 {
		a = stretch(a[0], shape)
		b = stretch(b[0], shape)
	}
	if shape > 0 && len(a) != shape {
		return nil, nil, errors.Errorf("parameters have %d elements, want %d", len(a), shape)
	}
	return a, b, nil
}

// checkPositive validates a scale-type parameter when it is
// constant-evaluable. Node-valued parameters evaluate to an error against
// the empty environment and are deferred to draw time.
func checkPositive(name string, e Expr) error {
	if e == nil {
		return errors.Errorf("missing %s parameter", name)
	}
	v, err := e.Eval(Env{})
	if err != nil {
		return nil
	}
	return allPositive(name, v)
}

func allPositive(name string, v []float64) error {
	for _, x := range v {
		if x <= 0 {
			return errors.Errorf("%s must be positive, got %v", name, x)
		}
	}
	return nil
}

func scalar(name string, e Expr, env Env) (float64, error) {
	v, err := e.Eval(env)
	if err != nil {
		return 0, err
	}
	if len(v) != 1 {
		return 0, errors.Errorf("%s must be scalar, got %d elements", name, len(v))
	}
	return v[0], nil
}
