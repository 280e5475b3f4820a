package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Env holds the current value of every node evaluated so far, keyed by node
// name. A sampler fills it in ancestral order.
type Env map[string][]float64

// Expr is a closed-form expression over node values. Expressions are built
// once at graph-construction time and evaluated repeatedly by the inference
// engine against different environments.
type Expr interface {
	Eval(env Env) ([]float64, error)
}

type constExpr struct {
	vals []float64
}

func (c constExpr) Eval(Env) ([]float64, error) {
	out := make([]float64, len(c.vals))
	copy(out, c.vals)
	return out, nil
}

// Const lifts fixed values (observed constants, unit factors) into an
// expression.
func Const(vals ...float64) Expr {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	return constExpr{vals: cp}
}

type binExpr struct {
	op   byte
	a, b Expr
}

func (e binExpr) Eval(env Env) ([]float64, error) {
	x, err := e.a.Eval(env)
	if err != nil {
		return nil, err
	}
	y, err := e.b.Eval(env)
	if err != nil {
		return nil, err
	}

	x, y, err = broadcast(x, y)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	copy(out, x)
	switch e.op {
	case '+':
		floats.Add(out, y)
	case '-':
		floats.Sub(out, y)
	case '*':
		floats.Mul(out, y)
	case '/':
		floats.Div(out, y)
	default:
		return nil, errors.Errorf("unknown operator %q", e.op)
	}

	return out, nil
}

// Add returns the elementwise sum a+b.
func Add(a, b Expr) Expr { return binExpr{'+', a, b} }

// Sub returns the elementwise difference a-b.
func Sub(a, b Expr) Expr { return binExpr{'-', a, b} }

// Mul returns the elementwise product a*b.
func Mul(a, b Expr) Expr { return binExpr{'*', a, b} }

// Div returns the elementwise quotient a/b.
func Div(a, b Expr) Expr { return binExpr{'/', a, b} }

// OneMinus is shorthand for the complement 1-a.
func OneMinus(a Expr) Expr { return Sub(Const(1), a) }

// Scale multiplies a by the fixed factor c.
func Scale(c float64, a Expr) Expr { return Mul(Const(c), a) }

type dotExpr struct {
	a Expr
	w []float64
}

func (e dotExpr) Eval(env Env) ([]float64, error) {
	x, err := e.a.Eval(env)
	if err != nil {
		return nil, err
	}
	if len(x) != len(e.w) {
		return nil, errors.Errorf("dot length mismatch: %d values vs %d weights", len(x), len(e.w))
	}
	return []float64{floats.Dot(x, e.w)}, nil
}

// Dot reduces a against fixed weights, yielding a scalar sum(a*w).
func Dot(a Expr, weights []float64) Expr {
	w := make([]float64, len(weights))
	copy(w, weights)
	return dotExpr{a: a, w: w}
}

// broadcast stretches a length-1 operand to match the other operand's
// length. Any other length mismatch is an error.
func broadcast(x, y []float64) ([]float64, []float64, error) {
	switch {
	case len(x) == len(y):
		return x, y, nil
	case len(x) == 1:
		return stretch(x[0], len(y)), y, nil
	case len(y) == 1:
		return x, stretch(y[0], len(x)), nil
	}
	return nil, nil, errors.Errorf("length mismatch: %d vs %d", len(x), len(y))
}

func stretch(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
