package main

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// curve holds the reacted fraction after each tick, starting at tick 1.
type curve []float64

// model is first-order conversion: f(t) = 1 - exp(-k t).
func model(k, t float64) float64 {
	return 1 - math.Exp(-k*t)
}

func (c curve) sse(k float64) float64 {
	var sum float64
	for i, f := range c {
		d := model(k, float64(i+1)) - f
		sum += d * d
	}
	return sum
}

// initialRate estimates k from the half-conversion tick or the final value.
func (c curve) initialRate() float64 {
	for i, f := range c {
		if f >= 0.5 {
			return math.Ln2 / float64(i+1)
		}
	}
	if last := c[len(c)-1]; last > 0 && last < 1 {
		return -math.Log(1-last) / float64(len(c))
	}
	return 1e-3
}

// fitRate fits the apparent rate constant k to the curve by least squares.
// It returns k = 0 for a curve that never reacts.
func fitRate(c curve) (k, sse float64, err error) {
	if len(c) == 0 {
		return 0, 0, errors.New("empty curve")
	}
	if c[len(c)-1] == 0 {
		return 0, 0, nil
	}

	// optimize log k so the rate stays positive
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return c.sse(math.Exp(x[0]))
		},
	}
	result, err := optimize.Minimize(problem, []float64{math.Log(c.initialRate())}, nil, &optimize.NelderMead{})
	if result == nil {
		return 0, 0, err
	}
	k = math.Exp(result.X[0])
	return k, c.sse(k), nil
}

// halfLife returns the ticks to half conversion for rate k.
func halfLife(k float64) float64 {
	if k == 0 {
		return math.Inf(1)
	}
	return math.Ln2 / k
}
