package kinetics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is returned for out-of-range caller input.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrStateInvariant is returned when the simulation state is corrupt.
	// A simulation that has returned it refuses further ticks.
	ErrStateInvariant = errors.New("state invariant violation")
)

// Parameter ranges accepted at the boundary.
const (
	MinTemperature   = 10
	MaxTemperature   = 100
	MinConcentration = 5
	MaxConcentration = 50
)

// ParameterError describes a rejected parameter value.
type ParameterError struct {
	Name     string
	Value    float64
	Min, Max float64
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}

// Unwrap makes errors.Is(err, ErrInvalidParameter) hold.
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// ValidateTemperature rejects temperatures outside [MinTemperature, MaxTemperature].
func ValidateTemperature(v int) error {
	return checkRange("temperature", float64(v), MinTemperature, MaxTemperature)
}

// ValidateConcentration rejects concentrations outside [MinConcentration, MaxConcentration].
func ValidateConcentration(v int) error {
	return checkRange("concentration", float64(v), MinConcentration, MaxConcentration)
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return &ParameterError{Name: name, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// validateGeometry requires a viewport that fits a particle on both axes
// with room to move.
func validateGeometry(width, height, radius float64) error {
	if !(radius > 0) {
		return &ParameterError{Name: "radius", Value: radius, Min: 0, Max: width / 2}
	}
	if !(width > 2*radius) {
		return &ParameterError{Name: "width", Value: width, Min: 2 * radius, Max: math.Inf(1)}
	}
	if !(height > 2*radius) {
		return &ParameterError{Name: "height", Value: height, Min: 2 * radius, Max: math.Inf(1)}
	}
	return nil
}
