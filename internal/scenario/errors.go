package scenario

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by scenarios.
var (
	// ErrToleranceExceeded indicates an observed quantity outside its tolerance.
	ErrToleranceExceeded = errors.New("tolerance exceeded")

	// ErrUnknownScenario indicates a scenario name that is not registered.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// ToleranceError reports one failed comparison. It matches
// ErrToleranceExceeded with errors.Is.
type ToleranceError struct {
	Scenario  string
	Quantity  string
	Expected  float64
	Actual    float64
	Tolerance float64
}

// Delta returns Actual - Expected.
func (e *ToleranceError) Delta() float64 { return e.Actual - e.Expected }

func (e *ToleranceError) Error() string {
	return fmt.Sprintf("%s: %s: expected %g, actual %g, delta %g exceeds tolerance %g",
		e.Scenario, e.Quantity, e.Expected, e.Actual, e.Delta(), e.Tolerance)
}

// Is reports whether target is ErrToleranceExceeded.
func (e *ToleranceError) Is(target error) bool {
	return target == ErrToleranceExceeded
}

// checkNear returns a *ToleranceError when |actual-expected| > tolerance.
func checkNear(scenario, quantity string, expected, actual, tolerance float64) error {
	if math.Abs(actual-expected) <= tolerance {
		return nil
	}
	return &ToleranceError{
		Scenario:  scenario,
		Quantity:  quantity,
		Expected:  expected,
		Actual:    actual,
		Tolerance: tolerance,
	}
}
