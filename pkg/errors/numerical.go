package errors

import (
	"math"
)

// CheckScalar checks a single scalar value for numerical instability
// (NaN or Inf) and returns a ValueError if detected.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValueError(operation, "numerical instability detected (NaN or Inf)")
	}
	return nil
}

// CheckValues checks a slice of values for numerical instability.
func CheckValues(operation string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation, "numerical instability detected (NaN or Inf)")
		}
	}
	return nil
}

// ClampNonNegative clamps a value that should be non-negative by
// construction but may dip below zero through floating-point noise.
// Values within tolerance of zero are clamped to 0 and reported via ok;
// values below -tolerance are returned unchanged with ok=false so the
// caller can escalate.
func ClampNonNegative(value, tolerance float64) (clamped float64, ok bool) {
	if value >= 0 {
		return value, true
	}
	if value >= -tolerance {
		return 0, true
	}
	return value, false
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if the denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}
