package errors

import (
	"strings"
	"testing"
)

func TestErrorTypes_As(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		target interface{}
	}{
		{"insufficient data", NewInsufficientDataError("kriging", 2, 1), new(*InsufficientDataError)},
		{"no feasible model", NewNoFeasibleModelError("variogram.Fit", []string{"spherical"}, "flat"), new(*NoFeasibleModelError)},
		{"singular system", NewSingularSystemError("kriging", 5, ErrSingularMatrix), new(*SingularSystemError)},
		{"invalid model", NewInvalidModelError("kriging", "negative variance", -1), new(*InvalidModelError)},
		{"not fitted", NewNotFittedError("OrdinaryKriging", "Predict"), new(*NotFittedError)},
		{"dimension", NewDimensionError("MSE", 3, 2, 0), new(*DimensionError)},
		{"value", NewValueError("variogram", "step size must be positive"), new(*ValueError)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !As(tc.err, tc.target) {
				t.Errorf("As failed for %T", tc.err)
			}
			if tc.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestSingularSystemError_Unwrap(t *testing.T) {
	err := NewSingularSystemError("kriging.PredictLocation", 5, ErrSingularMatrix)
	if !Is(err, ErrSingularMatrix) {
		t.Error("Expected Is to find the wrapped cause")
	}
}

func TestInsufficientDataError_Message(t *testing.T) {
	err := NewInsufficientDataError("distance.Nearest", 2, 0)
	msg := err.Error()
	if !strings.Contains(msg, "distance.Nearest") || !strings.Contains(msg, "2") {
		t.Errorf("Message missing context: %s", msg)
	}
}

func TestWarn_CustomHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(nil)

	Warn(NewNegativeVarianceWarning(-1e-10, 0.5, 0.5))
	Warn(NewAnomalyWarning(109.6, 8, 12, 1))

	if len(captured) != 2 {
		t.Fatalf("Expected 2 warnings, got %d", len(captured))
	}
	var negVar *NegativeVarianceWarning
	if !As(captured[0], &negVar) {
		t.Errorf("Expected NegativeVarianceWarning, got %T", captured[0])
	} else if negVar.Variance != -1e-10 {
		t.Errorf("Warning carries wrong variance %v", negVar.Variance)
	}
	var anomaly *AnomalyWarning
	if !As(captured[1], &anomaly) {
		t.Errorf("Expected AnomalyWarning, got %T", captured[1])
	} else if anomaly.Min != 8 || anomaly.Max != 12 {
		t.Errorf("Warning carries wrong range [%v, %v]", anomaly.Min, anomaly.Max)
	}
}

func TestClampNonNegative(t *testing.T) {
	cases := []struct {
		value, tolerance float64
		wantValue        float64
		wantOK           bool
	}{
		{1.5, 1e-8, 1.5, true},
		{0, 1e-8, 0, true},
		{-1e-10, 1e-8, 0, true},
		{-1e-8, 1e-8, 0, true},
		{-1e-3, 1e-8, -1e-3, false},
	}
	for _, tc := range cases {
		got, ok := ClampNonNegative(tc.value, tc.tolerance)
		if got != tc.wantValue || ok != tc.wantOK {
			t.Errorf("ClampNonNegative(%v, %v) = (%v, %v), want (%v, %v)",
				tc.value, tc.tolerance, got, ok, tc.wantValue, tc.wantOK)
		}
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("test", 1.5); err != nil {
		t.Errorf("Unexpected error for finite value: %v", err)
	}
	nan := 0.0
	nan /= nan
	if err := CheckScalar("test", nan); err == nil {
		t.Error("Expected error for NaN")
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(6, 2); got != 3 {
		t.Errorf("Expected 3, got %v", got)
	}
	if got := SafeDivide(1, 0); got != 0 {
		t.Errorf("Expected 0 for zero denominator, got %v", got)
	}
}
