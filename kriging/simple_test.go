package kriging

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestSimple_SelfPrediction(t *testing.T) {
	coords, values := squareDataset()

	sk := NewSimple(testModel(), 10.25)
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	pred, err := sk.PredictLocation(0, 0)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if math.Abs(pred.Value-10) > 1e-6 {
		t.Errorf("Expected exact self-prediction 10, got %v", pred.Value)
	}
	if pred.Variance > 1e-6 {
		t.Errorf("Expected ~zero variance at known point, got %v", pred.Variance)
	}
}

func TestSimple_CentroidWithinNeighborRange(t *testing.T) {
	// Global mean equal to the exact dataset mean, query at the
	// centroid of a symmetric dataset: the estimate must fall between
	// the neighbor extremes.
	coords, values := squareDataset()
	mean := (10.0 + 12 + 8 + 11) / 4

	sk := NewSimple(testModel(), mean)
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	pred, err := sk.PredictLocation(0.5, 0.5)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if pred.Value < 8 || pred.Value > 12 {
		t.Errorf("Centroid estimate %v outside [8, 12]", pred.Value)
	}
	if pred.Mean != mean {
		t.Errorf("Expected echoed global mean %v, got %v", mean, pred.Mean)
	}
	// No Lagrange multiplier in Simple kriging.
	if len(pred.Weights) != 4 {
		t.Errorf("Expected 4 weights, got %d", len(pred.Weights))
	}
}

func TestSimple_AnomalyWarning(t *testing.T) {
	coords, values := squareDataset()

	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(nil)

	// A wildly wrong global mean drags the estimate far outside the
	// neighbor value range.
	sk := NewSimple(testModel(), 1000,
		WithAnomalyCheck(true),
		WithAnomalyTolerance(0),
	)
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	pred, err := sk.PredictLocation(0.5, 0.5)
	if err != nil {
		t.Fatalf("Prediction must not fail on an anomaly: %v", err)
	}
	if pred.Value <= 12 {
		t.Fatalf("Test setup expected an anomalous estimate, got %v", pred.Value)
	}

	found := false
	for _, w := range captured {
		var anomaly *errors.AnomalyWarning
		if errors.As(w, &anomaly) {
			found = true
			if anomaly.Min != 8 || anomaly.Max != 12 {
				t.Errorf("Warning carries wrong neighbor range [%v, %v]", anomaly.Min, anomaly.Max)
			}
		}
	}
	if !found {
		t.Error("Expected an AnomalyWarning")
	}
}

func TestSimple_NoAnomalyWarningWhenDisabled(t *testing.T) {
	coords, values := squareDataset()

	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(nil)

	sk := NewSimple(testModel(), 1000)
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if _, err := sk.PredictLocation(0.5, 0.5); err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for _, w := range captured {
		var anomaly *errors.AnomalyWarning
		if errors.As(w, &anomaly) {
			t.Error("Anomaly check ran while disabled")
		}
	}
}

func TestSimple_MaxNeighborsExceedsPoints(t *testing.T) {
	coords, values := squareDataset()

	sk := NewSimple(testModel(), 10.25, WithMaxNeighbors(50))
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	pred, err := sk.PredictLocation(0.5, 0.5)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if len(pred.Weights) != 4 {
		t.Errorf("Expected all 4 points used, got %d weights", len(pred.Weights))
	}
}

func TestSimple_NotFitted(t *testing.T) {
	sk := NewSimple(testModel(), 0)
	_, err := sk.Predict(mat.NewDense(1, 2, []float64{0, 0}))
	var notFittedErr *errors.NotFittedError
	if !errors.As(err, &notFittedErr) {
		t.Errorf("Expected NotFittedError, got %v", err)
	}
}

func TestSimple_RejectsNonFiniteMean(t *testing.T) {
	coords, values := squareDataset()
	sk := NewSimple(testModel(), math.NaN())
	if err := sk.Fit(coords, values); err == nil {
		t.Error("Expected error for NaN global mean")
	}
}

func TestSimple_BatchMatchesSingle(t *testing.T) {
	coords, values := squareDataset()

	sk := NewSimple(testModel(), 10.25)
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	queries := mat.NewDense(2, 2, []float64{
		0.5, 0.5,
		0.2, 0.8,
	})
	batch, err := sk.Predict(queries)
	if err != nil {
		t.Fatalf("Failed to predict batch: %v", err)
	}
	for i := 0; i < 2; i++ {
		pred, err := sk.PredictLocation(queries.At(i, 0), queries.At(i, 1))
		if err != nil {
			t.Fatalf("Failed to predict row %d: %v", i, err)
		}
		if math.Abs(batch.At(i, 0)-pred.Value) > 1e-12 {
			t.Errorf("row %d: batch %v vs single %v", i, batch.At(i, 0), pred.Value)
		}
	}
}

func TestSimple_VarianceNonNegative(t *testing.T) {
	coords, values := squareDataset()

	sk := NewSimple(testModel(), 10.25)
	if err := sk.Fit(coords, values); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	_, variances, err := sk.PredictWithVariance(mat.NewDense(3, 2, []float64{
		0.5, 0.5,
		0, 0,
		3, 3,
	}))
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for i := 0; i < 3; i++ {
		if variances.At(i, 0) < 0 {
			t.Errorf("row %d: negative variance %v", i, variances.At(i, 0))
		}
	}
}
