// Package model provides the shared estimator state and interfaces
// implemented by gokrige interpolators.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that learn from known sample
// points. X holds one row per point with columns (x, y); y holds the
// scalar measurements.
type Estimator interface {
	Fit(X, y mat.Matrix) error
	IsFitted() bool
}

// Predictor is the interface for models that predict values at query
// locations. X holds one row per query with columns (x, y); the result
// is an n×1 matrix of estimates.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// VariancePredictor is implemented by predictors that also report the
// estimation-error variance for each query location.
type VariancePredictor interface {
	PredictWithVariance(X mat.Matrix) (values, variances mat.Matrix, err error)
}

// Interpolator combines the interfaces a spatial interpolation model
// must satisfy.
type Interpolator interface {
	Estimator
	Predictor
	VariancePredictor
}
