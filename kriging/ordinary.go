package kriging

import (
	"github.com/YuminosukeSato/gokrige/core/model"
	"github.com/YuminosukeSato/gokrige/core/parallel"
	"github.com/YuminosukeSato/gokrige/distance"
	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"github.com/YuminosukeSato/gokrige/variogram"
	"gonum.org/v1/gonum/mat"
)

// Ordinary is the Ordinary kriging predictor: the process mean is
// unknown and estimated implicitly through the unbiasedness constraint,
// which forces the kriging weights to sum to 1.
type Ordinary struct {
	model.BaseEstimator

	theo   *variogram.Theoretical
	coords *mat.Dense
	values *mat.VecDense
	cfg    config
}

var _ model.Interpolator = (*Ordinary)(nil)

// NewOrdinary creates an Ordinary kriging predictor for a fitted
// theoretical semivariogram.
func NewOrdinary(theo *variogram.Theoretical, opts ...Option) *Ordinary {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Ordinary{theo: theo, cfg: cfg}
}

// Fit captures the known sample points. X is n×2 with columns (x, y)
// and y is the n×1 value vector. The data is copied, so the predictor
// stays valid if the caller mutates its matrices, and predictions need
// no locking.
func (ok *Ordinary) Fit(X, y mat.Matrix) error {
	if ok.theo == nil {
		return errors.NewValueError("Ordinary.Fit", "theoretical semivariogram is nil")
	}
	coords, values, err := validateFitInput("Ordinary.Fit", X, y)
	if err != nil {
		return err
	}
	ok.coords = coords
	ok.values = values
	ok.SetFitted()
	return nil
}

// PredictLocation krigs the value at a single query location.
//
// The (k+1)×(k+1) system pairs the neighbor-to-neighbor semivariance
// block with a Lagrange row encoding the unbiasedness constraint; the
// right-hand side holds the query-to-neighbor semivariances and a
// trailing 1. The system is solved by LU decomposition; a singular
// system (duplicate or collinear neighbors) yields a
// SingularSystemError.
func (ok *Ordinary) PredictLocation(x, y float64) (*Prediction, error) {
	if !ok.IsFitted() {
		return nil, errors.NewNotFittedError("Ordinary", "PredictLocation")
	}

	neighbors, err := distance.Nearest(ok.coords, x, y, ok.cfg.maxNeighbors)
	if err != nil {
		return nil, err
	}
	k := len(neighbors)
	if k < 2 {
		return nil, errors.NewInsufficientDataError("Ordinary.PredictLocation", 2, k)
	}

	a := mat.NewDense(k+1, k+1, nil)
	gammaMatrix(a, ok.theo, ok.coords, neighbors)
	for i := 0; i < k; i++ {
		a.Set(i, k, 1)
		a.Set(k, i, 1)
	}
	a.Set(k, k, 0)

	b := mat.NewVecDense(k+1, nil)
	for i, nb := range neighbors {
		b.SetVec(i, ok.theo.Semivariance(nb.Distance))
	}
	b.SetVec(k, 1)

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, errors.NewSingularSystemError("Ordinary.PredictLocation", k+1, err)
	}

	var estimate, variance float64
	weights := make([]float64, k+1)
	for i, nb := range neighbors {
		wi := w.AtVec(i)
		weights[i] = wi
		estimate += wi * ok.values.AtVec(nb.Index)
		variance += wi * b.AtVec(i)
	}
	mu := w.AtVec(k)
	weights[k] = mu
	variance += mu

	if err := errors.CheckScalar("Ordinary.PredictLocation", estimate); err != nil {
		return nil, err
	}
	variance, err = finishVariance("Ordinary.PredictLocation", variance, ok.cfg.varianceTol, x, y)
	if err != nil {
		return nil, err
	}

	return &Prediction{
		Value:    estimate,
		Variance: variance,
		Mean:     estimate,
		Weights:  weights,
	}, nil
}

// Predict krigs a batch of query locations. X is m×2; the result is
// m×1. Queries are independent and run in parallel for large batches.
func (ok *Ordinary) Predict(X mat.Matrix) (mat.Matrix, error) {
	values, _, err := ok.predictRows(X, false)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// PredictWithVariance krigs a batch of query locations, returning both
// the m×1 estimates and the m×1 error variances.
func (ok *Ordinary) PredictWithVariance(X mat.Matrix) (mat.Matrix, mat.Matrix, error) {
	return ok.predictRows(X, true)
}

func (ok *Ordinary) predictRows(X mat.Matrix, wantVariance bool) (*mat.Dense, *mat.Dense, error) {
	if !ok.IsFitted() {
		return nil, nil, errors.NewNotFittedError("Ordinary", "Predict")
	}
	m, err := validatePredictInput("Ordinary.Predict", X)
	if err != nil {
		return nil, nil, err
	}

	values := mat.NewDense(m, 1, nil)
	var variances *mat.Dense
	if wantVariance {
		variances = mat.NewDense(m, 1, nil)
	}
	rowErrs := make([]error, m)

	parallel.ParallelizeWithThreshold(m, batchThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred, err := ok.PredictLocation(X.At(i, 0), X.At(i, 1))
			if err != nil {
				rowErrs[i] = err
				continue
			}
			values.Set(i, 0, pred.Value)
			if wantVariance {
				variances.Set(i, 0, pred.Variance)
			}
		}
	})

	if err := firstError(rowErrs); err != nil {
		return nil, nil, err
	}
	return values, variances, nil
}
