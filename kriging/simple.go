package kriging

import (
	"github.com/YuminosukeSato/gokrige/core/model"
	"github.com/YuminosukeSato/gokrige/core/parallel"
	"github.com/YuminosukeSato/gokrige/distance"
	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"github.com/YuminosukeSato/gokrige/variogram"
	"gonum.org/v1/gonum/mat"
)

// Simple is the Simple kriging predictor: the process mean is known a
// priori and supplied by the caller. There is no unbiasedness
// constraint, so the system has no Lagrange row.
//
// The global mean is a required constructor parameter, never computed
// from the data: deriving it implicitly from a set that includes test
// points leaks information into evaluation.
type Simple struct {
	model.BaseEstimator

	theo       *variogram.Theoretical
	globalMean float64
	coords     *mat.Dense
	values     *mat.VecDense
	cfg        config
}

var _ model.Interpolator = (*Simple)(nil)

// NewSimple creates a Simple kriging predictor for a fitted theoretical
// semivariogram and a known global mean.
func NewSimple(theo *variogram.Theoretical, globalMean float64, opts ...Option) *Simple {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Simple{theo: theo, globalMean: globalMean, cfg: cfg}
}

// Fit captures the known sample points. X is n×2 with columns (x, y)
// and y is the n×1 value vector. The data is copied; the fitted
// predictor is immutable and safe for concurrent prediction.
func (sk *Simple) Fit(X, y mat.Matrix) error {
	if sk.theo == nil {
		return errors.NewValueError("Simple.Fit", "theoretical semivariogram is nil")
	}
	if err := errors.CheckScalar("Simple.Fit", sk.globalMean); err != nil {
		return err
	}
	coords, values, err := validateFitInput("Simple.Fit", X, y)
	if err != nil {
		return err
	}
	sk.coords = coords
	sk.values = values
	sk.SetFitted()
	return nil
}

// PredictLocation krigs the value at a single query location.
//
// The k×k system is the neighbor-to-neighbor semivariance block; the
// right-hand side holds the query-to-neighbor semivariances. The
// estimate is the global mean plus the weighted residuals of the
// neighbor values around it. When the anomaly check is enabled, an
// estimate falling far outside the observed neighbor value range emits
// an AnomalyWarning (never an error).
func (sk *Simple) PredictLocation(x, y float64) (*Prediction, error) {
	if !sk.IsFitted() {
		return nil, errors.NewNotFittedError("Simple", "PredictLocation")
	}

	neighbors, err := distance.Nearest(sk.coords, x, y, sk.cfg.maxNeighbors)
	if err != nil {
		return nil, err
	}
	k := len(neighbors)
	if k < 2 {
		return nil, errors.NewInsufficientDataError("Simple.PredictLocation", 2, k)
	}

	a := mat.NewDense(k, k, nil)
	gammaMatrix(a, sk.theo, sk.coords, neighbors)

	b := mat.NewVecDense(k, nil)
	for i, nb := range neighbors {
		b.SetVec(i, sk.theo.Semivariance(nb.Distance))
	}

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, errors.NewSingularSystemError("Simple.PredictLocation", k, err)
	}

	estimate := sk.globalMean
	var variance float64
	weights := make([]float64, k)
	for i, nb := range neighbors {
		wi := w.AtVec(i)
		weights[i] = wi
		estimate += wi * (sk.values.AtVec(nb.Index) - sk.globalMean)
		variance += wi * b.AtVec(i)
	}

	if err := errors.CheckScalar("Simple.PredictLocation", estimate); err != nil {
		return nil, err
	}
	variance, err = finishVariance("Simple.PredictLocation", variance, sk.cfg.varianceTol, x, y)
	if err != nil {
		return nil, err
	}

	if sk.cfg.anomalyCheck {
		min, max := neighborValueRange(sk.values, neighbors)
		spread := max - min
		if estimate < min-sk.cfg.anomalyTol*spread || estimate > max+sk.cfg.anomalyTol*spread {
			errors.Warn(errors.NewAnomalyWarning(estimate, min, max, sk.cfg.anomalyTol))
		}
	}

	return &Prediction{
		Value:    estimate,
		Variance: variance,
		Mean:     sk.globalMean,
		Weights:  weights,
	}, nil
}

// Predict krigs a batch of query locations. X is m×2; the result is
// m×1. Queries are independent and run in parallel for large batches.
func (sk *Simple) Predict(X mat.Matrix) (mat.Matrix, error) {
	values, _, err := sk.predictRows(X, false)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// PredictWithVariance krigs a batch of query locations, returning both
// the m×1 estimates and the m×1 error variances.
func (sk *Simple) PredictWithVariance(X mat.Matrix) (mat.Matrix, mat.Matrix, error) {
	return sk.predictRows(X, true)
}

func (sk *Simple) predictRows(X mat.Matrix, wantVariance bool) (*mat.Dense, *mat.Dense, error) {
	if !sk.IsFitted() {
		return nil, nil, errors.NewNotFittedError("Simple", "Predict")
	}
	m, err := validatePredictInput("Simple.Predict", X)
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
			pred, err := sk.PredictLocation(X.At(i, 0), X.At(i, 1))
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
