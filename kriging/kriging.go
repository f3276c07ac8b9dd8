// Package kriging implements Ordinary and Simple point kriging. A
// predictor binds a fitted theoretical semivariogram to a set of known
// sample points through Fit; afterwards it is immutable and safe for
// concurrent prediction, since every prediction allocates its own
// working matrices.
package kriging

import (
	"math"

	"github.com/YuminosukeSato/gokrige/distance"
	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"github.com/YuminosukeSato/gokrige/variogram"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMaxNeighbors is the neighbor cap used when not overridden.
	DefaultMaxNeighbors = 16

	// defaultVarianceTolerance bounds the floating-point noise below
	// zero tolerated in a kriging variance before it is treated as a
	// modeling problem.
	defaultVarianceTolerance = 1e-8

	// defaultAnomalyTolerance is the spread multiple the Simple
	// kriging anomaly check allows outside the neighbor value range.
	defaultAnomalyTolerance = 1.0

	// batchThreshold is the query count above which batch prediction
	// fans out across CPU cores.
	batchThreshold = 64
)

// Prediction is the result of a single kriging query.
type Prediction struct {
	// Value is the best linear unbiased estimate at the query location.
	Value float64
	// Variance is the kriging estimation-error variance.
	Variance float64
	// Mean is a diagnostic: the weighted mean of the neighbor values
	// for Ordinary kriging, the supplied global mean for Simple.
	Mean float64
	// Weights holds the solved kriging weights in neighbor order. For
	// Ordinary kriging the last entry is the Lagrange multiplier.
	Weights []float64
}

type config struct {
	maxNeighbors int
	varianceTol  float64
	anomalyCheck bool
	anomalyTol   float64
}

func defaultConfig() config {
	return config{
		maxNeighbors: DefaultMaxNeighbors,
		varianceTol:  defaultVarianceTolerance,
		anomalyTol:   defaultAnomalyTolerance,
	}
}

// gammaMatrix fills the k×k block of pairwise model semivariances for
// the selected neighbors into dst, whose dimension must be at least k.
// The diagonal holds the semivariance at zero lag, i.e. the nugget.
func gammaMatrix(dst *mat.Dense, theo *variogram.Theoretical, coords *mat.Dense, neighbors []distance.Neighbor) {
	k := len(neighbors)
	for i := 0; i < k; i++ {
		xi := coords.At(neighbors[i].Index, 0)
		yi := coords.At(neighbors[i].Index, 1)
		dst.Set(i, i, theo.Semivariance(0))
		for j := i + 1; j < k; j++ {
			d := distance.Euclidean(xi, yi, coords.At(neighbors[j].Index, 0), coords.At(neighbors[j].Index, 1))
			g := theo.Semivariance(d)
			dst.Set(i, j, g)
			dst.Set(j, i, g)
		}
	}
}

// finishVariance applies the non-negativity contract to a raw kriging
// variance: values within tolerance below zero are clamped to 0 and
// reported as a warning, materially negative values escalate to an
// InvalidModelError.
func finishVariance(op string, raw, tolerance, x, y float64) (float64, error) {
	clamped, ok := errors.ClampNonNegative(raw, tolerance)
	if !ok {
		return 0, errors.NewInvalidModelError(op, "kriging variance is negative beyond tolerance", raw)
	}
	if raw < 0 {
		errors.Warn(errors.NewNegativeVarianceWarning(raw, x, y))
	}
	return clamped, nil
}

// validateFitInput checks the (X, y) shapes shared by both predictors
// and returns immutable copies of the coordinates and values.
func validateFitInput(op string, X, y mat.Matrix) (*mat.Dense, *mat.VecDense, error) {
	n, c := X.Dims()
	ry, cy := y.Dims()

	if n < 2 {
		return nil, nil, errors.NewInsufficientDataError(op, 2, n)
	}
	if c != 2 {
		return nil, nil, errors.NewDimensionError(op, 2, c, 1)
	}
	if ry != n {
		return nil, nil, errors.NewDimensionError(op, n, ry, 0)
	}
	if cy != 1 {
		return nil, nil, errors.NewValueError(op, "y must be a column vector")
	}

	coords := mat.NewDense(n, 2, nil)
	values := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		coords.Set(i, 0, X.At(i, 0))
		coords.Set(i, 1, X.At(i, 1))
		values.SetVec(i, y.At(i, 0))
	}
	return coords, values, nil
}

// validatePredictInput checks the query matrix shape.
func validatePredictInput(op string, X mat.Matrix) (int, error) {
	n, c := X.Dims()
	if c != 2 {
		return 0, errors.NewDimensionError(op, 2, c, 1)
	}
	return n, nil
}

// firstError returns the first non-nil error of a per-row error slice.
func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// neighborValueRange returns the minimum and maximum value among the
// selected neighbors.
func neighborValueRange(values *mat.VecDense, neighbors []distance.Neighbor) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, nb := range neighbors {
		v := values.AtVec(nb.Index)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
