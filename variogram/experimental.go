// Package variogram provides experimental semivariogram estimation and
// theoretical semivariogram model fitting. The experimental estimator
// bins point pairs by separation distance (lag) and computes the
// classical Matheron semivariance per lag; the theoretical model fits a
// parametric curve to that sequence and is consumed by the kriging
// predictors as the covariance proxy.
package variogram

import (
	"math"

	"github.com/YuminosukeSato/gokrige/distance"
	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Experimental is an experimental (empirical) semivariogram: one entry
// per non-empty lag bin, ordered by increasing lag. The reported lag is
// the upper edge of its bin; bins are contiguous intervals
// (lower, upper] of width StepSize covering (0, MaxRange].
type Experimental struct {
	// Lags holds the bin upper edges, strictly increasing.
	Lags []float64
	// Semivariances holds the semivariance per lag bin.
	Semivariances []float64
	// PairCounts holds the number of point pairs per lag bin.
	PairCounts []int

	// StepSize is the bin width the sequence was computed with.
	StepSize float64
	// MaxRange is the distance cutoff the sequence was computed with.
	MaxRange float64
}

// Len returns the number of non-empty lag bins.
func (e *Experimental) Len() int {
	return len(e.Lags)
}

// MaxLag returns the largest lag in the sequence, or 0 when empty.
func (e *Experimental) MaxLag() float64 {
	if len(e.Lags) == 0 {
		return 0
	}
	return e.Lags[len(e.Lags)-1]
}

// MaxSemivariance returns the largest semivariance in the sequence, or
// 0 when empty.
func (e *Experimental) MaxSemivariance() float64 {
	maxGamma := 0.0
	for _, g := range e.Semivariances {
		if g > maxGamma {
			maxGamma = g
		}
	}
	return maxGamma
}

// CalculateSemivariance computes the experimental semivariogram of a
// point set. coords is n×2 with columns (x, y); values holds the n
// scalar measurements. Every unordered pair of distinct points within
// maxRange contributes its squared value difference to the bin its
// separation distance falls in; the semivariance of a bin is the sum of
// squared differences over twice the pair count. Bins without pairs are
// omitted. Pairs at identical locations (zero distance) fall in no bin
// and are skipped.
//
// The computation is deterministic and independent of pair enumeration
// order. Cost is quadratic in the number of points.
func CalculateSemivariance(coords mat.Matrix, values mat.Vector, stepSize, maxRange float64) (*Experimental, error) {
	n, c := coords.Dims()
	if n < 2 {
		return nil, errors.NewInsufficientDataError("variogram.CalculateSemivariance", 2, n)
	}
	if c != 2 {
		return nil, errors.NewDimensionError("variogram.CalculateSemivariance", 2, c, 1)
	}
	if values.Len() != n {
		return nil, errors.NewDimensionError("variogram.CalculateSemivariance", n, values.Len(), 0)
	}
	if stepSize <= 0 {
		return nil, errors.NewValueError("variogram.CalculateSemivariance", "step size must be positive")
	}
	if maxRange <= 0 {
		return nil, errors.NewValueError("variogram.CalculateSemivariance", "max range must be positive")
	}

	numBins := int(math.Ceil(maxRange / stepSize))
	sqDiffSums := make([]float64, numBins)
	pairCounts := make([]int, numBins)

	for i := 0; i < n; i++ {
		xi := coords.At(i, 0)
		yi := coords.At(i, 1)
		vi := values.AtVec(i)
		for j := i + 1; j < n; j++ {
			d := distance.Euclidean(xi, yi, coords.At(j, 0), coords.At(j, 1))
			if d <= 0 || d > maxRange {
				continue
			}
			bin := binIndex(d, stepSize, numBins)
			diff := vi - values.AtVec(j)
			sqDiffSums[bin] += diff * diff
			pairCounts[bin]++
		}
	}

	exp := &Experimental{
		StepSize: stepSize,
		MaxRange: maxRange,
	}
	for b := 0; b < numBins; b++ {
		if pairCounts[b] == 0 {
			continue
		}
		exp.Lags = append(exp.Lags, float64(b+1)*stepSize)
		exp.Semivariances = append(exp.Semivariances, sqDiffSums[b]/(2*float64(pairCounts[b])))
		exp.PairCounts = append(exp.PairCounts, pairCounts[b])
	}
	return exp, nil
}

// Covariogram is an experimental covariogram: the spatial covariance
// per lag bin, with the same binning as Experimental.
type Covariogram struct {
	Lags        []float64
	Covariances []float64
	PairCounts  []int
}

// CalculateCovariance computes the experimental covariogram of a point
// set: for each lag bin, the mean product of paired values minus the
// squared global mean. Binning follows CalculateSemivariance.
func CalculateCovariance(coords mat.Matrix, values mat.Vector, stepSize, maxRange float64) (*Covariogram, error) {
	n, c := coords.Dims()
	if n < 2 {
		return nil, errors.NewInsufficientDataError("variogram.CalculateCovariance", 2, n)
	}
	if c != 2 {
		return nil, errors.NewDimensionError("variogram.CalculateCovariance", 2, c, 1)
	}
	if values.Len() != n {
		return nil, errors.NewDimensionError("variogram.CalculateCovariance", n, values.Len(), 0)
	}
	if stepSize <= 0 {
		return nil, errors.NewValueError("variogram.CalculateCovariance", "step size must be positive")
	}
	if maxRange <= 0 {
		return nil, errors.NewValueError("variogram.CalculateCovariance", "max range must be positive")
	}

	var mean float64
	for i := 0; i < n; i++ {
		mean += values.AtVec(i)
	}
	mean /= float64(n)

	numBins := int(math.Ceil(maxRange / stepSize))
	productSums := make([]float64, numBins)
	pairCounts := make([]int, numBins)

	for i := 0; i < n; i++ {
		xi := coords.At(i, 0)
		yi := coords.At(i, 1)
		vi := values.AtVec(i)
		for j := i + 1; j < n; j++ {
			d := distance.Euclidean(xi, yi, coords.At(j, 0), coords.At(j, 1))
			if d <= 0 || d > maxRange {
				continue
			}
			bin := binIndex(d, stepSize, numBins)
			productSums[bin] += vi * values.AtVec(j)
			pairCounts[bin]++
		}
	}

	cov := &Covariogram{}
	for b := 0; b < numBins; b++ {
		if pairCounts[b] == 0 {
			continue
		}
		cov.Lags = append(cov.Lags, float64(b+1)*stepSize)
		cov.Covariances = append(cov.Covariances, productSums[b]/float64(pairCounts[b])-mean*mean)
		cov.PairCounts = append(cov.PairCounts, pairCounts[b])
	}
	return cov, nil
}

// binIndex maps a positive distance to its (lower, upper] bin. The
// upper edge belongs to the bin below it; distances at exactly maxRange
// land in the last bin.
func binIndex(d, stepSize float64, numBins int) int {
	bin := int(math.Ceil(d/stepSize)) - 1
	if bin < 0 {
		bin = 0
	}
	if bin >= numBins {
		bin = numBins - 1
	}
	return bin
}
