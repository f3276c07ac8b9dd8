// Package distance provides pairwise Euclidean distance computation and
// nearest-neighbor retrieval over planar coordinates. All functions are
// pure and deterministic.
package distance

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Euclidean returns the planar Euclidean distance between (x1, y1) and
// (x2, y2).
func Euclidean(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Hypot(dx, dy)
}

// PointToPoint computes the pairwise distance matrix between two
// coordinate sets. a is n×2 and b is m×2; the result is n×m with entry
// (i, j) holding the distance between row i of a and row j of b.
func PointToPoint(a, b mat.Matrix) (*mat.Dense, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()

	if ra == 0 {
		return nil, errors.NewInsufficientDataError("distance.PointToPoint", 1, 0)
	}
	if ca != 2 {
		return nil, errors.NewDimensionError("distance.PointToPoint", 2, ca, 1)
	}
	if cb != 2 {
		return nil, errors.NewDimensionError("distance.PointToPoint", 2, cb, 1)
	}

	d := mat.NewDense(ra, rb, nil)
	for i := 0; i < ra; i++ {
		xi := a.At(i, 0)
		yi := a.At(i, 1)
		for j := 0; j < rb; j++ {
			d.Set(i, j, Euclidean(xi, yi, b.At(j, 0), b.At(j, 1)))
		}
	}
	return d, nil
}

// Neighbor is one known point selected for a query location.
type Neighbor struct {
	// Index is the row of the point in the known-point set.
	Index int
	// Distance is the Euclidean distance from the query location.
	Distance float64
}

// Nearest returns the k known points closest to (x, y) by planar
// Euclidean distance, ordered by increasing distance. Ties at equal
// distance keep input order, so results are deterministic. When k
// exceeds the number of known points all points are returned. An empty
// coordinate set yields an InsufficientDataError.
func Nearest(coords mat.Matrix, x, y float64, k int) ([]Neighbor, error) {
	n, c := coords.Dims()
	if n == 0 {
		return nil, errors.NewInsufficientDataError("distance.Nearest", 1, 0)
	}
	if c != 2 {
		return nil, errors.NewDimensionError("distance.Nearest", 2, c, 1)
	}
	if k <= 0 {
		return nil, errors.NewValueError("distance.Nearest", "k must be positive")
	}
	if k > n {
		k = n
	}

	neighbors := make([]Neighbor, n)
	for i := 0; i < n; i++ {
		neighbors[i] = Neighbor{
			Index:    i,
			Distance: Euclidean(x, y, coords.At(i, 0), coords.At(i, 1)),
		}
	}

	// Stable sort keeps first-seen order for equal distances.
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	return neighbors[:k], nil
}
