package dataset

import (
	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ArealUnit is one area unit delivered by an areal ingestion
// collaborator: an identifier, the centroid coordinates and the
// aggregated value of the unit.
type ArealUnit struct {
	ID    string
	X     float64
	Y     float64
	Value float64
}

// ArealCentroids flattens areal units into the point shape the core
// consumes, with each unit's centroid as its location. Unit order is
// preserved.
func ArealCentroids(units []ArealUnit) (*mat.Dense, *mat.VecDense, error) {
	if len(units) == 0 {
		return nil, nil, errors.NewInsufficientDataError("dataset.ArealCentroids", 1, 0)
	}
	coords := mat.NewDense(len(units), 2, nil)
	values := mat.NewVecDense(len(units), nil)
	for i, u := range units {
		coords.Set(i, 0, u.X)
		coords.Set(i, 1, u.Y)
		values.SetVec(i, u.Value)
	}
	return coords, values, nil
}
