package variogram

import (
	"math"

	"github.com/YuminosukeSato/gokrige/pkg/errors"
)

// Family identifies a parametric semivariogram model family. The set of
// families is closed; evaluation dispatches through a registration
// table keyed by the tag.
type Family int

const (
	// Linear grows linearly with lag and is unbounded.
	Linear Family = iota
	// Power grows with the squared relative lag and is unbounded.
	Power
	// Spherical reaches the sill exactly at the range.
	Spherical
	// Exponential approaches the sill asymptotically, reaching ~95%
	// at the range (effective-range convention).
	Exponential
	// Gaussian approaches the sill asymptotically with a parabolic
	// start, reaching ~95% at the range.
	Gaussian
	// Cubic reaches the sill exactly at the range with a smooth start.
	Cubic
)

// modelFunc evaluates a family's semivariance at lag h for the given
// nugget, sill and range. Implementations must return nugget at h=0 and
// be monotonically non-decreasing in h.
type modelFunc func(h, nugget, sill, rng float64) float64

var modelRegistry = map[Family]modelFunc{
	Linear:      linearModel,
	Power:       powerModel,
	Spherical:   sphericalModel,
	Exponential: exponentialModel,
	Gaussian:    gaussianModel,
	Cubic:       cubicModel,
}

// AllFamilies returns every registered model family in a fixed order,
// suitable as the candidate set for Fit.
func AllFamilies() []Family {
	return []Family{Linear, Power, Spherical, Exponential, Gaussian, Cubic}
}

// BoundedFamilies returns the families whose semivariance is flat
// beyond the range.
func BoundedFamilies() []Family {
	return []Family{Spherical, Exponential, Gaussian, Cubic}
}

// String returns the family name.
func (f Family) String() string {
	switch f {
	case Linear:
		return "linear"
	case Power:
		return "power"
	case Spherical:
		return "spherical"
	case Exponential:
		return "exponential"
	case Gaussian:
		return "gaussian"
	case Cubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so family tags persist
// as readable names.
func (f Family) MarshalText() ([]byte, error) {
	if _, ok := modelRegistry[f]; !ok {
		return nil, errors.Newf("variogram: unknown model family %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	switch string(text) {
	case "linear":
		*f = Linear
	case "power":
		*f = Power
	case "spherical":
		*f = Spherical
	case "exponential":
		*f = Exponential
	case "gaussian":
		*f = Gaussian
	case "cubic":
		*f = Cubic
	default:
		return errors.Newf("variogram: unknown model family %q", string(text))
	}
	return nil
}

func linearModel(h, nugget, sill, rng float64) float64 {
	if h == 0 {
		return nugget
	}
	return nugget + (sill-nugget)*(h/rng)
}

func powerModel(h, nugget, sill, rng float64) float64 {
	if h == 0 {
		return nugget
	}
	x := h / rng
	return nugget + (sill-nugget)*x*x
}

func sphericalModel(h, nugget, sill, rng float64) float64 {
	if h == 0 {
		return nugget
	}
	if h >= rng {
		return sill
	}
	x := h / rng
	return nugget + (sill-nugget)*(1.5*x-0.5*x*x*x)
}

func exponentialModel(h, nugget, sill, rng float64) float64 {
	if h == 0 {
		return nugget
	}
	return nugget + (sill-nugget)*(1-math.Exp(-3*h/rng))
}

func gaussianModel(h, nugget, sill, rng float64) float64 {
	if h == 0 {
		return nugget
	}
	x := h / rng
	return nugget + (sill-nugget)*(1-math.Exp(-3*x*x))
}

func cubicModel(h, nugget, sill, rng float64) float64 {
	if h == 0 {
		return nugget
	}
	if h >= rng {
		return sill
	}
	x := h / rng
	x2 := x * x
	poly := 7*x2 - 8.75*x2*x + 3.5*x2*x2*x - 0.75*x2*x2*x2*x
	return nugget + (sill-nugget)*poly
}
