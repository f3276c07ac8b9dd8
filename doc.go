// Package gokrige provides geostatistical interpolation (kriging) for Go,
// designed for backend services that need spatial estimation without a
// Python runtime.
//
// gokrige offers a scikit-learn-like API: estimators are created, fitted
// on known sample points, and then queried for predictions at unsampled
// locations together with the kriging error variance.
//
// # Features
//
//   - Experimental semivariogram and covariogram estimation
//   - Theoretical semivariogram fitting with automatic model selection
//     (linear, power, spherical, exponential, gaussian, cubic)
//   - Ordinary and Simple point kriging with per-query error variance
//   - CPU-parallel batch prediction across query locations
//   - Robust error handling with structured warnings
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gokrige/kriging"
//	    "github.com/YuminosukeSato/gokrige/variogram"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    coords := mat.NewDense(4, 2, []float64{0, 0, 1, 0, 0, 1, 1, 1})
//	    values := mat.NewVecDense(4, []float64{10, 12, 8, 11})
//
//	    exp, err := variogram.CalculateSemivariance(coords, values, 0.5, 2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    theo, err := variogram.Fit(exp, variogram.AllFamilies())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ok := kriging.NewOrdinary(theo)
//	    if err := ok.Fit(coords, values); err != nil {
//	        log.Fatal(err)
//	    }
//	    pred, err := ok.PredictLocation(0.5, 0.5)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("estimate=%.3f variance=%.3f\n", pred.Value, pred.Variance)
//	}
//
// The known-point set is immutable after Fit, so a single fitted
// estimator may serve concurrent predictions without locking.
package gokrige
