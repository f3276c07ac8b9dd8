// Package viz renders semivariogram diagnostics. Plotting is a
// collaborator concern: the core only emits the lag/semivariance
// sequences consumed here.
package viz

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"github.com/YuminosukeSato/gokrige/variogram"
)

// curveSamples is the resolution of the fitted-model curve.
const curveSamples = 100

// SemivariogramPlot builds a plot of the experimental semivariogram
// points with the fitted theoretical curve overlaid. theo may be nil to
// plot only the experimental points.
func SemivariogramPlot(exp *variogram.Experimental, theo *variogram.Theoretical) (*plot.Plot, error) {
	if exp == nil || exp.Len() == 0 {
		return nil, errors.NewValueError("viz.SemivariogramPlot", "empty experimental semivariogram")
	}

	p := plot.New()
	p.Title.Text = "Semivariogram"
	p.X.Label.Text = "lag distance"
	p.Y.Label.Text = "semivariance"

	pts := make(plotter.XYs, exp.Len())
	for i := range exp.Lags {
		pts[i].X = exp.Lags[i]
		pts[i].Y = exp.Semivariances[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "viz.SemivariogramPlot: scatter")
	}
	p.Add(scatter)
	p.Legend.Add("experimental", scatter)

	if theo != nil {
		maxLag := exp.MaxLag()
		curve := make(plotter.XYs, curveSamples+1)
		for i := 0; i <= curveSamples; i++ {
			h := maxLag * float64(i) / curveSamples
			curve[i].X = h
			curve[i].Y = theo.Semivariance(h)
		}
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, errors.Wrap(err, "viz.SemivariogramPlot: line")
		}
		p.Add(line)
		p.Legend.Add(theo.Family.String(), line)
	}

	return p, nil
}

// SaveSemivariogramPNG renders the semivariogram plot to a PNG file.
func SaveSemivariogramPNG(exp *variogram.Experimental, theo *variogram.Theoretical, filename string) error {
	p, err := SemivariogramPlot(exp, theo)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrap(err, "viz.SaveSemivariogramPNG")
	}
	return nil
}
