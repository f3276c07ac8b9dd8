package variogram

import (
	"bytes"
	"math"
	"reflect"
	"testing"

	"github.com/YuminosukeSato/gokrige/core/model"
	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func testExperimental(t *testing.T) *Experimental {
	t.Helper()
	coords := mat.NewDense(6, 2, []float64{
		0, 0,
		1, 0,
		2, 0,
		0, 1,
		1, 1,
		2, 1,
	})
	values := mat.NewVecDense(6, []float64{10, 12, 15, 9, 13, 16})
	exp, err := CalculateSemivariance(coords, values, 0.5, 2.5)
	if err != nil {
		t.Fatalf("Failed to compute semivariogram: %v", err)
	}
	return exp
}

func TestSemivariance_NuggetAtZero(t *testing.T) {
	for _, family := range AllFamilies() {
		theo := &Theoretical{Family: family, Nugget: 0.5, Sill: 2, Range: 10}
		if got := theo.Semivariance(0); got != 0.5 {
			t.Errorf("%s: expected nugget 0.5 at zero lag, got %v", family, got)
		}
	}
}

func TestSemivariance_SillAtRange(t *testing.T) {
	// Spherical, cubic and linear hit the sill exactly at the range;
	// exponential and gaussian follow the effective-range convention
	// and come within ~5%.
	exact := []Family{Spherical, Cubic, Linear}
	for _, family := range exact {
		theo := &Theoretical{Family: family, Nugget: 0.5, Sill: 2, Range: 10}
		if got := theo.Semivariance(10); math.Abs(got-2) > 1e-12 {
			t.Errorf("%s: expected sill 2 at range, got %v", family, got)
		}
	}
	asymptotic := []Family{Exponential, Gaussian}
	for _, family := range asymptotic {
		theo := &Theoretical{Family: family, Nugget: 0.5, Sill: 2, Range: 10}
		got := theo.Semivariance(10)
		if math.Abs(got-2) > 0.06*(2-0.5) {
			t.Errorf("%s: expected ~sill 2 at range, got %v", family, got)
		}
	}
}

func TestSemivariance_Monotonic(t *testing.T) {
	for _, family := range AllFamilies() {
		theo := &Theoretical{Family: family, Nugget: 0.25, Sill: 3, Range: 5}
		prev := theo.Semivariance(0)
		for i := 1; i <= 200; i++ {
			h := float64(i) * 0.05
			got := theo.Semivariance(h)
			if got < prev-1e-12 {
				t.Errorf("%s: semivariance decreases at h=%v (%v < %v)", family, h, got, prev)
				break
			}
			prev = got
		}
	}
}

func TestSemivariance_BoundedFlatBeyondRange(t *testing.T) {
	for _, family := range []Family{Spherical, Cubic} {
		theo := &Theoretical{Family: family, Nugget: 0, Sill: 2, Range: 5}
		if got := theo.Semivariance(50); got != 2 {
			t.Errorf("%s: expected flat sill beyond range, got %v", family, got)
		}
	}
	// Unbounded families keep growing.
	for _, family := range []Family{Linear, Power} {
		theo := &Theoretical{Family: family, Nugget: 0, Sill: 2, Range: 5}
		if theo.Semivariance(50) <= theo.Semivariance(5) {
			t.Errorf("%s: expected growth beyond range", family)
		}
	}
}

func TestFit_SillBoundsEmpirical(t *testing.T) {
	exp := testExperimental(t)
	theo, err := Fit(exp, AllFamilies())
	if err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if theo.Sill < exp.MaxSemivariance() {
		t.Errorf("Fitted sill %v below empirical maximum %v", theo.Sill, exp.MaxSemivariance())
	}
	if theo.Range != exp.MaxLag() {
		t.Errorf("Expected default range %v, got %v", exp.MaxLag(), theo.Range)
	}
	if theo.Nugget != 0 {
		t.Errorf("Expected default nugget 0, got %v", theo.Nugget)
	}
	if math.IsNaN(theo.FitError) || theo.FitError < 0 {
		t.Errorf("Invalid fit error %v", theo.FitError)
	}
}

func TestFit_Idempotent(t *testing.T) {
	exp := testExperimental(t)
	a, err := Fit(exp, AllFamilies(), WithWeighted(true))
	if err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	b, err := Fit(exp, AllFamilies(), WithWeighted(true))
	if err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Fit is not deterministic: %+v vs %+v", a, b)
	}
}

func TestFit_Options(t *testing.T) {
	exp := testExperimental(t)
	theo, err := Fit(exp, []Family{Spherical}, WithNugget(0.25), WithRange(3), WithNumberOfRanges(50))
	if err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if theo.Family != Spherical {
		t.Errorf("Expected spherical family, got %v", theo.Family)
	}
	if theo.Nugget != 0.25 {
		t.Errorf("Expected nugget 0.25, got %v", theo.Nugget)
	}
	if theo.Range != 3 {
		t.Errorf("Expected range 3, got %v", theo.Range)
	}
}

func TestFit_EmptyEmpirical(t *testing.T) {
	_, err := Fit(&Experimental{}, AllFamilies())
	if err == nil {
		t.Fatal("Expected error for empty empirical input")
	}
	var noModelErr *errors.NoFeasibleModelError
	if !errors.As(err, &noModelErr) {
		t.Errorf("Expected NoFeasibleModelError, got %v", err)
	}
}

func TestFit_FlatSemivariance(t *testing.T) {
	exp := &Experimental{
		Lags:          []float64{1, 2},
		Semivariances: []float64{0, 0},
		PairCounts:    []int{3, 2},
		StepSize:      1,
		MaxRange:      2,
	}
	_, err := Fit(exp, AllFamilies())
	var noModelErr *errors.NoFeasibleModelError
	if !errors.As(err, &noModelErr) {
		t.Errorf("Expected NoFeasibleModelError for flat semivariance, got %v", err)
	}
}

func TestFit_WeightedFavorsDenseBins(t *testing.T) {
	exp := testExperimental(t)
	weighted, err := Fit(exp, AllFamilies(), WithWeighted(true))
	if err != nil {
		t.Fatalf("Failed to fit weighted: %v", err)
	}
	if weighted.Sill < exp.MaxSemivariance() {
		t.Errorf("Weighted fit violated the sill bound: %v", weighted.Sill)
	}
}

func TestTheoretical_JSONRoundTrip(t *testing.T) {
	orig := &Theoretical{Family: Gaussian, Nugget: 0.1, Sill: 4.2, Range: 7.5, FitError: 0.03}

	var buf bytes.Buffer
	if err := orig.SaveJSONWriter(&buf); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	loaded, err := LoadJSONReader(&buf)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if !reflect.DeepEqual(orig, loaded) {
		t.Errorf("Round trip mismatch: %+v vs %+v", orig, loaded)
	}
	// Evaluation must be reproducible from the persisted parameters.
	if orig.Semivariance(3.3) != loaded.Semivariance(3.3) {
		t.Error("Evaluation differs after round trip")
	}
}

func TestTheoretical_LoadRejectsInvalid(t *testing.T) {
	buf := bytes.NewBufferString(`{"family":"spherical","nugget":0,"sill":-1,"range":2,"fit_error":0}`)
	if _, err := LoadJSONReader(buf); err == nil {
		t.Error("Expected error for non-positive sill")
	}
}

func TestTheoretical_GobRoundTrip(t *testing.T) {
	orig := &Theoretical{Family: Spherical, Nugget: 0, Sill: 2, Range: 5, FitError: 0.1}

	var buf bytes.Buffer
	if err := model.SaveModelToWriter(orig, &buf); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	var loaded Theoretical
	if err := model.LoadModelFromReader(&loaded, &buf); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if !reflect.DeepEqual(*orig, loaded) {
		t.Errorf("Round trip mismatch: %+v vs %+v", orig, loaded)
	}
}
