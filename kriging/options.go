package kriging

// Option configures a kriging predictor.
type Option func(*config)

// WithMaxNeighbors caps how many nearest known points enter the kriging
// system per query. When the cap exceeds the number of known points,
// all points are used.
func WithMaxNeighbors(k int) Option {
	return func(c *config) {
		if k > 0 {
			c.maxNeighbors = k
		}
	}
}

// WithVarianceTolerance sets how far below zero a kriging variance may
// dip through floating-point noise before it is treated as an invalid
// model rather than clamped.
func WithVarianceTolerance(tol float64) Option {
	return func(c *config) {
		if tol >= 0 {
			c.varianceTol = tol
		}
	}
}

// WithAnomalyCheck enables the Simple kriging sanity check that warns
// when an estimate falls far outside the observed range of neighbor
// values. Ordinary kriging ignores it.
func WithAnomalyCheck(enabled bool) Option {
	return func(c *config) {
		c.anomalyCheck = enabled
	}
}

// WithAnomalyTolerance sets the spread multiple the anomaly check
// allows outside the neighbor value range before warning.
func WithAnomalyTolerance(tol float64) Option {
	return func(c *config) {
		if tol >= 0 {
			c.anomalyTol = tol
		}
	}
}
