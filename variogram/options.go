package variogram

// FitOption configures the fitting search.
type FitOption func(*fitConfig)

type fitConfig struct {
	weighted       bool
	numberOfRanges int
	nugget         float64
	rng            float64
	rangeSet       bool
}

// WithWeighted scales each lag's fit residual by its pair count, so
// bins backed by more pairs carry more weight. Sparse bins are noisier
// estimates.
func WithWeighted(weighted bool) FitOption {
	return func(c *fitConfig) {
		c.weighted = weighted
	}
}

// WithNumberOfRanges sets how many sill candidates the grid search
// subdivides the feasible sill interval into.
func WithNumberOfRanges(n int) FitOption {
	return func(c *fitConfig) {
		if n > 0 {
			c.numberOfRanges = n
		}
	}
}

// WithNugget overrides the nugget used by every candidate model. The
// default is 0.
func WithNugget(nugget float64) FitOption {
	return func(c *fitConfig) {
		if nugget >= 0 {
			c.nugget = nugget
		}
	}
}

// WithRange overrides the range used by every candidate model. The
// default is the maximum lag of the empirical sequence.
func WithRange(rng float64) FitOption {
	return func(c *fitConfig) {
		if rng > 0 {
			c.rng = rng
			c.rangeSet = true
		}
	}
}
