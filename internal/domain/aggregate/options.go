package aggregate

const maxPrecision = 12

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithPrecision rounds zone percentages to digits decimals before the
// differential is taken. Negative values disable rounding.
func WithPrecision(digits int) Option {
	return func(a *Aggregator) {
		if digits <= maxPrecision {
			a.precision = digits
		}
	}
}

// WithLocationFallback classifies shots whose tags are all unrecognized from
// their court coordinates instead of sending them to Backcourt.
func WithLocationFallback(enabled bool) Option {
	return func(a *Aggregator) {
		a.locationFallback = enabled
	}
}
