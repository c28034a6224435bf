package domain

// Hard limits of the search engine. These bound the combinatorial space
// and keep evaluation within float64 range.
const (
	// MinDigits is the minimum number of digits an input must yield.
	MinDigits = 3

	// MaxGroupDigits is the maximum number of consecutive digits per group.
	MaxGroupDigits = 4

	// MaxGroupValue is the maximum numeric value of a single group.
	MaxGroupValue = 9999

	// MaxGroupLimit is the hard ceiling for SearchOptions.MaxGroups.
	MaxGroupLimit = 6

	// DefaultMaxGroups is the group bound used when none is configured.
	DefaultMaxGroups = 5

	// MaxFactorial is the largest argument fact() accepts.
	MaxFactorial = 12

	// DefaultTolerance is the value-matching tolerance for equations.
	DefaultTolerance = 1e-10
)
