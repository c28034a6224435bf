package domain

import (
	"fmt"
	"runtime"
)

// OperatorSet names a predefined operator palette.
type OperatorSet string

const (
	// OperatorsBasic is + - * /.
	OperatorsBasic OperatorSet = "basic"
	// OperatorsExtended adds ^ (power) and root (b-th root).
	OperatorsExtended OperatorSet = "extended"
)

// Operators returns the palette as a fresh slice in canonical order.
func (s OperatorSet) Operators() []Operator {
	switch s {
	case OperatorsExtended:
		return []Operator{OpAdd, OpSub, OpMul, OpDiv, OpPow, OpRoot}
	default:
		return []Operator{OpAdd, OpSub, OpMul, OpDiv}
	}
}

// Valid reports whether s is a known operator set.
func (s OperatorSet) Valid() bool {
	return s == OperatorsBasic || s == OperatorsExtended
}

// ParseOperatorSet maps a user-supplied name to an OperatorSet.
func ParseOperatorSet(name string) (OperatorSet, error) {
	set := OperatorSet(name)
	if !set.Valid() {
		return "", fmt.Errorf("unknown operator set %q (want %q or %q)",
			name, OperatorsBasic, OperatorsExtended)
	}
	return set, nil
}

// SearchOptions configures one equation search.
type SearchOptions struct {
	// Operators selects the operator palette. Default: OperatorsBasic.
	Operators OperatorSet `json:"operators"`
	// Factorial enables fact() token variants for single-digit groups.
	Factorial bool `json:"factorial"`
	// MaxGroups bounds the recursive partition enumeration (2..MaxGroupLimit).
	// Default: DefaultMaxGroups. The all-single-digit partition is always
	// searched even when it exceeds this bound.
	MaxGroups int `json:"max_groups"`
	// Tolerance is the inclusive value-matching tolerance. Zero selects
	// DefaultTolerance.
	Tolerance float64 `json:"tolerance"`
	// Workers bounds the partition fan-out. Default: runtime.NumCPU().
	// Workers does not affect results, only wall-clock time.
	Workers int `json:"workers,omitempty"`
}

// DefaultSearchOptions returns the options used when none are configured.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Operators: OperatorsBasic,
		Factorial: false,
		MaxGroups: DefaultMaxGroups,
		Tolerance: DefaultTolerance,
		Workers:   runtime.NumCPU(),
	}
}

// Normalized fills zero values with defaults without mutating o.
func (o SearchOptions) Normalized() SearchOptions {
	if o.Operators == "" {
		o.Operators = OperatorsBasic
	}
	if o.MaxGroups == 0 {
		o.MaxGroups = DefaultMaxGroups
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Validate checks o after normalization. Failures wrap ErrInvalidOptions.
func (o SearchOptions) Validate() error {
	if !o.Operators.Valid() {
		return fmt.Errorf("%w: unknown operator set %q", ErrInvalidOptions, o.Operators)
	}
	if o.MaxGroups < 2 || o.MaxGroups > MaxGroupLimit {
		return fmt.Errorf("%w: max groups %d outside 2..%d", ErrInvalidOptions, o.MaxGroups, MaxGroupLimit)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %g", ErrInvalidOptions, o.Tolerance)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: workers %d below 1", ErrInvalidOptions, o.Workers)
	}
	return nil
}

// CacheKey fingerprints the digits and the options that shape the result
// set. Workers is deliberately excluded: it never changes the result.
func (o SearchOptions) CacheKey(digits DigitSequence) string {
	return fmt.Sprintf("%s|%s|fact=%t|groups=%d|tol=%g",
		digits, o.Operators, o.Factorial, o.MaxGroups, o.Tolerance)
}
