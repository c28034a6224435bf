package domain

import (
	"fmt"
	"sort"
	"time"
)

// Equation pairs two expression texts whose values match within the
// search tolerance. Value records the left side's value.
type Equation struct {
	Left  string  `json:"left"`
	Right string  `json:"right"`
	Value float64 `json:"value"`
}

// String renders the identity, e.g. "0 * 9 + 0 + 5 = 2 * 0 + 0 + 5".
func (e Equation) String() string {
	return e.Left + " = " + e.Right
}

// EvalFailures tallies silently discarded candidates per failure class.
type EvalFailures struct {
	DivisionByZero  int `json:"division_by_zero"`
	FactorialDomain int `json:"factorial_domain"`
	InvalidResult   int `json:"invalid_result"`
	Overflow        int `json:"overflow"`
}

// Total returns the number of discarded candidates.
func (f EvalFailures) Total() int {
	return f.DivisionByZero + f.FactorialDomain + f.InvalidResult + f.Overflow
}

// Add accumulates other into f.
func (f *EvalFailures) Add(other EvalFailures) {
	f.DivisionByZero += other.DivisionByZero
	f.FactorialDomain += other.FactorialDomain
	f.InvalidResult += other.InvalidResult
	f.Overflow += other.Overflow
}

// SearchStats describes the work one search performed.
type SearchStats struct {
	Partitions  int           `json:"partitions"`
	Expressions int           `json:"expressions"`
	Evaluations int           `json:"evaluations"`
	Discarded   EvalFailures  `json:"discarded"`
	Matches     int           `json:"matches"`
	Duration    time.Duration `json:"duration_ns"`
}

// Result is the outcome of one search.
type Result struct {
	Input     string        `json:"input"`
	Digits    DigitSequence `json:"digits"`
	Equations []Equation    `json:"equations"`
	Stats     SearchStats   `json:"stats"`
}

// DedupeEquations removes duplicate (left, right) pairs, keeping the
// first value seen. The input order is preserved.
func DedupeEquations(eqs []Equation) []Equation {
	type key struct{ left, right string }
	seen := make(map[key]struct{}, len(eqs))
	out := make([]Equation, 0, len(eqs))
	for _, eq := range eqs {
		k := key{eq.Left, eq.Right}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, eq)
	}
	return out
}

// SortPolicy names a presentation ordering for equations. The engine
// itself emits a deterministic insertion order; sorting is a caller
// concern.
type SortPolicy string

const (
	// SortNone keeps the engine's insertion order.
	SortNone SortPolicy = "none"
	// SortValueAsc orders by shared value, smallest first.
	SortValueAsc SortPolicy = "value"
	// SortValueDesc orders by shared value, largest first.
	SortValueDesc SortPolicy = "value-desc"
	// SortLengthAsc orders by combined text length, shortest first.
	SortLengthAsc SortPolicy = "length"
	// SortLengthDesc orders by combined text length, longest first.
	SortLengthDesc SortPolicy = "length-desc"
	// SortAlphabetic orders by left text, then right text.
	SortAlphabetic SortPolicy = "alpha"
)

// Valid reports whether p is a known sort policy.
func (p SortPolicy) Valid() bool {
	switch p {
	case SortNone, SortValueAsc, SortValueDesc, SortLengthAsc, SortLengthDesc, SortAlphabetic:
		return true
	}
	return false
}

// ParseSortPolicy maps a user-supplied name to a SortPolicy.
func ParseSortPolicy(name string) (SortPolicy, error) {
	p := SortPolicy(name)
	if !p.Valid() {
		return "", fmt.Errorf("unknown sort policy %q", name)
	}
	return p, nil
}

// SortEquations orders eqs in place by policy. Sorting is stable and
// ties always break by (left, right) text, so any policy yields one
// deterministic order.
func SortEquations(eqs []Equation, policy SortPolicy) {
	var less func(a, b Equation) bool
	switch policy {
	case SortValueAsc:
		less = func(a, b Equation) bool { return a.Value < b.Value }
	case SortValueDesc:
		less = func(a, b Equation) bool { return a.Value > b.Value }
	case SortLengthAsc:
		less = func(a, b Equation) bool { return len(a.Left)+len(a.Right) < len(b.Left)+len(b.Right) }
	case SortLengthDesc:
		less = func(a, b Equation) bool { return len(a.Left)+len(a.Right) > len(b.Left)+len(b.Right) }
	case SortAlphabetic:
		less = func(a, b Equation) bool { return false }
	default:
		return
	}
	sort.SliceStable(eqs, func(i, j int) bool {
		a, b := eqs[i], eqs[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return a.Right < b.Right
	})
}
