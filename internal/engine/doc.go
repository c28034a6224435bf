// Package engine implements the equation search pipeline: partition
// enumeration, token variants, expression generation under four grouping
// strategies, checked evaluation and tolerance matching, with a bounded
// per-partition fan-out that merges deterministically.
package engine
