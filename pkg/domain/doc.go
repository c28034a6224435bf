// Package domain contains the pure model of the equation search: digit
// sequences, partitions, the typed expression tree with its checked
// evaluator, equations, search options and lifecycle events.
//
// The package is dependency-free by design. Everything here is either a
// plain value type or a pure function, so the search engine, the stores
// and every front end can share it without pulling in their stacks.
//
// # Expression trees
//
// Candidate expressions are trees of Literal, BinaryOp, UnaryFactorial
// and Root nodes. Eval walks the tree and classifies failures with the
// sentinel errors in errors.go; String renders canonical infix text with
// minimal parentheses. Two candidates are the same candidate exactly
// when their rendered text matches.
package domain
