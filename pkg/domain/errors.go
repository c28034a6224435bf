package domain

import "errors"

// ErrInsufficientDigits is returned when an input yields fewer than MinDigits digits.
// It is the only fatal error class in the search pipeline.
var ErrInsufficientDigits = errors.New("insufficient digits")

// ErrInvalidOptions is returned when SearchOptions fail validation.
var ErrInvalidOptions = errors.New("invalid options")

// ErrDivisionByZero is returned when evaluation divides by zero or takes a zero-degree root.
var ErrDivisionByZero = errors.New("division by zero")

// ErrFactorialDomain is returned when a factorial argument is negative, fractional, or above MaxFactorial.
var ErrFactorialDomain = errors.New("factorial out of domain")

// ErrInvalidResult is returned when evaluation produces NaN or a non-real value.
var ErrInvalidResult = errors.New("invalid result")

// ErrOverflow is returned when evaluation produces an infinite value from finite operands.
var ErrOverflow = errors.New("overflow")

// ErrResultNotFound is returned when a result cache has no entry for a key.
var ErrResultNotFound = errors.New("result not found")
