package domain

import (
	"fmt"
	"strings"
)

// DigitSequence is the ordered list of decimal digits extracted from an input.
type DigitSequence []int

// ExtractDigits scans input left to right and keeps every decimal digit,
// ignoring separators and any other characters. Inputs yielding fewer than
// MinDigits digits fail with ErrInsufficientDigits.
func ExtractDigits(input string) (DigitSequence, error) {
	digits := make(DigitSequence, 0, len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) < MinDigits {
		return nil, fmt.Errorf("%w: %q yields %d digit(s), need at least %d",
			ErrInsufficientDigits, input, len(digits), MinDigits)
	}
	return digits, nil
}

// String returns the digits concatenated, e.g. [0 9 0 5] -> "0905".
func (d DigitSequence) String() string {
	var b strings.Builder
	b.Grow(len(d))
	for _, digit := range d {
		b.WriteByte(byte('0' + digit))
	}
	return b.String()
}
