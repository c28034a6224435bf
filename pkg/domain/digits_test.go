package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractDigits(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  DigitSequence
	}{
		{"plain digits", "123", DigitSequence{1, 2, 3}},
		{"slashed date", "09/05/2005", DigitSequence{0, 9, 0, 5, 2, 0, 0, 5}},
		{"dashed date", "31-12-1999", DigitSequence{3, 1, 1, 2, 1, 9, 9, 9}},
		{"mixed noise", "a1b2c3d", DigitSequence{1, 2, 3}},
		{"dotted", "1.1.11", DigitSequence{1, 1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractDigits(tc.input)
			if err != nil {
				t.Fatalf("ExtractDigits(%q) error: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractDigits(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractDigitsInsufficient(t *testing.T) {
	for _, input := range []string{"", "12", "a1b2", "no digits at all"} {
		_, err := ExtractDigits(input)
		if !errors.Is(err, ErrInsufficientDigits) {
			t.Errorf("ExtractDigits(%q) error = %v, want ErrInsufficientDigits", input, err)
		}
	}
}

func TestDigitSequenceString(t *testing.T) {
	d := DigitSequence{0, 9, 0, 5, 2, 0, 0, 5}
	if got := d.String(); got != "09052005" {
		t.Errorf("String() = %q, want %q", got, "09052005")
	}
}
