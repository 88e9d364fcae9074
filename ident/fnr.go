/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package ident

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidFnr is returned when a string is not a valid fødselsnummer or d-nummer.
var ErrInvalidFnr = errors.New("invalid fødselsnummer or d-nummer")

// The first 6 digits must be a plausible date.
// Day is 01-31, or 41-71 for d-nummer.
// Month is 01-12, or +40 for NAV test persons and +80 for TestNorge test persons.
var fnrRegexp = regexp.MustCompile(`^(?:[04][1-9]|[1256]\d|[37][01])(?:[048][1-9]|[159][012])\d{7}$`)

var (
	fnrWeights1 = []int{3, 7, 6, 1, 8, 9, 4, 5, 2}
	fnrWeights2 = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
)

// Fnr is a Norwegian national identity number (fødselsnummer) or d-nummer.
// The zero value is an empty (unset) number.
type Fnr struct {
	value string
}

// IsValidFnr reports whether s is a valid fødselsnummer or d-nummer.
// See https://lovdata.no/dokument/SF/forskrift/2017-07-14-1201/KAPITTEL_2#%C2%A72-2-1 for the rules.
func IsValidFnr(s string) bool {
	if !fnrRegexp.MatchString(s) {
		return false
	}
	digits := toDigits(s)
	control1 := mod11(digits, fnrWeights1)
	control2 := mod11(digits, fnrWeights2)
	return control1 != 10 && control2 != 10 && control1 == digits[9] && control2 == digits[10]
}

// ParseFnr returns Fnr for the string or an error wrapping ErrInvalidFnr.
func ParseFnr(s string) (Fnr, error) {
	if !IsValidFnr(s) {
		return Fnr{}, fmt.Errorf("%w: %q", ErrInvalidFnr, s)
	}
	return Fnr{value: s}, nil
}

// MustParseFnr is like ParseFnr but panics if the string is not valid.
func MustParseFnr(s string) Fnr {
	fnr, err := ParseFnr(s)
	if err != nil {
		panic(err)
	}
	return fnr
}

// String returns the 11 digits of the number.
func (f Fnr) String() string {
	return f.value
}

// IsZero reports whether the number is unset.
func (f Fnr) IsZero() bool {
	return f.value == ""
}

// MarshalText encodes the number as its 11 digits.
func (f Fnr) MarshalText() ([]byte, error) {
	return []byte(f.value), nil
}

// UnmarshalText decodes and validates the number.
func (f *Fnr) UnmarshalText(text []byte) error {
	fnr, err := ParseFnr(string(text))
	if err != nil {
		return err
	}
	*f = fnr
	return nil
}

// MarshalJSON encodes the number as a JSON string.
func (f Fnr) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

// UnmarshalJSON decodes a JSON string and validates it.
func (f *Fnr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFnr, err)
	}
	return f.UnmarshalText([]byte(s))
}
