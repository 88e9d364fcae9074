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

// ErrInvalidOrgnr is returned when a string is not a valid organisation number.
var ErrInvalidOrgnr = errors.New("invalid organisation number")

var orgnrRegexp = regexp.MustCompile(`^\d{9}$`)

var orgnrWeights = []int{3, 2, 7, 6, 5, 4, 3, 2}

// Orgnr is a Norwegian organisation number from the Central Coordinating Register for Legal Entities.
// The zero value is an empty (unset) number.
type Orgnr struct {
	value string
}

// IsValidOrgnr reports whether s is a valid organisation number.
// See https://www.brreg.no/om-oss/registrene-vare/om-enhetsregisteret/organisasjonsnummeret/ for the rules.
func IsValidOrgnr(s string) bool {
	if !orgnrRegexp.MatchString(s) {
		return false
	}
	digits := toDigits(s)
	control := mod11(digits, orgnrWeights)
	return control != 10 && control == digits[8]
}

// ParseOrgnr returns Orgnr for the string or an error wrapping ErrInvalidOrgnr.
func ParseOrgnr(s string) (Orgnr, error) {
	if !IsValidOrgnr(s) {
		return Orgnr{}, fmt.Errorf("%w: %q", ErrInvalidOrgnr, s)
	}
	return Orgnr{value: s}, nil
}

// MustParseOrgnr is like ParseOrgnr but panics if the string is not valid.
func MustParseOrgnr(s string) Orgnr {
	orgnr, err := ParseOrgnr(s)
	if err != nil {
		panic(err)
	}
	return orgnr
}

func (o Orgnr) String() string {
	return o.value
}

// IsZero reports whether the number is unset.
func (o Orgnr) IsZero() bool {
	return o.value == ""
}

func (o Orgnr) MarshalText() ([]byte, error) {
	return []byte(o.value), nil
}

func (o *Orgnr) UnmarshalText(text []byte) error {
	orgnr, err := ParseOrgnr(string(text))
	if err != nil {
		return err
	}
	*o = orgnr
	return nil
}

func (o Orgnr) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.value)
}

func (o *Orgnr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrgnr, err)
	}
	return o.UnmarshalText([]byte(s))
}
