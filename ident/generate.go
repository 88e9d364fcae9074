/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package ident

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// TestPerson selects which synthetic-person range a generated Fnr belongs to.
type TestPerson int

// Test person ranges.
const (
	TestPersonNone TestPerson = iota
	TestPersonNAV
	TestPersonTestNorge
)

// FnrGenOpts represents options for GenerateFnr.
type FnrGenOpts struct {
	// DNumber makes a d-nummer (first digit of the day increased by 4).
	DNumber bool

	// TestPerson shifts the month into the NAV (+40) or TestNorge (+80) range.
	TestPerson TestPerson
}

// GenerateFnr returns a random valid Fnr with a birth date between 1900 and 2023.
// It is intended for tests and test data.
func GenerateFnr(rnd *rand.Rand, opts FnrGenOpts) Fnr {
	for {
		birthDate := time.Date(1900+rnd.Intn(124), time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rnd.Intn(365))
		digits := toDigits(birthDate.Format("020106"))
		if opts.DNumber {
			digits[0] += 4
		}
		switch opts.TestPerson {
		case TestPersonNAV:
			digits[2] += 4
		case TestPersonTestNorge:
			digits[2] += 8
		}
		for i := 0; i < 3; i++ {
			digits = append(digits, rnd.Intn(10))
		}

		control1 := mod11(digits, fnrWeights1)
		if control1 == 10 {
			continue
		}
		digits = append(digits, control1)
		control2 := mod11(digits, fnrWeights2)
		if control2 == 10 {
			continue
		}
		digits = append(digits, control2)
		return Fnr{value: joinDigits(digits)}
	}
}

// GenerateOrgnr returns a random valid Orgnr. It is intended for tests and test data.
func GenerateOrgnr(rnd *rand.Rand) Orgnr {
	for {
		digits := make([]int, 0, 9)
		for i := 0; i < 8; i++ {
			digits = append(digits, rnd.Intn(10))
		}
		control := mod11(digits, orgnrWeights)
		if control == 10 {
			continue
		}
		return Orgnr{value: joinDigits(append(digits, control))}
	}
}

func joinDigits(digits []int) string {
	var sb strings.Builder
	sb.Grow(len(digits))
	for _, d := range digits {
		sb.WriteString(strconv.Itoa(d))
	}
	return sb.String()
}
