/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package ident

// mod11 calculates a modulus 11 control value for the digits.
// Extra digits (beyond len(weights)) are ignored.
// The result is in [0, 10], where 10 means that no valid control digit exists.
func mod11(digits []int, weights []int) int {
	sum := 0
	for i := 0; i < len(weights) && i < len(digits); i++ {
		sum += digits[i] * weights[i]
	}
	return (11 - sum%11) % 11
}

func toDigits(s string) []int {
	digits := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		digits[i] = int(s[i] - '0')
	}
	return digits
}
