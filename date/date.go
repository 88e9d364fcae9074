/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package date contains helpers for Norwegian date formatting and Europe/Oslo local time.
package date

import (
	"fmt"
	"time"
	_ "time/tzdata" // Europe/Oslo must be resolvable on hosts without a zoneinfo database.
)

// NorwegianLayout is the dd.MM.yyyy layout used in Norwegian texts.
const NorwegianLayout = "02.01.2006"

var oslo = mustLoadLocation("Europe/Oslo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Errorf("load location %q: %w", name, err))
	}
	return loc
}

// Oslo returns the Europe/Oslo location.
func Oslo() *time.Location {
	return oslo
}

// FormatNorwegian formats the date part of t as dd.MM.yyyy.
func FormatNorwegian(t time.Time) string {
	return t.Format(NorwegianLayout)
}

// ParseNorwegian parses a dd.MM.yyyy date. The result is midnight UTC of that day.
func ParseNorwegian(s string) (time.Time, error) {
	return time.Parse(NorwegianLayout, s)
}

// ToOsloOffset interprets the wall clock of t (its location is ignored) as Europe/Oslo local time
// and returns the time with the Oslo offset (+01:00 in winter, +02:00 in summer).
func ToOsloOffset(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), oslo)
}
