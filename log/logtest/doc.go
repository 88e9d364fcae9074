/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package logtest provides a log.FieldLogger that keeps every entry in memory, for assertions in tests.
package logtest
