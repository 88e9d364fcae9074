/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeyErr(t *testing.T) {
	errTooSmall := errors.New("should be > 0")

	err := WrapKeyErr("cache.maxEntries", errTooSmall)
	require.EqualError(t, err, "cache.maxEntries: should be > 0")
	require.ErrorIs(t, err, errTooSmall)

	require.Same(t, err, WrapKeyErr("cache.maxEntries", err), "error must not be wrapped twice with the same key")
	require.EqualError(t, WrapKeyErr("cache", err), "cache: cache.maxEntries: should be > 0")

	require.NoError(t, WrapKeyErrIfNeeded("cache.maxEntries", nil))
}
