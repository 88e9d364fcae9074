/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package testutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stretchr/testify/require"
)

// RequireNoErrorsInChannel drains the buffered channel and asserts that it contains no non-nil errors.
// The channel is read until it is empty (or closed), so it may be filled by several goroutines.
func RequireNoErrorsInChannel(t require.TestingT, c <-chan error, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	var errs []string
	for {
		select {
		case err, ok := <-c:
			if !ok {
				requireNoErrorTexts(t, errs, msgAndArgs...)
				return
			}
			if err != nil {
				errs = append(errs, fmt.Sprintf("%q", err.Error()))
			}
		default:
			requireNoErrorTexts(t, errs, msgAndArgs...)
			return
		}
	}
}

func requireNoErrorTexts(t require.TestingT, errs []string, msgAndArgs ...interface{}) {
	if len(errs) == 0 {
		return
	}
	require.FailNow(t, fmt.Sprintf("Channel should contain no errors, but has %d:\n\t%s",
		len(errs), strings.Join(errs, "\n\t")), msgAndArgs...)
}

// RequireErrorIsAny asserts that at least one of the errors in err's chain matches at least one target.
// This is a wrapper for errors.Is.
func RequireErrorIsAny(t require.TestingT, err error, targets []error, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	for _, targetErr := range targets {
		if errors.Is(err, targetErr) {
			return
		}
	}
	expectedErrTexts := make([]string, 0, len(targets))
	for _, targetErr := range targets {
		expectedErrTexts = append(expectedErrTexts, fmt.Sprintf("%q", targetErr.Error()))
	}
	require.FailNow(t, fmt.Sprintf("At least one target error should be in err chain:\n"+
		"expected: [%s]\n"+
		"in chain: %s", strings.Join(expectedErrTexts, "; "), buildErrorChainString(err),
	), msgAndArgs...)
}

func buildErrorChainString(err error) string {
	if err == nil {
		return ""
	}
	chain := fmt.Sprintf("%q", err.Error())
	for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
		chain += fmt.Sprintf("\n\t%q", e.Error())
	}
	return chain
}
