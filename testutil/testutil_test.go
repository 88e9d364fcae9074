/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package testutil

import "fmt"

// recordingT implements require.TestingT and keeps the reported failures instead of stopping the test.
type recordingT struct {
	Failed   bool
	Messages []string
}

func (t *recordingT) Errorf(format string, args ...interface{}) {
	t.Messages = append(t.Messages, fmt.Sprintf(format, args...))
}

func (t *recordingT) FailNow() {
	t.Failed = true
}

func (t *recordingT) Helper() {}
