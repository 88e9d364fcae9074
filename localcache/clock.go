/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import "time"

// Clock is a source of the current time. It may be replaced in tests to control expiration.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
