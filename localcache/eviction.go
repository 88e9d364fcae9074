/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import (
	"context"
	"sort"
	"time"

	"github.com/acronis/go-localcache/log"
)

// evictionResult reports how many entries were removed by each pass.
type evictionResult struct {
	expired int
	evicted int
}

// evictor frees room for exactly one more entry when the store is full.
type evictor[V any] struct {
	maxEntries int
	logger     log.FieldLogger
}

// makeRoom runs before every single-key insert.
// Expired entries are removed first (all of them, not only as many as needed).
// If the store is still full, live entries expiring soonest are evicted
// and a warning is logged with the log fields scoped to ctx.
func (ev *evictor[V]) makeRoom(ctx context.Context, store *entryStore[V], now time.Time) evictionResult {
	var res evictionResult
	if store.size() < ev.maxEntries {
		return res
	}

	for _, ke := range store.all() {
		if ke.entry.isExpired(now) {
			store.rawRemove(ke.key)
			res.expired++
		}
	}

	excess := 1 + store.size() - ev.maxEntries
	if excess <= 0 {
		return res
	}

	live := store.all()
	sort.SliceStable(live, func(i, j int) bool {
		a, b := live[i].entry, live[j].entry
		if !a.expiresAt.Equal(b.expiresAt) {
			return a.expiresAt.Before(b.expiresAt)
		}
		return a.seq < b.seq
	})
	if excess > len(live) {
		excess = len(live)
	}
	for _, ke := range live[:excess] {
		store.rawRemove(ke.key)
	}
	res.evicted = excess

	log.FromContext(ctx, ev.logger).Warn("live cache entries were evicted before expiration, maxEntries may be too small",
		log.Int("evicted", excess),
		log.Int("max_entries", ev.maxEntries),
		log.Duration("entry_duration", store.entryDuration),
	)
	return res
}
