/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import "time"

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
	seq       uint64 // write order, used as a tie-break when entries expire at the same moment
}

func (e *cacheEntry[V]) isExpired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// entryStore owns the key to entry mapping. It is not safe for concurrent use,
// LocalCache serializes access to it.
type entryStore[V any] struct {
	entryDuration time.Duration
	entries       map[string]*cacheEntry[V]
	nextSeq       uint64
}

func newEntryStore[V any](entryDuration time.Duration) *entryStore[V] {
	return &entryStore[V]{
		entryDuration: entryDuration,
		entries:       make(map[string]*cacheEntry[V]),
	}
}

// lookup returns the value only if the entry exists and expires strictly after now.
// Expired entries are left in place.
func (s *entryStore[V]) lookup(key string, now time.Time) (value V, ok bool) {
	entry, found := s.entries[key]
	if !found || entry.isExpired(now) {
		return value, false
	}
	return entry.value, true
}

func (s *entryStore[V]) rawInsert(key string, value V, now time.Time) {
	s.nextSeq++
	s.entries[key] = &cacheEntry[V]{value: value, expiresAt: now.Add(s.entryDuration), seq: s.nextSeq}
}

func (s *entryStore[V]) rawRemove(key string) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *entryStore[V]) size() int {
	return len(s.entries)
}

type keyedEntry[V any] struct {
	key   string
	entry *cacheEntry[V]
}

func (s *entryStore[V]) all() []keyedEntry[V] {
	res := make([]keyedEntry[V], 0, len(s.entries))
	for key, entry := range s.entries {
		res = append(res, keyedEntry[V]{key: key, entry: entry})
	}
	return res
}

func (s *entryStore[V]) clear() {
	s.entries = make(map[string]*cacheEntry[V])
}
