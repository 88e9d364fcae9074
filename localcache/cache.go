/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/acronis/go-localcache/log"
)

// ErrInvalidMaxEntries is returned by constructors when the maximum number of entries is not positive.
var ErrInvalidMaxEntries = errors.New("maxEntries must be greater than 0")

// ComputeFunc produces a value for a key missing from the cache.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// ComputeOrNullFunc produces a value for a key missing from the cache.
// If ok is false, there is no value and nothing is cached.
type ComputeOrNullFunc[V any] func(ctx context.Context) (value V, ok bool, err error)

// BatchComputeFunc produces values for the keys missing from the cache.
// The returned map may contain only some of the missing keys, or keys that were not asked for.
type BatchComputeFunc[V any] func(ctx context.Context, missingKeys map[string]struct{}) (map[string]V, error)

// Options represents options for the cache.
type Options struct {
	// EntryDuration is the time-to-live of every entry, counted from the moment it is written.
	// Reading an entry does not extend it.
	EntryDuration time.Duration

	// MaxEntries is the maximum number of entries kept in the cache. Must be greater than 0.
	MaxEntries int

	// Logger receives a warning each time live entries are evicted to free room.
	// If nil, logging is disabled.
	Logger log.FieldLogger

	// MetricsCollector is used to collect statistics about cache usage.
	// If nil, metrics are disabled.
	MetricsCollector MetricsCollector

	// Clock is used to determine entry expiration. If nil, the system clock is used.
	Clock Clock

	// DeduplicateMisses makes concurrent single-key calls for the same missing key share one computation.
	// GetOrPut calls share only with GetOrPut calls, GetOrPutOrNull calls only with GetOrPutOrNull calls.
	// The shared computation runs with the context of the caller that started it. If it fails with
	// a context error while a waiting caller's own context is still alive, that caller computes on its own.
	// Batch calls are never deduplicated.
	DeduplicateMisses bool
}

// LocalCache is a bounded in-memory cache where every entry lives for a fixed duration.
// It is safe for concurrent use, but the lock is never held while a compute function runs,
// so concurrent misses of the same key compute independently (last write wins)
// unless Options.DeduplicateMisses is set.
type LocalCache[V any] struct {
	mu      sync.Mutex
	store   *entryStore[V]
	evictor *evictor[V]

	clock            Clock
	metricsCollector MetricsCollector

	deduplicateMisses bool
	flights           flightGroup[computed[V]] // GetOrPut
	nullableFlights   flightGroup[computed[V]] // GetOrPutOrNull
}

type computed[V any] struct {
	value V
	ok    bool
}

// New creates a new LocalCache with the provided entry duration and maximum number of entries.
func New[V any](entryDuration time.Duration, maxEntries int) (*LocalCache[V], error) {
	return NewWithOpts[V](Options{EntryDuration: entryDuration, MaxEntries: maxEntries})
}

// NewWithOpts creates a new LocalCache with the provided options.
func NewWithOpts[V any](opts Options) (*LocalCache[V], error) {
	if opts.MaxEntries <= 0 {
		return nil, fmt.Errorf("%w, but was %d", ErrInvalidMaxEntries, opts.MaxEntries)
	}
	if opts.EntryDuration < 0 {
		return nil, fmt.Errorf("entryDuration must be greater or equal to 0, but was %s", opts.EntryDuration)
	}
	if opts.Logger == nil {
		opts.Logger = log.NewDisabledLogger()
	}
	if opts.MetricsCollector == nil {
		opts.MetricsCollector = disabledMetrics{}
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}

	return &LocalCache[V]{
		store:             newEntryStore[V](opts.EntryDuration),
		evictor:           &evictor[V]{maxEntries: opts.MaxEntries, logger: opts.Logger},
		clock:             opts.Clock,
		metricsCollector:  opts.MetricsCollector,
		deduplicateMisses: opts.DeduplicateMisses,
	}, nil
}

// Get returns the value stored by the key if it has not expired yet.
func (c *LocalCache[V]) Get(key string) (value V, ok bool) {
	now := c.clock.Now()

	c.mu.Lock()
	value, ok = c.store.lookup(key, now)
	c.mu.Unlock()

	if ok {
		c.metricsCollector.IncHits()
	} else {
		c.metricsCollector.IncMisses()
	}
	return value, ok
}

// GetOrPut returns the cached value by the key.
// If the key is absent or expired, compute is called and its result is cached and returned.
// An error from compute is returned as is and nothing is cached.
func (c *LocalCache[V]) GetOrPut(ctx context.Context, key string, compute ComputeFunc[V]) (V, error) {
	value, _, err := c.getOrPut(ctx, key, &c.flights, func(ctx context.Context) (V, bool, error) {
		v, err := compute(ctx)
		return v, err == nil, err
	})
	return value, err
}

// GetOrPutOrNull works like GetOrPut, but compute may report that there is no value.
// In that case nothing is cached, so the next call for the key computes again.
func (c *LocalCache[V]) GetOrPutOrNull(ctx context.Context, key string, compute ComputeOrNullFunc[V]) (V, bool, error) {
	return c.getOrPut(ctx, key, &c.nullableFlights, compute)
}

func (c *LocalCache[V]) getOrPut(
	ctx context.Context, key string, flights *flightGroup[computed[V]], compute ComputeOrNullFunc[V],
) (V, bool, error) {
	if value, ok := c.Get(key); ok {
		return value, true, nil
	}

	load := func() (computed[V], error) {
		value, ok, err := compute(ctx)
		if err != nil {
			return computed[V]{}, err
		}
		if ok {
			c.put(ctx, key, value)
		}
		return computed[V]{value: value, ok: ok}, nil
	}

	var res computed[V]
	var err error
	if c.deduplicateMisses {
		var shared bool
		res, shared, err = flights.do(key, load)
		if shared && isContextError(err) && ctx.Err() == nil {
			res, err = load()
		}
	} else {
		res, err = load()
	}
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.value, res.ok, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// GetOrPutMany returns cached values for the keys.
// If some keys are absent or expired, compute is called once with exactly those keys,
// everything it returns is cached, and the result is the union of cached and computed values.
// Keys that are neither cached nor returned by compute are absent from the result.
// If no keys are missing, compute is not called.
func (c *LocalCache[V]) GetOrPutMany(ctx context.Context, keys []string, compute BatchComputeFunc[V]) (map[string]V, error) {
	now := c.clock.Now()

	result := make(map[string]V, len(keys))
	missingKeys := make(map[string]struct{})

	c.mu.Lock()
	for _, key := range keys {
		if value, ok := c.store.lookup(key, now); ok {
			result[key] = value
		} else {
			missingKeys[key] = struct{}{}
		}
	}
	c.mu.Unlock()

	for i := 0; i < len(result); i++ {
		c.metricsCollector.IncHits()
	}
	for i := 0; i < len(missingKeys); i++ {
		c.metricsCollector.IncMisses()
	}

	if len(missingKeys) == 0 {
		return result, nil
	}

	computedValues, err := compute(ctx, missingKeys)
	if err != nil {
		return nil, err
	}
	c.putMany(ctx, computedValues)

	for key, value := range computedValues {
		result[key] = value
	}
	return result, nil
}

// Remove removes the entry by the key. It reports whether the entry was present (expired or not).
func (c *LocalCache[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.store.rawRemove(key)
	c.metricsCollector.SetAmount(c.store.size())
	return removed
}

// Purge removes all entries. Removed entries are not counted as evictions.
func (c *LocalCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.clear()
	c.metricsCollector.SetAmount(0)
}

// Len returns the number of entries physically stored, including expired ones not cleaned up yet.
func (c *LocalCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.size()
}

func (c *LocalCache[V]) put(ctx context.Context, key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(ctx, key, value)
	c.metricsCollector.SetAmount(c.store.size())
}

// putMany writes values one by one in key order, so capacity is enforced for every single key.
func (c *LocalCache[V]) putMany(ctx context.Context, values map[string]V) {
	if len(values) == 0 {
		return
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		c.putLocked(ctx, key, values[key])
	}
	c.metricsCollector.SetAmount(c.store.size())
}

func (c *LocalCache[V]) putLocked(ctx context.Context, key string, value V) {
	now := c.clock.Now()
	res := c.evictor.makeRoom(ctx, c.store, now)
	if res.expired > 0 {
		c.metricsCollector.AddExpirations(res.expired)
	}
	if res.evicted > 0 {
		c.metricsCollector.AddEvictions(res.evicted)
	}
	c.store.rawInsert(key, value, now)
}
