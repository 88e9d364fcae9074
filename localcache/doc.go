/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package localcache provides a bounded in-memory cache with a fixed time-to-live for every entry.
//
// Values are obtained through get-or-compute calls: a single key (GetOrPut, GetOrPutOrNull)
// or a set of keys (GetOrPutMany), where the compute function is invoked only for the keys
// that are absent or expired. Expiration is checked lazily on read. Cleanup happens lazily on write:
// when the cache is full, expired entries are removed first, and if that is not enough,
// the entries expiring soonest are evicted and a warning is logged.
//
// The cache does not deduplicate concurrent computations of the same missing key unless
// Options.DeduplicateMisses is set.
package localcache
