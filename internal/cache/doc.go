// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package cache provides the key-value caches shared by the recommendation
engine and the feed.

Implementations:

  - Cache: unbounded TTL map with lazy expiry and an optional janitor (Serve)
  - LRUCache: capacity-bounded, O(1) get/set/evict, per-entry TTL
  - RedisCache: cross-process cache on go-redis v9 guarded by a gobreaker circuit breaker

All three satisfy Cacher. In-process caches return the stored value itself;
RedisCache returns a JSON-encoded Raw. GetAs hides the difference:

	c := cache.New(time.Hour)
	c.SetWithTTL("suggestions:"+viewer, ids, time.Hour)
	ids, ok := cache.GetAs[[]string](c, "suggestions:"+viewer)

Expiry is wall-clock: an entry whose expiry time has been reached reads as
absent on the next Get. Caches are constructed explicitly and injected into
their consumers; there is no package-level instance.

Thread Safety:

Every implementation is safe for concurrent use. Values stored in the
in-process caches are shared, so callers must not mutate them after Set.
*/
package cache
