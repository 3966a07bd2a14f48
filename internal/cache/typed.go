// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package cache

import "github.com/goccy/go-json"

// Raw is a JSON-encoded value as returned by remote cachers such as RedisCache.
type Raw []byte

// GetAs reads key and returns it as T.
//
// In-process cachers hand back the stored value itself; remote cachers hand
// back Raw, which is decoded into T. A value of another type, or Raw that
// fails to decode, reads as a miss.
func GetAs[T any](c Cacher, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	if typed, ok := v.(T); ok {
		return typed, true
	}

	if raw, ok := v.(Raw); ok {
		var out T
		if err := json.Unmarshal(raw, &out); err != nil {
			return zero, false
		}
		return out, true
	}

	return zero, false
}
