// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package recommend suggests users to follow from mutual-follow overlap.

For a viewer V following the set F, every other user U scores
C(U) = |F ∩ following(U)|. Users with C(U) > 0 are ranked by C descending
and then by id, the top Limit are kept, and any remaining slots are padded
with a uniform random sample (without replacement) of the other users.

	engine, _ := recommend.NewEngine(recommend.DefaultConfig(), graph, cacher, logger)
	ids, err := engine.SuggestUsers(ctx, "alice")

Results are cached under "suggestions:{viewer}" for CacheTTL (one hour by
default) and served verbatim until they expire, so a list can be up to that
old. Users the viewer already follows stay eligible unless
Config.ExcludeFollowed is set.

Padding is non-deterministic unless Config.Seed is non-zero.
*/
package recommend
