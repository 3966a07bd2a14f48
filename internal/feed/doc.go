// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package feed builds the post feed and its trending tags.

A request selects candidates with a models.FilterSpec:

  - all: every post
  - following: posts by authors the viewer follows (requires a viewer)
  - category=<name>: posts whose category matches case-insensitively
  - trending: every post, ordered by like count

Posts are returned newest first. Trending orders by like count, then
newest first. Both sorts are stable, so posts with identical keys keep the
store's insertion order.

Trending tags are always computed over the filtered view, never the whole
post set:

	ranker := feed.NewRanker(graph, posts, engine, feed.Config{}, logger)
	home, err := ranker.Home(ctx, viewerID, models.InCategory(models.CategoryDinner))
	// home.Posts, home.TrendingTags, home.Suggestions
*/
package feed
