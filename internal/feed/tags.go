// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package feed

import (
	"sort"

	"github.com/tomtom215/forkfeed/internal/models"
)

// DefaultTrendingTagsLimit is used when a non-positive limit is requested.
const DefaultTrendingTagsLimit = 5

type tagCount struct {
	tag   string
	count int
}

// TrendingTags returns the limit most frequent tags across posts.
// Ties keep the order in which the tags were first encountered.
// Tags are compared exactly as stored.
func TrendingTags(posts []models.Post, limit int) []string {
	if limit <= 0 {
		limit = DefaultTrendingTagsLimit
	}

	index := make(map[string]int)
	counts := make([]tagCount, 0)
	for _, p := range posts {
		for _, tag := range p.Tags {
			if i, ok := index[tag]; ok {
				counts[i].count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, tagCount{tag: tag, count: 1})
		}
	}

	// counts is already in first-seen order, so a stable sort on count
	// alone keeps that order for ties.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.tag)
	}
	return out
}

// trendingTagsOfViews is TrendingTags over decorated posts.
func trendingTagsOfViews(views []models.PostView, limit int) []string {
	posts := make([]models.Post, len(views))
	for i := range views {
		posts[i] = views[i].Post
	}
	return TrendingTags(posts, limit)
}
