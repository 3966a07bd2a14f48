// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package feed

import (
	"fmt"
	"testing"

	"github.com/tomtom215/forkfeed/internal/models"
)

func postsWithTags(tags ...[]string) []models.Post {
	out := make([]models.Post, len(tags))
	for i, t := range tags {
		out[i] = models.Post{ID: fmt.Sprintf("p%d", i), Tags: t}
	}
	return out
}

func TestTrendingTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		posts []models.Post
		limit int
		want  []string
	}{
		{
			name:  "empty",
			posts: nil,
			limit: 5,
			want:  []string{},
		},
		{
			name:  "example",
			posts: postsWithTags([]string{"spicy", "sweet"}, []string{"spicy"}),
			limit: 5,
			want:  []string{"spicy", "sweet"},
		},
		{
			name:  "ties keep first-seen order",
			posts: postsWithTags([]string{"b", "a"}, []string{"c", "a", "b"}),
			limit: 5,
			want:  []string{"b", "a", "c"},
		},
		{
			name:  "duplicates within a post count twice",
			posts: postsWithTags([]string{"x", "y"}, []string{"y", "y"}),
			limit: 5,
			want:  []string{"y", "x"},
		},
		{
			name:  "limit truncates",
			posts: postsWithTags([]string{"a", "b", "c", "d"}, []string{"d"}),
			limit: 2,
			want:  []string{"d", "a"},
		},
		{
			name:  "non-positive limit uses default",
			posts: postsWithTags([]string{"1", "2", "3", "4", "5", "6", "7"}),
			limit: 0,
			want:  []string{"1", "2", "3", "4", "5"},
		},
		{
			name:  "case sensitive",
			posts: postsWithTags([]string{"Vegan"}, []string{"vegan"}, []string{"vegan"}),
			limit: 5,
			want:  []string{"vegan", "Vegan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TrendingTags(tt.posts, tt.limit)
			if got == nil {
				t.Fatal("TrendingTags returned nil")
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("TrendingTags = %v, want %v", got, tt.want)
			}
		})
	}
}
