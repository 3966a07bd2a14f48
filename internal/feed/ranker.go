// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

// Suggester returns users the viewer may want to follow.
// *recommend.Engine satisfies it.
type Suggester interface {
	SuggestUsers(ctx context.Context, viewer string) ([]string, error)
}

// Config tunes the ranker.
type Config struct {
	// TrendingTagsLimit is the number of tags returned by Home.
	TrendingTagsLimit int
}

// Ranker builds feed views over the post store. It never writes.
type Ranker struct {
	graph     store.GraphStore
	posts     store.PostStore
	suggester Suggester
	config    Config
	logger    zerolog.Logger
}

// HomeView is everything the home page shows for one request.
type HomeView struct {
	Filter       models.FilterSpec `json:"filter"`
	Posts        []models.PostView `json:"posts"`
	TrendingTags []string          `json:"trending_tags"`
	Suggestions  []string          `json:"suggestions,omitempty"`
}

// NewRanker creates a Ranker. suggester may be nil, in which case Home
// never returns suggestions.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(graph store.GraphStore, posts store.PostStore, suggester Suggester, cfg Config, logger zerolog.Logger) *Ranker {
	if cfg.TrendingTagsLimit <= 0 {
		cfg.TrendingTagsLimit = DefaultTrendingTagsLimit
	}
	return &Ranker{
		graph:     graph,
		posts:     posts,
		suggester: suggester,
		config:    cfg,
		logger:    logger.With().Str("component", "feed").Logger(),
	}
}

// GetFeed returns the posts selected by filter, ordered newest first, or by
// like count for the trending filter. viewer is empty for anonymous requests;
// a following filter without a viewer fails with *models.PermissionError.
func (r *Ranker) GetFeed(ctx context.Context, viewer string, filter models.FilterSpec) ([]models.PostView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	candidates, err := r.candidates(ctx, viewer, filter)
	if err != nil {
		return nil, err
	}

	views, err := r.decorate(ctx, candidates, viewer)
	if err != nil {
		return nil, err
	}

	if filter.Mode == models.FilterTrending {
		SortTrending(views)
	} else {
		SortNewest(views)
	}

	metrics.RecordFeedRequest(string(mode(filter)), len(views))
	return views, nil
}

// Home returns the feed together with the trending tags of that feed and,
// for a signed-in viewer, suggested users. A suggestion failure is logged
// and yields no suggestions rather than failing the feed.
func (r *Ranker) Home(ctx context.Context, viewer string, filter models.FilterSpec) (*HomeView, error) {
	views, err := r.GetFeed(ctx, viewer, filter)
	if err != nil {
		return nil, err
	}

	home := &HomeView{
		Filter:       filter,
		Posts:        views,
		TrendingTags: trendingTagsOfViews(views, r.config.TrendingTagsLimit),
	}

	if viewer != "" && r.suggester != nil {
		ids, err := r.suggester.SuggestUsers(ctx, viewer)
		if err != nil {
			r.logger.Warn().Err(err).Str("viewer_id", viewer).Msg("Suggestions unavailable")
			ids = []string{}
		}
		home.Suggestions = ids
	}

	return home, nil
}

// TrendingTags returns the trending tags of the feed selected by filter.
func (r *Ranker) TrendingTags(ctx context.Context, viewer string, filter models.FilterSpec, limit int) ([]string, error) {
	views, err := r.GetFeed(ctx, viewer, filter)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = r.config.TrendingTagsLimit
	}
	return trendingTagsOfViews(views, limit), nil
}

func (r *Ranker) candidates(ctx context.Context, viewer string, filter models.FilterSpec) ([]models.Post, error) {
	switch mode(filter) {
	case models.FilterFollowing:
		if viewer == "" {
			return nil, models.NewPermissionError("view the following feed", "")
		}
		following, err := r.graph.Following(ctx, viewer)
		if err != nil {
			return nil, fmt.Errorf("load following: %w", err)
		}
		if len(following) == 0 {
			return []models.Post{}, nil
		}
		posts, err := r.posts.PostsByAuthorIn(ctx, following)
		if err != nil {
			return nil, fmt.Errorf("load posts: %w", err)
		}
		return posts, nil

	case models.FilterCategory:
		all, err := r.posts.AllPosts(ctx)
		if err != nil {
			return nil, fmt.Errorf("load posts: %w", err)
		}
		out := make([]models.Post, 0, len(all))
		for _, p := range all {
			if p.Category.Equal(filter.Category) {
				out = append(out, p)
			}
		}
		return out, nil

	default:
		posts, err := r.posts.AllPosts(ctx)
		if err != nil {
			return nil, fmt.Errorf("load posts: %w", err)
		}
		return posts, nil
	}
}

// decorate attaches like and comment counts. Stores implementing
// store.PostStats answer in one call.
func (r *Ranker) decorate(ctx context.Context, posts []models.Post, viewer string) ([]models.PostView, error) {
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i].Post = posts[i]
	}
	if len(posts) == 0 {
		return views, nil
	}

	if ps, ok := r.posts.(store.PostStats); ok {
		ids := make([]string, len(posts))
		for i := range posts {
			ids[i] = posts[i].ID
		}
		stats, err := ps.Stats(ctx, ids, viewer)
		if err != nil {
			return nil, fmt.Errorf("load post stats: %w", err)
		}
		for i := range views {
			c := stats[views[i].ID]
			views[i].LikeCount = c.Likes
			views[i].CommentCount = c.Comments
			views[i].LikedByViewer = c.Liked
		}
		return views, nil
	}

	for i := range views {
		id := views[i].ID
		likes, err := r.posts.LikeCount(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("like count %s: %w", id, err)
		}
		comments, err := r.posts.ListComments(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("comments %s: %w", id, err)
		}
		views[i].LikeCount = likes
		views[i].CommentCount = len(comments)
		if viewer != "" {
			liked, err := r.posts.HasLiked(ctx, viewer, id)
			if err != nil {
				return nil, fmt.Errorf("has liked %s: %w", id, err)
			}
			views[i].LikedByViewer = liked
		}
	}
	return views, nil
}

// SortNewest orders views by CreatedAt descending. Equal timestamps keep
// their current relative order.
func SortNewest(views []models.PostView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}

// SortTrending orders views by LikeCount descending, then CreatedAt
// descending. Remaining ties keep their current relative order.
func SortTrending(views []models.PostView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].LikeCount != views[j].LikeCount {
			return views[i].LikeCount > views[j].LikeCount
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}

func mode(f models.FilterSpec) models.FilterMode {
	if f.Mode == "" {
		return models.FilterAll
	}
	return f.Mode
}
