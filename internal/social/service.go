// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package social

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkfeed/internal/events"
	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
	"github.com/tomtom215/forkfeed/internal/validation"
)

// Stores groups the persistence contracts the service writes to.
type Stores struct {
	Graph         store.GraphStore
	Posts         store.PostStore
	Saved         store.SavedStore
	Notifications store.NotificationStore
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now for created timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service implements every mutating social operation. Each operation
// validates its typed request, checks referenced entities exist, and
// returns errors from the models taxonomy.
type Service struct {
	graph     store.GraphStore
	posts     store.PostStore
	saved     store.SavedStore
	notes     store.NotificationStore
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a Service. publisher may be nil to disable notifications.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(stores Stores, publisher events.Publisher, logger zerolog.Logger, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s := &Service{
		graph:     stores.Graph,
		posts:     stores.Posts,
		saved:     stores.Saved,
		notes:     stores.Notifications,
		publisher: publisher,
		logger:    logger.With().Str("component", "social").Logger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users

// CreateUser registers a user.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}
	u := &models.User{
		ID:          req.ID,
		Username:    strings.TrimSpace(req.Username),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
		JoinedAt:    s.now(),
	}
	if u.ID == "" {
		u.ID = models.NewID()
	}
	if err := s.graph.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUser returns a user or *models.NotFoundError.
func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.graph.GetUser(ctx, id)
}

// Followers returns the ids following user.
func (s *Service) Followers(ctx context.Context, user string) ([]string, error) {
	return s.graph.Followers(ctx, user)
}

// Following returns the ids user follows.
func (s *Service) Following(ctx context.Context, user string) ([]string, error) {
	return s.graph.Following(ctx, user)
}

// ToggleFollow flips actor -> target and reports the new state with the
// target's follower count. Following yourself is a *models.SelfReferenceError.
func (s *Service) ToggleFollow(ctx context.Context, req ToggleRequest) (ToggleResult, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return ToggleResult{}, err
	}
	if req.ActorID == req.TargetID {
		return ToggleResult{}, models.NewSelfReferenceError(req.ActorID)
	}

	following, err := s.graph.ToggleFollow(ctx, req.ActorID, req.TargetID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggle follow: %w", err)
	}
	metrics.RecordToggle("follow", following)

	followers, err := s.graph.Followers(ctx, req.TargetID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("count followers: %w", err)
	}

	if following {
		s.publish(ctx, events.UserFollowed(req.ActorID, req.TargetID))
	}
	return ToggleResult{Active: following, Count: len(followers)}, nil
}

// Posts

// CreatePost validates and stores a new post. A share must reference an
// existing, strictly older post; its place context is copied when the
// request carries none.
func (s *Service) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if _, err := s.graph.GetUser(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	category := models.CategoryOther
	if req.Category != "" {
		c, err := models.ParseCategory(req.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	now := s.now()
	p := &models.Post{
		ID:        models.NewID(),
		AuthorID:  req.AuthorID,
		Content:   req.Content,
		Tags:      append([]string(nil), req.Tags...),
		Category:  category,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	if req.Place != nil {
		kind, err := models.ParsePlaceKind(req.Place.Kind)
		if err != nil {
			return nil, err
		}
		p.Place = &models.SharedPlace{
			Kind:    kind,
			PlaceID: strings.TrimSpace(req.Place.PlaceID),
			Name:    req.Place.Name,
			City:    req.Place.City,
		}
	}

	if req.SharedFromID != "" {
		original, err := s.posts.GetPost(ctx, req.SharedFromID)
		if err != nil {
			return nil, err
		}
		if !original.CreatedAt.Before(now) {
			return nil, models.NewValidationError("shared_from_id", "must reference an older post")
		}
		p.SharedFromID = original.ID
		if p.Place == nil && original.Place != nil {
			place := *original.Place
			p.Place = &place
		}
	}

	if err := s.posts.CreatePost(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("post_id", p.ID).
		Str("author_id", p.AuthorID).
		Str("category", string(p.Category)).
		Msg("Post created")
	return p, nil
}

// GetPost returns a post or *models.NotFoundError.
func (s *Service) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetPost(ctx, id)
}

// DeletePost removes a post and its comments. Only the author may delete.
func (s *Service) DeletePost(ctx context.Context, actor, postID string) error {
	p, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if p.AuthorID != actor {
		return models.NewPermissionError("delete this post", actor)
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ToggleLike flips actor's like on the target post and reports the new
// state with the like count.
func (s *Service) ToggleLike(ctx context.Context, req ToggleRequest) (ToggleResult, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return ToggleResult{}, err
	}
	if _, err := s.graph.GetUser(ctx, req.ActorID); err != nil {
		return ToggleResult{}, err
	}
	p, err := s.posts.GetPost(ctx, req.TargetID)
	if err != nil {
		return ToggleResult{}, err
	}

	liked, count, err := s.posts.ToggleLike(ctx, req.ActorID, req.TargetID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggle like: %w", err)
	}
	metrics.RecordToggle("like", liked)

	if liked {
		s.publish(ctx, events.PostLiked(req.ActorID, p.AuthorID, p.ID))
	}
	return ToggleResult{Active: liked, Count: count}, nil
}

// Comments

// AddComment stores a comment on a post.
func (s *Service) AddComment(ctx context.Context, req CommentRequest) (*models.Comment, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if _, err := s.graph.GetUser(ctx, req.AuthorID); err != nil {
		return nil, err
	}
	p, err := s.posts.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	c := &models.Comment{
		ID:        models.NewID(),
		PostID:    p.ID,
		AuthorID:  req.AuthorID,
		Text:      strings.TrimSpace(req.Text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.AddComment(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.publish(ctx, events.PostCommented(req.AuthorID, p.AuthorID, p.ID, c.ID))
	return c, nil
}

// ListComments returns the comments of a post, oldest first.
func (s *Service) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.posts.ListComments(ctx, postID)
}

// DeleteComment removes a comment. The comment's author and the post's
// author may delete it.
func (s *Service) DeleteComment(ctx context.Context, actor, commentID string) error {
	c, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != actor {
		p, err := s.posts.GetPost(ctx, c.PostID)
		if err != nil {
			return err
		}
		if p.AuthorID != actor {
			return models.NewPermissionError("delete this comment", actor)
		}
	}
	if err := s.posts.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// Saved items

// ToggleSaved flips a saved restaurant, recipe or grocery store.
func (s *Service) ToggleSaved(ctx context.Context, req SaveRequest) (ToggleResult, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return ToggleResult{}, err
	}
	if _, err := s.graph.GetUser(ctx, req.UserID); err != nil {
		return ToggleResult{}, err
	}
	kind, err := models.ParsePlaceKind(req.Kind)
	if err != nil {
		return ToggleResult{}, err
	}

	item := &models.SavedItem{
		UserID:    req.UserID,
		Kind:      kind,
		TargetID:  strings.TrimSpace(req.TargetID),
		Name:      req.Name,
		Notes:     req.Notes,
		CreatedAt: s.now(),
	}
	saved, err := s.saved.ToggleSaved(ctx, item)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggle saved: %w", err)
	}
	metrics.RecordToggle("saved", saved)

	items, err := s.saved.ListSaved(ctx, req.UserID, kind)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("list saved: %w", err)
	}
	return ToggleResult{Active: saved, Count: len(items)}, nil
}

// ListSaved returns a user's saved items, newest first. An empty kind
// lists every kind.
func (s *Service) ListSaved(ctx context.Context, user, kind string) ([]models.SavedItem, error) {
	var k models.PlaceKind
	if kind != "" {
		parsed, err := models.ParsePlaceKind(kind)
		if err != nil {
			return nil, err
		}
		k = parsed
	}
	return s.saved.ListSaved(ctx, user, k)
}

// Notifications

// ListNotifications returns a user's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, user string, unreadOnly bool) ([]models.Notification, error) {
	return s.notes.ListNotifications(ctx, user, unreadOnly)
}

// MarkNotificationRead marks one of user's notifications read.
func (s *Service) MarkNotificationRead(ctx context.Context, user, id string) error {
	return s.notes.MarkRead(ctx, user, id)
}

// MarkAllNotificationsRead marks every notification of user read.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, user string) (int, error) {
	return s.notes.MarkAllRead(ctx, user)
}

// publish is best effort: the triggering operation has already succeeded.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if e.ActorID == e.RecipientID {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn().
			Err(err).
			Str("topic", e.Topic).
			Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
			Msg("Event publish failed")
	}
}
