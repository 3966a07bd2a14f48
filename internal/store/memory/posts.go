// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package memory

import (
	"context"
	"time"

	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

func (s *Store) AllPosts(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, 0, len(s.postOrder))
	for _, id := range s.postOrder {
		out = append(out, s.posts[id].Clone())
	}
	return out, nil
}

func (s *Store) PostsByAuthorIn(_ context.Context, authors []string) ([]models.Post, error) {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, 0)
	for _, id := range s.postOrder {
		p := s.posts[id]
		if _, ok := set[p.AuthorID]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *Store) CreatePost(_ context.Context, p *models.Post) error {
	if p == nil || p.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.posts[p.ID]; exists {
		return models.NewValidationError("id", "already exists")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	cp := p.Clone()
	s.posts[p.ID] = &cp
	s.postOrder = append(s.postOrder, p.ID)
	return nil
}

func (s *Store) GetPost(_ context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("post", id)
	}
	cp := p.Clone()
	return &cp, nil
}

func (s *Store) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return models.NewNotFoundError("post", id)
	}
	delete(s.posts, id)
	for i, pid := range s.postOrder {
		if pid == id {
			s.postOrder = append(s.postOrder[:i], s.postOrder[i+1:]...)
			break
		}
	}
	for _, cid := range s.commentsByPost[id] {
		delete(s.comments, cid)
	}
	delete(s.commentsByPost, id)
	delete(s.likes, id)
	return nil
}

func (s *Store) ToggleLike(_ context.Context, user, post string) (bool, int, error) {
	pl := s.pairLock(user, post)
	pl.Lock()
	defer pl.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post]; !ok {
		return false, 0, models.NewNotFoundError("post", post)
	}
	members := s.likes[post]
	if _, liked := members[user]; liked {
		delete(members, user)
		return false, len(members), nil
	}
	if members == nil {
		members = make(map[string]time.Time)
		s.likes[post] = members
	}
	members[user] = s.now()
	return true, len(members), nil
}

func (s *Store) LikeCount(_ context.Context, post string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[post]; !ok {
		return 0, models.NewNotFoundError("post", post)
	}
	return len(s.likes[post]), nil
}

func (s *Store) HasLiked(_ context.Context, user, post string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.likes[post][user]
	return ok, nil
}

func (s *Store) AddComment(_ context.Context, c *models.Comment) error {
	if c == nil || c.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return models.NewNotFoundError("post", c.PostID)
	}
	if _, exists := s.comments[c.ID]; exists {
		return models.NewValidationError("id", "already exists")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	cp := *c
	s.comments[c.ID] = &cp
	s.commentsByPost[c.PostID] = append(s.commentsByPost[c.PostID], c.ID)
	return nil
}

func (s *Store) GetComment(_ context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, models.NewNotFoundError("comment", id)
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListComments(_ context.Context, post string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[post]; !ok {
		return nil, models.NewNotFoundError("post", post)
	}
	ids := s.commentsByPost[post]
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.comments[id])
	}
	return out, nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return models.NewNotFoundError("comment", id)
	}
	delete(s.comments, id)
	ids := s.commentsByPost[c.PostID]
	for i, cid := range ids {
		if cid == id {
			s.commentsByPost[c.PostID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// Stats decorates ids in one pass under the read lock.
func (s *Store) Stats(_ context.Context, ids []string, viewer string) (map[string]store.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]store.Counts, len(ids))
	for _, id := range ids {
		c := store.Counts{
			Likes:    len(s.likes[id]),
			Comments: len(s.commentsByPost[id]),
		}
		if viewer != "" {
			_, c.Liked = s.likes[id][viewer]
		}
		out[id] = c
	}
	return out, nil
}
