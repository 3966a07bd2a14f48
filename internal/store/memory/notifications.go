// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package memory

import (
	"context"

	"github.com/tomtom215/forkfeed/internal/models"
)

func (s *Store) AddNotification(_ context.Context, n *models.Notification) error {
	if n == nil || n.ID == "" || n.RecipientID == "" {
		return models.NewValidationError("recipient_id", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	cp := *n
	s.notifications[n.ID] = &cp
	s.notesByUser[n.RecipientID] = append(s.notesByUser[n.RecipientID], n.ID)
	return nil
}

// ListNotifications walks the per-user append log backwards, so equal
// timestamps still come out newest first.
func (s *Store) ListNotifications(_ context.Context, user string, unreadOnly bool) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.notesByUser[user]
	out := make([]models.Notification, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		n := s.notifications[ids[i]]
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (s *Store) MarkRead(_ context.Context, user, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return models.NewNotFoundError("notification", id)
	}
	if n.RecipientID != user {
		return models.NewPermissionError("mark this notification read", user)
	}
	n.Read = true
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, user string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, id := range s.notesByUser[user] {
		if n := s.notifications[id]; !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}
