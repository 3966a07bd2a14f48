// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package badgerstore

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/forkfeed/internal/models"
)

func notifKey(id string) []byte { return key("notif", id) }

func (s *Store) AddNotification(ctx context.Context, n *models.Notification) error {
	if n == nil || n.ID == "" || n.RecipientID == "" {
		return models.NewValidationError("recipient_id", "is required")
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		if err := setJSON(txn, notifKey(n.ID), n); err != nil {
			return err
		}
		return txn.Set(key("usernotif", n.RecipientID, seqBytes(seq)), []byte(n.ID))
	})
}

func (s *Store) userNotifications(txn *badger.Txn, user string) ([]models.Notification, error) {
	ids, err := values(txn, prefix("usernotif", user), true)
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		var n models.Notification
		found, err := getJSON(txn, notifKey(string(id)), &n)
		if err != nil {
			return nil, fmt.Errorf("get notification: %w", err)
		}
		if found {
			out = append(out, n)
		}
	}
	return out, nil
}

// ListNotifications iterates the recipient index in reverse key order.
func (s *Store) ListNotifications(_ context.Context, user string, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.View(func(txn *badger.Txn) error {
		all, err := s.userNotifications(txn, user)
		if err != nil {
			return err
		}
		out = all[:0]
		for _, n := range all {
			if !unreadOnly || !n.Read {
				out = append(out, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) MarkRead(ctx context.Context, user, id string) error {
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		var n models.Notification
		found, err := getJSON(txn, notifKey(id), &n)
		if err != nil {
			return fmt.Errorf("get notification: %w", err)
		}
		if !found {
			return models.NewNotFoundError("notification", id)
		}
		if n.RecipientID != user {
			return models.NewPermissionError("mark this notification read", user)
		}
		if n.Read {
			return nil
		}
		n.Read = true
		return setJSON(txn, notifKey(id), n)
	})
}

func (s *Store) MarkAllRead(ctx context.Context, user string) (int, error) {
	var changed int
	err := s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		changed = 0
		all, err := s.userNotifications(txn, user)
		if err != nil {
			return err
		}
		for i := range all {
			if all[i].Read {
				continue
			}
			all[i].Read = true
			if err := setJSON(txn, notifKey(all[i].ID), all[i]); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	return changed, err
}
