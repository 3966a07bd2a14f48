// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package memory

import (
	"context"
	"sort"

	"github.com/tomtom215/forkfeed/internal/models"
)

func (s *Store) ToggleSaved(_ context.Context, item *models.SavedItem) (bool, error) {
	if item == nil || item.UserID == "" || item.TargetID == "" {
		return false, models.NewValidationError("target_id", "is required")
	}
	key := item.Key()
	pl := s.pairLock(item.UserID, key)
	pl.Lock()
	defer pl.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	byKey := s.saved[item.UserID]
	if _, ok := byKey[key]; ok {
		delete(byKey, key)
		return false, nil
	}
	if byKey == nil {
		byKey = make(map[string]*savedEntry)
		s.saved[item.UserID] = byKey
	}
	cp := *item
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = s.now()
	}
	s.seq++
	byKey[key] = &savedEntry{item: cp, seq: s.seq}
	*item = cp
	return true, nil
}

func (s *Store) ListSaved(_ context.Context, user string, kind models.PlaceKind) ([]models.SavedItem, error) {
	s.mu.RLock()
	entries := make([]*savedEntry, 0, len(s.saved[user]))
	for _, e := range s.saved[user] {
		if kind == "" || e.item.Kind == kind {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].item.CreatedAt.Equal(entries[j].item.CreatedAt) {
			return entries[i].item.CreatedAt.After(entries[j].item.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})
	out := make([]models.SavedItem, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out, nil
}
