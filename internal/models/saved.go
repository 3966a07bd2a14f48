// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import "time"

// SavedItem is a restaurant, recipe or grocery store a user has saved.
// (UserID, Kind, TargetID) is unique.
type SavedItem struct {
	UserID    string    `json:"user_id"`
	Kind      PlaceKind `json:"kind"`
	TargetID  string    `json:"target_id"`
	Name      string    `json:"name,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the uniqueness key of the item.
func (s *SavedItem) Key() string {
	return s.UserID + "|" + string(s.Kind) + "|" + s.TargetID
}
