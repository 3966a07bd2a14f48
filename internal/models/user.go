// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a Forkfeed identity. Authentication lives upstream; the service
// only knows the id it is handed plus display fields.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

// FollowEdge is a directed follow relation. FollowerID never equals FollowedID.
type FollowEdge struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewID returns a fresh random identifier for users, posts, comments and notifications.
func NewID() string {
	return uuid.New().String()
}
