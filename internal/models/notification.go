// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import "time"

// NotificationType categorizes a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
	NotificationSystem  NotificationType = "SYSTEM"
)

// Notification tells RecipientID that SenderID did something.
// PostID and CommentID are set when the activity concerns a post.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	SenderID    string           `json:"sender_id,omitempty"`
	PostID      string           `json:"post_id,omitempty"`
	CommentID   string           `json:"comment_id,omitempty"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
