// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkfeed/internal/models"
)

// Topics
const (
	TopicPostLiked     = "post.liked"
	TopicPostCommented = "post.commented"
	TopicUserFollowed  = "user.followed"
)

// Topics lists every topic the notifier consumes.
var Topics = []string{TopicPostLiked, TopicPostCommented, TopicUserFollowed}

// Event is a social activity that may notify another user.
type Event struct {
	Topic       string    `json:"topic"`
	ActorID     string    `json:"actor_id"`
	RecipientID string    `json:"recipient_id"`
	PostID      string    `json:"post_id,omitempty"`
	CommentID   string    `json:"comment_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PostLiked is published when actor turns a like on.
func PostLiked(actor, author, post string) Event {
	return Event{Topic: TopicPostLiked, ActorID: actor, RecipientID: author, PostID: post, OccurredAt: time.Now()}
}

// PostCommented is published when actor comments on a post.
func PostCommented(actor, author, post, comment string) Event {
	return Event{Topic: TopicPostCommented, ActorID: actor, RecipientID: author, PostID: post, CommentID: comment, OccurredAt: time.Now()}
}

// UserFollowed is published when actor starts following followed.
func UserFollowed(actor, followed string) Event {
	return Event{Topic: TopicUserFollowed, ActorID: actor, RecipientID: followed, OccurredAt: time.Now()}
}

// Publisher delivers events. Implementations must not block on slow consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Marshal encodes e as a message payload.
func Marshal(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a message payload.
func Unmarshal(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}

// ToNotification converts an event into the notification shown to its
// recipient. ok is false for self-activity and unknown topics.
func ToNotification(e Event) (n *models.Notification, ok bool) {
	if e.RecipientID == "" || e.ActorID == e.RecipientID {
		return nil, false
	}

	n = &models.Notification{
		ID:          models.NewID(),
		RecipientID: e.RecipientID,
		SenderID:    e.ActorID,
		PostID:      e.PostID,
		CommentID:   e.CommentID,
		CreatedAt:   e.OccurredAt,
	}

	switch e.Topic {
	case TopicPostLiked:
		n.Type = models.NotificationLike
		n.Message = fmt.Sprintf("%s liked your post", e.ActorID)
	case TopicPostCommented:
		n.Type = models.NotificationComment
		n.Message = fmt.Sprintf("%s commented on your post", e.ActorID)
	case TopicUserFollowed:
		n.Type = models.NotificationFollow
		n.Message = fmt.Sprintf("%s started following you", e.ActorID)
	default:
		return nil, false
	}
	return n, true
}
