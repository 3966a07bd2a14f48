// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package models defines the domain records shared by every Forkfeed layer.

Key Components:

  - User, FollowEdge: identities and the directed follow graph
  - Post, Comment, SharedPlace: feed content with denormalized place context
  - PostView: a post decorated with like/comment counts for a viewer
  - Category: the fixed meal category enum (case-insensitive parsing)
  - FilterSpec: the enumerated feed view modes (all, following, category, trending)
  - SavedItem, Notification: saved places/recipes and activity notifications
  - Error taxonomy: NotFoundError, PermissionError, ValidationError, SelfReferenceError

Stores, the recommendation engine, the feed ranker and the HTTP layer all speak
these types. Nothing in this package performs I/O.

Error Handling:

Every typed error matches a sentinel so callers can branch with errors.Is:

	if errors.Is(err, models.ErrNotFound) {
	    // 404
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
	    // inspect verr.Fields
	}
*/
package models
