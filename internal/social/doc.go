// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package social implements the mutating side of Forkfeed: users, posts,
comments, likes, follows, saved items and notifications.

Every operation takes a typed request validated with go-playground/validator
and returns errors from the models taxonomy:

  - *models.NotFoundError for an unknown user, post, comment or notification
  - *models.PermissionError when the actor does not own what it deletes
  - *models.ValidationError for missing or malformed fields
  - *models.SelfReferenceError when a user tries to follow themselves

Toggles (like, follow, save) delegate the check-and-flip to a single atomic
store primitive and always succeed for either starting state, reporting the
resulting state:

	res, err := svc.ToggleLike(ctx, social.ToggleRequest{ActorID: "bob", TargetID: postID})
	// res.Active == true, res.Count == 1

Turning a like or follow on and adding a comment publish an events.Event so
the recipient gets a notification. Publishing is best effort.
*/
package social
