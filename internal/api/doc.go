// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package api exposes Forkfeed over a JSON HTTP API built on chi.

Every response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "post \"p9\" not found"}}

Domain errors map to statuses in ErrorStatus: not found is 404, permission
is 403, validation and self-follow are 400, and anything else is a logged
500 whose message is not exposed.

The viewer arrives in the X-User-ID header set by the upstream gateway.
Mutating endpoints without it answer 401. Read endpoints accept anonymous
requests except the following feed, suggestions, saved items and
notifications.

Routes (all under /api/v1):

	GET    /health/live
	GET    /feed?filter=all|following|trending|category=<name>
	GET    /suggestions
	GET    /tags/trending?filter=&limit=
	POST   /users
	GET    /users/{userID}
	POST   /users/{userID}/follow
	GET    /users/{userID}/followers
	GET    /users/{userID}/following
	POST   /posts
	GET    /posts/{postID}
	DELETE /posts/{postID}
	POST   /posts/{postID}/like
	POST   /posts/{postID}/comments
	GET    /posts/{postID}/comments
	DELETE /comments/{commentID}
	POST   /saved
	GET    /saved?kind=
	GET    /notifications?unread=
	POST   /notifications/read-all
	POST   /notifications/{notificationID}/read

Prometheus metrics are served at /metrics.
*/
package api
