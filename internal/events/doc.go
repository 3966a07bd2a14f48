// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package events carries social activity to the notification store.

The social service publishes an Event when a like or follow is switched on
or a comment is added. Events travel as JSON messages over an in-process
Watermill gochannel Pub/Sub (Bus). The Notifier consumes every topic through a
Watermill router (Recoverer and Retry middleware) and writes one
models.Notification per event. Activity on your own post is never notified.

	bus := events.NewBus(events.BusConfig{Buffer: 64}, wmLogger)
	notifier := events.NewNotifier(bus.Subscriber(), store, events.DefaultNotifierConfig(), wmLogger, logger)
	tree.AddMessagingService(notifier)

	publisher := events.NewGuarded(bus, notifier, store)
	_ = publisher.Publish(ctx, events.PostLiked("bob", "alice", postID))

gochannel drops messages nobody is subscribed to, so Guarded writes
notifications directly whenever the notifier is not running. When the bus
is disabled, Direct writes every notification synchronously.
Publishing is best effort: callers log failures and carry on.
*/
package events
