// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

// MetadataCorrelationID carries the request correlation id across the bus.
const MetadataCorrelationID = "correlation_id"

// BusConfig holds in-process bus settings.
type BusConfig struct {
	// Buffer is the per-subscriber output channel size.
	Buffer int64
}

// Bus is an in-process Watermill Pub/Sub. Publishing never waits for the
// notifier to acknowledge.
type Bus struct {
	pubsub *gochannel.GoChannel
}

var _ Publisher = (*Bus)(nil)

// NewBus creates a Bus. logger may be nil.
func NewBus(cfg BusConfig, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.Buffer,
		}, logger),
	}
}

// Publish sends e on its topic.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	payload, err := Marshal(e)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}

	err = b.pubsub.Publish(e.Topic, msg)
	metrics.RecordEventPublish(e.Topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Topic, err)
	}
	return nil
}

// Subscriber returns the subscribing side for the notifier.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close closes the Pub/Sub. Pending messages are dropped.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Direct turns events into notifications synchronously. It is used when
// the bus is disabled.
type Direct struct {
	notes store.NotificationStore
}

var _ Publisher = (*Direct)(nil)

// NewDirect creates a Direct publisher writing to notes.
func NewDirect(notes store.NotificationStore) *Direct {
	return &Direct{notes: notes}
}

// Publish implements Publisher.
func (d *Direct) Publish(ctx context.Context, e Event) error {
	_, err := deliver(ctx, d.notes, e)
	metrics.RecordEventPublish(e.Topic, err)
	return err
}

// Guarded publishes on the bus while the notifier is consuming and stores
// notifications directly otherwise. gochannel drops messages that have no
// subscriber, which happens before the first router starts and while a
// failed notifier is being restarted.
type Guarded struct {
	bus    Publisher
	live   func() bool
	direct *Direct
}

var _ Publisher = (*Guarded)(nil)

// NewGuarded routes events to bus while notifier is live.
func NewGuarded(bus Publisher, notifier *Notifier, notes store.NotificationStore) *Guarded {
	return &Guarded{bus: bus, live: notifier.Live, direct: NewDirect(notes)}
}

// Publish implements Publisher.
func (g *Guarded) Publish(ctx context.Context, e Event) error {
	if g.live() {
		return g.bus.Publish(ctx, e)
	}
	return g.direct.Publish(ctx, e)
}

// deliver stores the notification for e, if any.
func deliver(ctx context.Context, notes store.NotificationStore, e Event) (*models.Notification, error) {
	n, ok := ToNotification(e)
	if !ok {
		return nil, nil
	}
	if err := notes.AddNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("add notification: %w", err)
	}
	metrics.RecordNotification(string(n.Type))
	return n, nil
}
