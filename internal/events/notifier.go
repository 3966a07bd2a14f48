// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/store"
)

// NotifierConfig holds router settings.
type NotifierConfig struct {
	// RetryMax is the number of retries for a failing store write.
	RetryMax int

	// RetryInitialDelay is the first backoff interval.
	RetryInitialDelay time.Duration

	// CloseTimeout is how long handlers get to finish on shutdown.
	CloseTimeout time.Duration
}

// DefaultNotifierConfig returns production defaults.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		RetryMax:          3,
		RetryInitialDelay: 100 * time.Millisecond,
		CloseTimeout:      10 * time.Second,
	}
}

// Notifier consumes social events and stores notifications. It implements
// suture.Service; each Serve call builds a fresh Watermill router so a
// restart after a failure starts clean.
type Notifier struct {
	sub      message.Subscriber
	notes    store.NotificationStore
	config   NotifierConfig
	wmLogger watermill.LoggerAdapter
	logger   zerolog.Logger

	ready     chan struct{}
	readyOnce sync.Once
	live      atomic.Bool
}

// NewNotifier creates a Notifier reading from sub.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewNotifier(sub message.Subscriber, notes store.NotificationStore, cfg NotifierConfig, wmLogger watermill.LoggerAdapter, logger zerolog.Logger) *Notifier {
	if wmLogger == nil {
		wmLogger = watermill.NopLogger{}
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = DefaultNotifierConfig().CloseTimeout
	}
	if cfg.RetryInitialDelay <= 0 {
		cfg.RetryInitialDelay = DefaultNotifierConfig().RetryInitialDelay
	}
	return &Notifier{
		sub:      sub,
		notes:    notes,
		config:   cfg,
		wmLogger: wmLogger,
		logger:   logger.With().Str("component", "notifier").Logger(),
		ready:    make(chan struct{}),
	}
}

// Serve runs the router until ctx is canceled.
func (n *Notifier) Serve(ctx context.Context) error {
	router, err := n.newRouter()
	if err != nil {
		return err
	}

	stopped := make(chan struct{})
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		select {
		case <-router.Running():
			n.live.Store(true)
			n.readyOnce.Do(func() { close(n.ready) })
		case <-ctx.Done():
		case <-stopped:
		}
	}()

	err = router.Run(ctx)
	close(stopped)
	<-watched
	n.live.Store(false)

	if err != nil {
		return fmt.Errorf("notifier router: %w", err)
	}
	return ctx.Err()
}

// Running is closed once the first router is consuming.
func (n *Notifier) Running() <-chan struct{} {
	return n.ready
}

// Live reports whether a router is currently subscribed to every topic.
func (n *Notifier) Live() bool {
	return n.live.Load()
}

// String implements fmt.Stringer for supervisor logging.
func (n *Notifier) String() string {
	return "notifier"
}

func (n *Notifier) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: n.config.CloseTimeout}, n.wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Outermost: a message that still fails after retries is logged and
	// acked. gochannel would otherwise redeliver it forever.
	router.AddMiddleware(n.dropFailed)
	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      n.config.RetryMax,
		InitialInterval: n.config.RetryInitialDelay,
		MaxInterval:     10 * n.config.RetryInitialDelay,
		Multiplier:      2,
		Logger:          n.wmLogger,
	}.Middleware)

	for _, topic := range Topics {
		router.AddConsumerHandler("notify-"+topic, topic, n.sub, n.Handle)
	}
	return router, nil
}

// Handle stores the notification for one message. Undecodable payloads
// are dropped.
func (n *Notifier) Handle(msg *message.Message) error {
	e, err := Unmarshal(msg.Payload)
	if err != nil {
		n.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed event")
		return nil
	}

	ctx := msg.Context()
	if id := msg.Metadata.Get(MetadataCorrelationID); id != "" {
		ctx = logging.ContextWithCorrelationID(ctx, id)
	}

	note, err := deliver(ctx, n.notes, e)
	if err != nil {
		return err
	}
	if note != nil {
		n.logger.Debug().
			Str("type", string(note.Type)).
			Str("recipient_id", note.RecipientID).
			Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
			Msg("Notification created")
	}
	return nil
}

func (n *Notifier) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			n.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Notification dropped after retries")
			return nil, nil
		}
		return out, nil
	}
}
