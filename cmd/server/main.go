// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/forkfeed/internal/api"
	"github.com/tomtom215/forkfeed/internal/cache"
	"github.com/tomtom215/forkfeed/internal/config"
	"github.com/tomtom215/forkfeed/internal/events"
	"github.com/tomtom215/forkfeed/internal/feed"
	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/recommend"
	"github.com/tomtom215/forkfeed/internal/social"
	"github.com/tomtom215/forkfeed/internal/store/badgerstore"
	"github.com/tomtom215/forkfeed/internal/supervisor"
	"github.com/tomtom215/forkfeed/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Forkfeed exited with error")
	}
}

//nolint:gocyclo // sequential setup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("storage", cfg.Storage.Driver).
		Str("graph", cfg.Graph.Driver).
		Str("posts", cfg.Posts.Driver).
		Str("cache", cfg.Cache.Driver).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting Forkfeed")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	c, err := cache.NewCacher(cache.CacheConfig{
		Type:     cache.CacheType(cfg.Cache.Driver),
		TTL:      cfg.Cache.DefaultTTL,
		Capacity: cfg.Cache.LRUCapacity,
		Redis: cache.RedisConfig{
			URL:             cfg.Cache.RedisURL,
			Prefix:          cfg.Cache.RedisPrefix,
			BreakerFailures: cfg.Cache.BreakerFailures,
			BreakerTimeout:  cfg.Cache.BreakerTimeout,
		},
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	if rc, ok := c.(*cache.RedisCache); ok {
		defer func() {
			if err := rc.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing redis cache")
			}
		}()
	}

	engine, err := recommend.NewEngine(&recommend.Config{
		Limit:           cfg.Recommend.Limit,
		CacheTTL:        cfg.Recommend.CacheTTL,
		Seed:            cfg.Recommend.Seed,
		ExcludeFollowed: cfg.Recommend.ExcludeFollowed,
	}, stores.Graph, c, logging.Logger())
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	ranker := feed.NewRanker(stores.Graph, stores.Posts, engine, feed.Config{
		TrendingTagsLimit: cfg.Feed.TrendingTagsLimit,
	}, logging.Logger())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	var publisher events.Publisher
	if cfg.Events.Enabled {
		wmLogger := watermill.NewSlogLogger(logging.NewSlogLoggerWithComponent("watermill"))
		bus := events.NewBus(events.BusConfig{Buffer: cfg.Events.Buffer}, wmLogger)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()

		notifier := events.NewNotifier(bus.Subscriber(), stores.Notifications, events.NotifierConfig{
			RetryMax:          cfg.Events.RetryMax,
			RetryInitialDelay: cfg.Events.RetryInitialDelay,
			CloseTimeout:      cfg.Events.RouterCloseTimeout,
		}, wmLogger, logging.Logger())
		tree.AddMessagingService(notifier)
		publisher = events.NewGuarded(bus, notifier, stores.Notifications)
	} else {
		publisher = events.NewDirect(stores.Notifications)
	}

	svc := social.NewService(social.Stores{
		Graph:         stores.Graph,
		Posts:         stores.Posts,
		Saved:         stores.Saved,
		Notifications: stores.Notifications,
	}, publisher, logging.Logger())

	if bs, ok := stores.base.(*badgerstore.Store); ok {
		tree.AddDataService(badgerstore.NewGCService(bs, cfg.Storage.BadgerGCInterval))
	}
	if mc, ok := c.(*cache.Cache); ok {
		if cfg.Cache.CleanupInterval > 0 {
			mc.CleanupInterval = cfg.Cache.CleanupInterval
		}
		tree.AddDataService(mc)
	}
	if cfg.Recommend.WarmInterval > 0 {
		tree.AddDataService(services.NewSuggestionWarmer(engine, stores.Graph, services.WarmerConfig{
			Interval:      cfg.Recommend.WarmInterval,
			WarmOnStartup: true,
			MaxUsers:      cfg.Recommend.WarmMaxUsers,
		}, logging.Logger()))
	}

	handler := api.NewHandler(svc, ranker, engine, c)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.API)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	logging.Info().Str("addr", server.Addr).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, u := range report {
			logging.Warn().Str("service", u.Name).Msg("Service did not stop in time")
		}
	}
	logging.Info().Msg("Forkfeed stopped")
	return nil
}
