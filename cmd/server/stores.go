// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/forkfeed/internal/config"
	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/store"
	"github.com/tomtom215/forkfeed/internal/store/badgerstore"
	"github.com/tomtom215/forkfeed/internal/store/memory"
	"github.com/tomtom215/forkfeed/internal/store/neo4jgraph"
	"github.com/tomtom215/forkfeed/internal/store/postgres"
)

// storeSet is the resolved persistence layout. Graph and Posts point at
// base unless an external backend replaces them.
type storeSet struct {
	base          store.Store
	Graph         store.GraphStore
	Posts         store.PostStore
	Saved         store.SavedStore
	Notifications store.NotificationStore

	closers []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

// openStores opens the base store and any external graph or post backend.
// On error everything opened so far is closed.
func openStores(ctx context.Context, cfg *config.Config) (_ *storeSet, err error) {
	s := &storeSet{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	switch cfg.Storage.Driver {
	case config.StorageBadger:
		bs, err := badgerstore.Open(badgerstore.Config{
			Path:     cfg.Storage.BadgerPath,
			InMemory: cfg.Storage.BadgerInMemory,
		})
		if err != nil {
			return nil, err
		}
		s.base = bs
		s.closers = append(s.closers, namedCloser{"badger", bs})
		logging.Info().Str("path", cfg.Storage.BadgerPath).Bool("in_memory", cfg.Storage.BadgerInMemory).Msg("Badger store opened")
	default:
		s.base = memory.New()
		logging.Warn().Msg("Using in-memory store; data is lost on restart")
	}

	s.Graph = s.base
	s.Posts = s.base
	s.Saved = s.base
	s.Notifications = s.base

	if cfg.Graph.Driver == config.DriverNeo4j {
		g, err := neo4jgraph.Open(ctx, neo4jgraph.Config{
			URI:      cfg.Graph.Neo4jURI,
			Username: cfg.Graph.Neo4jUsername,
			Password: cfg.Graph.Neo4jPassword,
			Database: cfg.Graph.Neo4jDatabase,
		})
		if err != nil {
			return nil, fmt.Errorf("open neo4j graph: %w", err)
		}
		s.Graph = g
		s.closers = append(s.closers, namedCloser{"neo4j", g})
		logging.Info().Str("uri", cfg.Graph.Neo4jURI).Msg("Neo4j follow graph connected")
	}

	if cfg.Posts.Driver == config.DriverPostgres {
		p, err := postgres.Open(ctx, postgres.Config{
			DSN:      cfg.Posts.PostgresDSN,
			MaxConns: cfg.Posts.PostgresMaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres posts: %w", err)
		}
		s.Posts = p
		s.closers = append(s.closers, namedCloser{"postgres", p})
		logging.Info().Msg("PostgreSQL post store connected")
	}

	return s, nil
}

// Close closes external backends first, then the base store.
func (s *storeSet) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].c.Close(); err != nil {
			logging.Error().Err(err).Str("store", s.closers[i].name).Msg("Error closing store")
		}
	}
	s.closers = nil
}
