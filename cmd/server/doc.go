// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package main is the entry point for the Forkfeed server.

Forkfeed is a social food discovery service: users post about dishes and
places, follow each other, like, comment and save restaurants, recipes and
grocery stores. The server ranks a filtered home feed, lists trending tags
and suggests users to follow from mutual-follow overlap.

# Application Architecture

	RootSupervisor ("forkfeed")
	├── DataSupervisor ("data-layer")
	│   ├── Badger value-log GC (STORAGE_DRIVER=badger)
	│   ├── cache janitor (CACHE_DRIVER=memory)
	│   └── suggestion warmer (RECOMMEND_WARM_INTERVAL > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   └── notification router (EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Component initialization order:

 1. Configuration: koanf v2 (defaults, optional YAML file, .env, environment)
 2. Logging: zerolog, json or console
 3. Stores: memory or Badger, with optional Neo4j follow graph and
    PostgreSQL posts
 4. Cache: TTL map, LRU or Redis behind a circuit breaker
 5. Recommendation engine and feed ranker
 6. Social service with the Watermill notification bus
 7. Chi router and HTTP server
 8. Supervisor tree

# Configuration

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info LOG_FORMAT=json
	STORAGE_DRIVER=badger BADGER_PATH=/data/forkfeed
	GRAPH_DRIVER=neo4j NEO4J_URI=neo4j://localhost:7687
	POSTS_DRIVER=postgres DATABASE_URL=postgres://forkfeed@localhost/forkfeed
	CACHE_DRIVER=redis REDIS_URL=redis://localhost:6379/0
	RECOMMEND_LIMIT=5 RECOMMEND_CACHE_TTL=1h

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT, then the notifier router and
stores are closed.
*/
package main
