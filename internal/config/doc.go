// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package config loads Forkfeed configuration with Koanf v2.

Sources are applied in order, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file from CONFIG_PATH, ./config.yaml or /etc/forkfeed/config.yaml
 3. Environment variables, through an explicit name mapping

A .env file (DOTENV_PATH or ./.env) is read into the process environment
before step 3. Variables already set in the environment are not overridden.

# Example config.yaml

	server:
	  port: 8080
	storage:
	  driver: badger
	  badger_path: /var/lib/forkfeed
	cache:
	  driver: redis
	  redis_url: redis://cache:6379/0
	recommend:
	  limit: 5
	  cache_ttl: 1h
	  exclude_followed: false

# Common Environment Variables

  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT
  - LOG_LEVEL, LOG_FORMAT
  - STORAGE_DRIVER (memory, badger), BADGER_PATH
  - GRAPH_DRIVER (store, neo4j), NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD
  - POSTS_DRIVER (store, postgres), POSTGRES_DSN or DATABASE_URL
  - CACHE_DRIVER (memory, lru, redis), REDIS_URL
  - RECOMMEND_LIMIT, RECOMMEND_CACHE_TTL, RECOMMEND_SEED, RECOMMEND_EXCLUDE_FOLLOWED
  - CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, DISABLE_RATE_LIMIT
*/
package config
