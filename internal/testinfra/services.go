// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used for post store tests.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultNeo4jImage is the Neo4j image used for graph store tests.
	DefaultNeo4jImage = "neo4j:5-community"

	// DefaultRedisImage is the Redis image used for cache tests.
	DefaultRedisImage = "redis:7-alpine"

	// Neo4jPassword is the password configured on the test Neo4j instance.
	Neo4jPassword = "forkfeed-test"
)

// PostgresContainer is a running PostgreSQL instance.
type PostgresContainer struct {
	*Service
	DSN string
}

// NewPostgresContainer starts PostgreSQL with a "forkfeed" database.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	svc, err := startService(ctx, DefaultPostgresImage, "5432",
		map[string]string{
			"POSTGRES_USER":     "forkfeed",
			"POSTGRES_PASSWORD": "forkfeed",
			"POSTGRES_DB":       "forkfeed",
		},
		wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(90*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &PostgresContainer{
		Service: svc,
		DSN:     fmt.Sprintf("postgres://forkfeed:forkfeed@%s/forkfeed?sslmode=disable", svc.Addr()),
	}, nil
}

// Neo4jContainer is a running Neo4j instance.
type Neo4jContainer struct {
	*Service
	URI string
}

// NewNeo4jContainer starts Neo4j with auth neo4j/Neo4jPassword.
func NewNeo4jContainer(ctx context.Context) (*Neo4jContainer, error) {
	svc, err := startService(ctx, DefaultNeo4jImage, "7687",
		map[string]string{
			"NEO4J_AUTH": "neo4j/" + Neo4jPassword,
		},
		wait.ForAll(
			wait.ForListeningPort("7687/tcp"),
			wait.ForLog("Started."),
		).WithStartupTimeout(2*time.Minute),
	)
	if err != nil {
		return nil, err
	}
	return &Neo4jContainer{Service: svc, URI: "neo4j://" + svc.Addr()}, nil
}

// RedisContainer is a running Redis instance.
type RedisContainer struct {
	*Service
	URL string
}

// NewRedisContainer starts Redis without persistence.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	svc, err := startService(ctx, DefaultRedisImage, "6379", nil,
		wait.ForListeningPort("6379/tcp").WithStartupTimeout(60*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &RedisContainer{Service: svc, URL: "redis://" + svc.Addr() + "/0"}, nil
}
