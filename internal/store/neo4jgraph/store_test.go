// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

//go:build integration

package neo4jgraph

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/forkfeed/internal/store"
	"github.com/tomtom215/forkfeed/internal/store/storetest"
	"github.com/tomtom215/forkfeed/internal/testinfra"
)

func TestNeo4jGraphStore(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	n4j, err := testinfra.NewNeo4jContainer(ctx)
	if err != nil {
		t.Fatalf("start neo4j: %v", err)
	}
	defer testinfra.CleanupContainer(t, context.Background(), n4j.Container)

	s, err := Open(ctx, Config{URI: n4j.URI, Username: "neo4j", Password: testinfra.Neo4jPassword})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	storetest.RunGraph(t, func(t *testing.T) store.GraphStore {
		if _, err := s.query(context.Background(), `MATCH (n) DETACH DELETE n`, nil, false); err != nil {
			t.Fatalf("reset graph: %v", err)
		}
		return s
	})
}
