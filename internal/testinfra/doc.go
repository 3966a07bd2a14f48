// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package testinfra starts PostgreSQL, Neo4j and Redis containers for
// integration tests with testcontainers-go.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/store/... ./internal/cache/...
//
// Tests call SkipIfNoDocker first so they skip cleanly where Docker is
// missing:
//
//	func TestPostgresPostStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg.Container)
//	    // connect with pg.DSN
//	}
//
// The first run pulls images. Later runs use the local image cache.
package testinfra
