// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/forkfeed/internal/logging"
)

// DefaultGCDiscardRatio is the value-log file discard ratio passed to Badger.
const DefaultGCDiscardRatio = 0.5

// GCService periodically reclaims value-log space. It implements
// suture.Service.
type GCService struct {
	db       *badger.DB
	interval time.Duration
	ratio    float64
}

// NewGCService creates a GC service for s running every interval.
func NewGCService(s *Store, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{db: s.DB(), interval: interval, ratio: DefaultGCDiscardRatio}
}

// Serve runs until ctx is canceled.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Badger value log GC failed")
			}
		}
	}
}

// RunGC rewrites value-log files until Badger reports nothing left to
// reclaim. In-memory databases have no value log and return nil.
func (g *GCService) RunGC() error {
	if g.db.Opts().InMemory {
		return nil
	}
	for {
		err := g.db.RunValueLogGC(g.ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

func (g *GCService) String() string {
	return "badger-gc"
}
