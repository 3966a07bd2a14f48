// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type fakeEngine struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]bool
	called chan struct{}
}

func (f *fakeEngine) SuggestUsers(ctx context.Context, viewer string) ([]string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, viewer)
	f.mu.Unlock()
	if f.called != nil {
		select {
		case f.called <- struct{}{}:
		default:
		}
	}
	if f.failOn[viewer] {
		return nil, errors.New("graph unavailable")
	}
	return []string{"x"}, nil
}

func (f *fakeEngine) viewers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeLister struct {
	ids []string
	err error
}

func (f fakeLister) ListUserIDs(ctx context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestSuggestionWarmer_Interface(t *testing.T) {
	t.Parallel()
	var _ suture.Service = (*SuggestionWarmer)(nil)
}

func TestSuggestionWarmer_WarmOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ids        []string
		failOn     map[string]bool
		maxUsers   int
		wantWarmed int
		wantCalls  int
	}{
		{"all users", []string{"a", "b", "c"}, nil, 0, 3, 3},
		{"capped", []string{"a", "b", "c"}, nil, 2, 2, 2},
		{"per-user failure skipped", []string{"a", "b", "c"}, map[string]bool{"b": true}, 0, 2, 3},
		{"no users", nil, nil, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &fakeEngine{failOn: tt.failOn}
			w := NewSuggestionWarmer(engine, fakeLister{ids: tt.ids}, WarmerConfig{MaxUsers: tt.maxUsers}, zerolog.Nop())

			warmed, err := w.WarmOnce(context.Background())
			if err != nil {
				t.Fatalf("WarmOnce() error = %v", err)
			}
			if warmed != tt.wantWarmed {
				t.Errorf("warmed = %d, want %d", warmed, tt.wantWarmed)
			}
			if got := len(engine.viewers()); got != tt.wantCalls {
				t.Errorf("engine calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestSuggestionWarmer_ListFailure(t *testing.T) {
	t.Parallel()

	listErr := errors.New("store closed")
	w := NewSuggestionWarmer(&fakeEngine{}, fakeLister{err: listErr}, WarmerConfig{}, zerolog.Nop())
	if _, err := w.WarmOnce(context.Background()); !errors.Is(err, listErr) {
		t.Errorf("WarmOnce() error = %v, want %v", err, listErr)
	}
}

func TestSuggestionWarmer_CanceledPass(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &fakeEngine{}
	w := NewSuggestionWarmer(engine, fakeLister{ids: []string{"a", "b"}}, WarmerConfig{}, zerolog.Nop())
	if _, err := w.WarmOnce(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("WarmOnce() error = %v, want context.Canceled", err)
	}
	if len(engine.viewers()) != 0 {
		t.Errorf("engine called after cancel: %v", engine.viewers())
	}
}

func TestSuggestionWarmer_ServeWarmsOnStartup(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{called: make(chan struct{}, 1)}
	w := NewSuggestionWarmer(engine, fakeLister{ids: []string{"a"}}, WarmerConfig{
		Interval:      time.Hour,
		WarmOnStartup: true,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Serve(ctx) }()

	select {
	case <-engine.called:
	case <-time.After(time.Second):
		t.Fatal("startup warm did not run")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestSuggestionWarmer_Defaults(t *testing.T) {
	t.Parallel()

	w := NewSuggestionWarmer(&fakeEngine{}, fakeLister{}, WarmerConfig{}, zerolog.Nop())
	if w.config.Interval != time.Hour {
		t.Errorf("Interval = %v, want 1h", w.config.Interval)
	}
	if w.String() != "suggestion-warmer" {
		t.Errorf("String() = %q", w.String())
	}
}
