// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package badgerstore implements every store contract on an embedded
// BadgerDB v4 database.
//
// Key layout (parts joined by a NUL byte):
//
//	user/{id}                      -> User JSON
//	follow/{follower}/{followed}   -> since (unix nanos)
//	follower/{followed}/{follower} -> since (unix nanos)
//	post/{id}                      -> postRecord JSON
//	postseq/{seq}                  -> post id (insertion order)
//	like/{post}/{user}             -> at (unix nanos)
//	likes/{post}                   -> like count
//	comment/{id}                   -> commentRecord JSON
//	postcomment/{post}/{seq}       -> comment id
//	saved/{user}/{kind}/{target}   -> savedRecord JSON
//	notif/{id}                     -> Notification JSON
//	usernotif/{user}/{seq}         -> notification id
//
// Sequence numbers are big-endian so prefix iteration yields insertion order.
package badgerstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/store"
)

const (
	sep = "\x00"

	// maxConflictRetries bounds optimistic retries of toggle transactions.
	maxConflictRetries = 100
	conflictBackoff    = 100 * time.Microsecond

	backendName = "badger"
)

var (
	_ store.Store           = (*Store)(nil)
	_ store.CoFollowCounter = (*Store)(nil)
	_ store.PostStats       = (*Store)(nil)
)

// Config holds BadgerDB options.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM (tests, ephemeral deployments).
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool
}

// Store is a BadgerDB-backed store.Store.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time
}

// Open opens (or creates) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return New(db)
}

// New wraps an already open database. The Store owns db from here on.
func New(db *badger.DB) (*Store, error) {
	seq, err := db.GetSequence([]byte("meta"+sep+"seq"), 256)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("get sequence: %w", err)
	}
	return &Store{db: db, seq: seq, now: time.Now}, nil
}

// DB exposes the underlying database for the GC service.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Close releases the sequence lease and closes the database.
func (s *Store) Close() error {
	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close badger: %w", err))
	}
	return errors.Join(errs...)
}

func key(parts ...string) []byte {
	return []byte(strings.Join(parts, sep))
}

func prefix(parts ...string) []byte {
	return []byte(strings.Join(parts, sep) + sep)
}

func seqBytes(n uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return string(b[:])
}

func timeBytes(t time.Time) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(t.UnixNano()))
	return b[:]
}

func (s *Store) nextSeq() (uint64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}

func observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(backendName, op, time.Since(start), err)
}

// updateWithRetry runs fn in a read-write transaction, retrying when a
// concurrent commit touched the same keys.
func (s *Store) updateWithRetry(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * conflictBackoff)
	}
	return fmt.Errorf("transaction conflict after %d attempts: %w", maxConflictRetries, err)
}

// exists reports whether k is present in txn.
func exists(txn *badger.Txn, k []byte) (bool, error) {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// suffixes returns the remainder of every key under p, in key order.
func suffixes(txn *badger.Txn, p []byte) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = p
	it := txn.NewIterator(opts)
	defer it.Close()

	var out []string
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		out = append(out, string(it.Item().Key()[len(p):]))
	}
	return out
}

// values returns a copy of every value under p, in key order (or reverse).
func values(txn *badger.Txn, p []byte, reverse bool) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	defer it.Close()

	start := p
	if reverse {
		start = append(append([]byte{}, p...), 0xFF)
	}

	var out [][]byte
	for it.Seek(start); it.ValidForPrefix(p); it.Next() {
		v, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// keysUnder returns copies of every key under p.
func keysUnder(txn *badger.Txn, p []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = p
	it := txn.NewIterator(opts)
	defer it.Close()

	var out [][]byte
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		out = append(out, it.Item().KeyCopy(nil))
	}
	return out
}
