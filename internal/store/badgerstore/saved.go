// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package badgerstore

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/forkfeed/internal/models"
)

type savedRecord struct {
	Item models.SavedItem `json:"item"`
	Seq  uint64           `json:"seq"`
}

func (s *Store) ToggleSaved(ctx context.Context, item *models.SavedItem) (saved bool, err error) {
	if item == nil || item.UserID == "" || item.TargetID == "" {
		return false, models.NewValidationError("target_id", "is required")
	}
	cp := *item
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = s.now()
	}
	seq, err := s.nextSeq()
	if err != nil {
		return false, err
	}
	k := key("saved", item.UserID, string(item.Kind), item.TargetID)
	err = s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, k)
		if err != nil {
			return err
		}
		saved = !found
		if found {
			return txn.Delete(k)
		}
		return setJSON(txn, k, savedRecord{Item: cp, Seq: seq})
	})
	if err != nil {
		return false, err
	}
	if saved {
		*item = cp
	}
	return saved, nil
}

func (s *Store) ListSaved(_ context.Context, user string, kind models.PlaceKind) ([]models.SavedItem, error) {
	p := prefix("saved", user)
	if kind != "" {
		p = prefix("saved", user, string(kind))
	}
	var recs []savedRecord
	err := s.db.View(func(txn *badger.Txn) error {
		raw, err := values(txn, p, false)
		if err != nil {
			return err
		}
		recs = make([]savedRecord, len(raw))
		for i, v := range raw {
			if err := json.Unmarshal(v, &recs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Item.CreatedAt.Equal(recs[j].Item.CreatedAt) {
			return recs[i].Item.CreatedAt.After(recs[j].Item.CreatedAt)
		}
		return recs[i].Seq > recs[j].Seq
	})
	out := make([]models.SavedItem, len(recs))
	for i, r := range recs {
		out[i] = r.Item
	}
	return out, nil
}
