// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package badgerstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

type postRecord struct {
	Post models.Post `json:"post"`
	Seq  uint64      `json:"seq"`
}

type commentRecord struct {
	Comment models.Comment `json:"comment"`
	Seq     uint64         `json:"seq"`
}

func postKey(id string) []byte    { return key("post", id) }
func commentKey(id string) []byte { return key("comment", id) }
func likeCountKey(post string) []byte {
	return key("likes", post)
}

func getJSON(txn *badger.Txn, k []byte, v any) (bool, error) {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, k []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return txn.Set(k, data)
}

func getPost(txn *badger.Txn, id string) (*postRecord, error) {
	var rec postRecord
	found, err := getJSON(txn, postKey(id), &rec)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if !found {
		return nil, models.NewNotFoundError("post", id)
	}
	return &rec, nil
}

func readCount(txn *badger.Txn, k []byte) (int, error) {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt counter %q", k)
		}
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return int(n), err
}

func writeCount(txn *badger.Txn, k []byte, n int) error {
	if n <= 0 {
		return txn.Delete(k)
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	return txn.Set(k, b[:])
}

// scanPosts decodes posts in insertion order, keeping those accepted by keep.
func (s *Store) scanPosts(keep func(*models.Post) bool) ([]models.Post, error) {
	out := make([]models.Post, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		ids, err := values(txn, prefix("postseq"), false)
		if err != nil {
			return err
		}
		for _, id := range ids {
			rec, err := getPost(txn, string(id))
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if keep == nil || keep(&rec.Post) {
				out = append(out, rec.Post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) AllPosts(_ context.Context) (posts []models.Post, err error) {
	start := time.Now()
	defer func() { observe("all_posts", start, err) }()
	return s.scanPosts(nil)
}

func (s *Store) PostsByAuthorIn(_ context.Context, authors []string) ([]models.Post, error) {
	if len(authors) == 0 {
		return []models.Post{}, nil
	}
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return s.scanPosts(func(p *models.Post) bool {
		_, ok := set[p.AuthorID]
		return ok
	})
}

func (s *Store) CreatePost(ctx context.Context, p *models.Post) (err error) {
	start := time.Now()
	defer func() { observe("create_post", start, err) }()
	if p == nil || p.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}
	rec := postRecord{Post: p.Clone(), Seq: seq}
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, postKey(p.ID))
		if err != nil {
			return fmt.Errorf("get post: %w", err)
		}
		if found {
			return models.NewValidationError("id", "already exists")
		}
		if err := setJSON(txn, postKey(p.ID), rec); err != nil {
			return err
		}
		return txn.Set(key("postseq", seqBytes(seq)), []byte(p.ID))
	})
}

func (s *Store) GetPost(_ context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		rec, err := getPost(txn, id)
		if err != nil {
			return err
		}
		post = rec.Post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the post, its order index, likes and comments in one
// transaction.
func (s *Store) DeletePost(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete_post", start, err) }()
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		rec, err := getPost(txn, id)
		if err != nil {
			return err
		}
		doomed := [][]byte{postKey(id), key("postseq", seqBytes(rec.Seq)), likeCountKey(id)}
		doomed = append(doomed, keysUnder(txn, prefix("like", id))...)

		commentIDs, err := values(txn, prefix("postcomment", id), false)
		if err != nil {
			return err
		}
		for _, cid := range commentIDs {
			doomed = append(doomed, commentKey(string(cid)))
		}
		doomed = append(doomed, keysUnder(txn, prefix("postcomment", id))...)

		for _, k := range doomed {
			if err := txn.Delete(k); err != nil {
				return fmt.Errorf("delete %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *Store) ToggleLike(ctx context.Context, user, post string) (liked bool, count int, err error) {
	start := time.Now()
	defer func() { observe("toggle_like", start, err) }()
	err = s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		if _, err := getPost(txn, post); err != nil {
			return err
		}
		lk := key("like", post, user)
		found, err := exists(txn, lk)
		if err != nil {
			return err
		}
		n, err := readCount(txn, likeCountKey(post))
		if err != nil {
			return err
		}
		if found {
			liked, count = false, n-1
			if err := txn.Delete(lk); err != nil {
				return err
			}
		} else {
			liked, count = true, n+1
			if err := txn.Set(lk, timeBytes(s.now())); err != nil {
				return err
			}
		}
		return writeCount(txn, likeCountKey(post), count)
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (s *Store) LikeCount(_ context.Context, post string) (int, error) {
	var n int
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getPost(txn, post); err != nil {
			return err
		}
		var err error
		n, err = readCount(txn, likeCountKey(post))
		return err
	})
	return n, err
}

func (s *Store) HasLiked(_ context.Context, user, post string) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = exists(txn, key("like", post, user))
		return err
	})
	return found, err
}

func (s *Store) AddComment(ctx context.Context, c *models.Comment) (err error) {
	start := time.Now()
	defer func() { observe("add_comment", start, err) }()
	if c == nil || c.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}
	rec := commentRecord{Comment: *c, Seq: seq}
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		if _, err := getPost(txn, c.PostID); err != nil {
			return err
		}
		found, err := exists(txn, commentKey(c.ID))
		if err != nil {
			return err
		}
		if found {
			return models.NewValidationError("id", "already exists")
		}
		if err := setJSON(txn, commentKey(c.ID), rec); err != nil {
			return err
		}
		return txn.Set(key("postcomment", c.PostID, seqBytes(seq)), []byte(c.ID))
	})
}

func getComment(txn *badger.Txn, id string) (*commentRecord, error) {
	var rec commentRecord
	found, err := getJSON(txn, commentKey(id), &rec)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if !found {
		return nil, models.NewNotFoundError("comment", id)
	}
	return &rec, nil
}

func (s *Store) GetComment(_ context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		rec, err := getComment(txn, id)
		if err != nil {
			return err
		}
		c = rec.Comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListComments(_ context.Context, post string) ([]models.Comment, error) {
	out := make([]models.Comment, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getPost(txn, post); err != nil {
			return err
		}
		ids, err := values(txn, prefix("postcomment", post), false)
		if err != nil {
			return err
		}
		for _, id := range ids {
			rec, err := getComment(txn, string(id))
			if err != nil {
				return err
			}
			out = append(out, rec.Comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		rec, err := getComment(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(commentKey(id)); err != nil {
			return err
		}
		return txn.Delete(key("postcomment", rec.Comment.PostID, seqBytes(rec.Seq)))
	})
}

// Stats reads every counter inside one read transaction.
func (s *Store) Stats(_ context.Context, ids []string, viewer string) (map[string]store.Counts, error) {
	out := make(map[string]store.Counts, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			likes, err := readCount(txn, likeCountKey(id))
			if err != nil {
				return err
			}
			c := store.Counts{
				Likes:    likes,
				Comments: len(keysUnder(txn, prefix("postcomment", id))),
			}
			if viewer != "" {
				if c.Liked, err = exists(txn, key("like", id, viewer)); err != nil {
					return err
				}
			}
			out[id] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
