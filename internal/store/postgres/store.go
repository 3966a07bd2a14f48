// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package postgres implements store.PostStore on PostgreSQL using a pgx
// connection pool and squirrel-built queries.
//
// Likes are rows in post_likes keyed by (post_id, user_id). Comments and
// likes reference posts with ON DELETE CASCADE, so deleting a post removes
// both in the same statement.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

const (
	backendName       = "postgres"
	uniqueViolation   = "23505"
	foreignKeyMissing = "23503"
)

var (
	_ store.PostStore = (*Store)(nil)
	_ store.PostStats = (*Store)(nil)
)

var postColumns = []string{
	"id", "author_id", "content", "tags", "category", "location",
	"shared_from_id", "place", "created_at", "updated_at",
}

// Config holds connection settings.
type Config struct {
	DSN      string
	MaxConns int32
}

// Store is a PostgreSQL-backed store.PostStore.
type Store struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
	now  func() time.Time
}

// Open connects, pings and applies the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := New(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool. The caller applies Migrate.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:  time.Now,
	}
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(backendName, op, time.Since(start), err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func scanPost(row pgx.Row) (models.Post, error) {
	var (
		p        models.Post
		category string
		place    []byte
	)
	err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Tags, &category, &p.Location,
		&p.SharedFromID, &place, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Category = models.Category(category)
	if len(place) > 0 {
		p.Place = &models.SharedPlace{}
		if err := json.Unmarshal(place, p.Place); err != nil {
			return p, fmt.Errorf("decode place: %w", err)
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func (s *Store) queryPosts(ctx context.Context, q sq.SelectBuilder) ([]models.Post, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) AllPosts(ctx context.Context) (posts []models.Post, err error) {
	start := time.Now()
	defer func() { observe("all_posts", start, err) }()
	return s.queryPosts(ctx, s.sb.Select(postColumns...).From("posts").OrderBy("seq"))
}

func (s *Store) PostsByAuthorIn(ctx context.Context, authors []string) ([]models.Post, error) {
	if len(authors) == 0 {
		return []models.Post{}, nil
	}
	return s.queryPosts(ctx, s.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"author_id": authors}).
		OrderBy("seq"))
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
	var place []byte
	if p.Place != nil {
		if place, err = json.Marshal(p.Place); err != nil {
			return fmt.Errorf("encode place: %w", err)
		}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	query, args, err := s.sb.Insert("posts").
		Columns(postColumns...).
		Values(p.ID, p.AuthorID, p.Content, tags, string(p.Category), p.Location,
			p.SharedFromID, place, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		if pgCode(err) == uniqueViolation {
			return models.NewValidationError("id", "already exists")
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	query, args, err := s.sb.Select(postColumns...).From("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	p, err := scanPost(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete_post", start, err) }()
	query, args, err := s.sb.Delete("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}

// ToggleLike locks the post row so concurrent toggles on one post serialize,
// then deletes the membership row or inserts it when none was deleted.
func (s *Store) ToggleLike(ctx context.Context, user, post string) (liked bool, count int, err error) {
	start := time.Now()
	defer func() { observe("toggle_like", start, err) }()

	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		lockQ, lockArgs, err := s.sb.Select("id").From("posts").Where(sq.Eq{"id": post}).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return err
		}
		var id string
		if err := tx.QueryRow(ctx, lockQ, lockArgs...).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.NewNotFoundError("post", post)
			}
			return fmt.Errorf("lock post: %w", err)
		}

		delQ, delArgs, err := s.sb.Delete("post_likes").Where(sq.Eq{"post_id": post, "user_id": user}).ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, delQ, delArgs...)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		liked = tag.RowsAffected() == 0
		if liked {
			insQ, insArgs, err := s.sb.Insert("post_likes").
				Columns("post_id", "user_id", "created_at").
				Values(post, user, s.now()).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, insQ, insArgs...); err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
		}
		count, err = countLikes(ctx, tx, s.sb, post)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countLikes(ctx context.Context, q querier, sb sq.StatementBuilderType, post string) (int, error) {
	query, args, err := sb.Select("COUNT(*)").From("post_likes").Where(sq.Eq{"post_id": post}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (s *Store) postExists(ctx context.Context, id string) error {
	query, args, err := s.sb.Select("1").From("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	var one int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewNotFoundError("post", id)
		}
		return fmt.Errorf("get post: %w", err)
	}
	return nil
}

func (s *Store) LikeCount(ctx context.Context, post string) (int, error) {
	if err := s.postExists(ctx, post); err != nil {
		return 0, err
	}
	return countLikes(ctx, s.pool, s.sb, post)
}

func (s *Store) HasLiked(ctx context.Context, user, post string) (bool, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("post_likes").
		Where(sq.Eq{"post_id": post, "user_id": user}).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("has liked: %w", err)
	}
	return n > 0, nil
}

// Stats returns counts for ids with one query.
func (s *Store) Stats(ctx context.Context, ids []string, viewer string) (map[string]store.Counts, error) {
	out := make(map[string]store.Counts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := s.sb.Select("p.id").
		Column("(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id)").
		Column("(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)").
		Column(sq.Expr("EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = ?)", viewer)).
		From("posts p").
		Where(sq.Eq{"p.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			c  store.Counts
		)
		if err := rows.Scan(&id, &c.Likes, &c.Comments, &c.Liked); err != nil {
			return nil, err
		}
		out[id] = c
	}
	return out, rows.Err()
}
