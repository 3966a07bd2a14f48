// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/forkfeed/internal/models"
)

var commentColumns = []string{"id", "post_id", "author_id", "text", "created_at", "updated_at"}

func scanComment(row pgx.Row) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	return c, err
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
	query, args, err := s.sb.Insert("comments").
		Columns(commentColumns...).
		Values(c.ID, c.PostID, c.AuthorID, c.Text, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		switch pgCode(err) {
		case foreignKeyMissing:
			return models.NewNotFoundError("post", c.PostID)
		case uniqueViolation:
			return models.NewValidationError("id", "already exists")
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	query, args, err := s.sb.Select(commentColumns...).From("comments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	c, err := scanComment(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("comment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (s *Store) ListComments(ctx context.Context, post string) ([]models.Comment, error) {
	if err := s.postExists(ctx, post); err != nil {
		return nil, err
	}
	query, args, err := s.sb.Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"post_id": post}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	query, args, err := s.sb.Delete("comments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}
