// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package neo4jgraph implements store.GraphStore on Neo4j.
//
// Users are (:User {id, username, display_name, bio, location, joined_at})
// nodes and follows are (:User)-[:FOLLOWS {since}]->(:User) relationships.
// Mutual-follow overlap is a single Cypher traversal, see CoFollowCounts.
package neo4jgraph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

const (
	backendName = "neo4j"

	constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"
)

var (
	_ store.GraphStore      = (*Store)(nil)
	_ store.CoFollowCounter = (*Store)(nil)
)

// Config holds connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Store is a Neo4j-backed store.GraphStore.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	now      func() time.Time
}

// Open creates the driver, verifies connectivity and ensures the unique
// constraint on :User(id).
func Open(ctx context.Context, cfg Config) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	s := &Store{driver: driver, database: cfg.Database, now: time.Now}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the :User(id) uniqueness constraint.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.query(ctx,
		`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		nil, false)
	if err != nil {
		return fmt.Errorf("create user constraint: %w", err)
	}
	return nil
}

// Close closes the driver.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.driver.Close(ctx)
}

func observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(backendName, op, time.Since(start), err)
}

// query runs an auto-committed query and buffers the result.
func (s *Store) query(ctx context.Context, cypher string, params map[string]any, read bool) (*neo4j.EagerResult, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithDatabase(s.database)}
	if read {
		opts = append(opts, neo4j.ExecuteQueryWithReadersRouting())
	}
	return neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
}

func (s *Store) write(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)
	return session.ExecuteWrite(ctx, work)
}

func isConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError
	return errors.As(err, &neoErr) && neoErr.Code == constraintViolation
}

func stringColumn(records []*neo4j.Record, key string) ([]string, error) {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		v, isNil, err := neo4j.GetRecordValue[string](rec, key)
		if err != nil {
			return nil, err
		}
		if !isNil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (err error) {
	start := time.Now()
	defer func() { observe("create_user", start, err) }()
	if u == nil || u.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = s.now()
	}
	_, err = s.query(ctx, `
		CREATE (:User {id: $id, username: $username, display_name: $display_name,
		               bio: $bio, location: $location, joined_at: $joined_at})`,
		map[string]any{
			"id":           u.ID,
			"username":     u.Username,
			"display_name": u.DisplayName,
			"bio":          u.Bio,
			"location":     u.Location,
			"joined_at":    u.JoinedAt.UTC(),
		}, false)
	if isConstraintViolation(err) {
		return models.NewValidationError("id", "already exists")
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	res, err := s.query(ctx, `MATCH (u:User {id: $id}) RETURN u`, map[string]any{"id": id}, true)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(res.Records) == 0 {
		return nil, models.NewNotFoundError("user", id)
	}
	node, _, err := neo4j.GetRecordValue[neo4j.Node](res.Records[0], "u")
	if err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return nodeToUser(node), nil
}

func nodeToUser(n neo4j.Node) *models.User {
	u := &models.User{}
	u.ID, _ = n.Props["id"].(string)
	u.Username, _ = n.Props["username"].(string)
	u.DisplayName, _ = n.Props["display_name"].(string)
	u.Bio, _ = n.Props["bio"].(string)
	u.Location, _ = n.Props["location"].(string)
	if t, ok := n.Props["joined_at"].(time.Time); ok {
		u.JoinedAt = t
	}
	return u
}

func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	res, err := s.query(ctx, `MATCH (u:User) RETURN u.id AS id ORDER BY id`, nil, true)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return stringColumn(res.Records, "id")
}

func (s *Store) adjacency(ctx context.Context, cypher, user string) ([]string, error) {
	res, err := s.query(ctx, cypher, map[string]any{"id": user}, true)
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, models.NewNotFoundError("user", user)
	}
	raw, _, err := neo4j.GetRecordValue[[]any](res.Records[0], "ids")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Following(ctx context.Context, user string) ([]string, error) {
	return s.adjacency(ctx, `
		MATCH (u:User {id: $id})
		OPTIONAL MATCH (u)-[:FOLLOWS]->(f:User)
		RETURN collect(f.id) AS ids`, user)
}

func (s *Store) Followers(ctx context.Context, user string) ([]string, error) {
	return s.adjacency(ctx, `
		MATCH (u:User {id: $id})
		OPTIONAL MATCH (f:User)-[:FOLLOWS]->(u)
		RETURN collect(f.id) AS ids`, user)
}

// lockPair checks both users exist and takes a write lock on the follower
// node, which serializes every edge mutation from that follower.
func lockPair(ctx context.Context, tx neo4j.ManagedTransaction, follower, followed string) error {
	if follower == followed {
		return models.NewSelfReferenceError(follower)
	}
	res, err := tx.Run(ctx, `
		MATCH (u:User) WHERE u.id IN [$a, $b]
		SET u._lock = CASE WHEN u.id = $a THEN true ELSE u._lock END
		RETURN u.id AS id`,
		map[string]any{"a": follower, "b": followed})
	if err != nil {
		return err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return err
	}
	found, err := stringColumn(records, "id")
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}
	for _, id := range []string{follower, followed} {
		if !seen[id] {
			return models.NewNotFoundError("user", id)
		}
	}
	return nil
}

func hasEdge(ctx context.Context, tx neo4j.ManagedTransaction, follower, followed string) (bool, error) {
	res, err := tx.Run(ctx, `
		MATCH (:User {id: $a})-[r:FOLLOWS]->(:User {id: $b})
		RETURN count(r) AS n`,
		map[string]any{"a": follower, "b": followed})
	if err != nil {
		return false, err
	}
	rec, err := res.Single(ctx)
	if err != nil {
		return false, err
	}
	n, _, err := neo4j.GetRecordValue[int64](rec, "n")
	return n > 0, err
}

func (s *Store) setEdge(ctx context.Context, tx neo4j.ManagedTransaction, follower, followed string, on bool) error {
	params := map[string]any{"a": follower, "b": followed}
	cypher := `
		MATCH (a:User {id: $a})-[r:FOLLOWS]->(b:User {id: $b})
		DELETE r`
	if on {
		params["since"] = s.now().UTC()
		cypher = `
			MATCH (a:User {id: $a}), (b:User {id: $b})
			MERGE (a)-[r:FOLLOWS]->(b)
			ON CREATE SET r.since = $since`
	}
	_, err := tx.Run(ctx, cypher, params)
	return err
}

func (s *Store) AddEdge(ctx context.Context, follower, followed string) error {
	_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := lockPair(ctx, tx, follower, followed); err != nil {
			return nil, err
		}
		return nil, s.setEdge(ctx, tx, follower, followed, true)
	})
	return err
}

func (s *Store) RemoveEdge(ctx context.Context, follower, followed string) error {
	_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := lockPair(ctx, tx, follower, followed); err != nil {
			return nil, err
		}
		return nil, s.setEdge(ctx, tx, follower, followed, false)
	})
	return err
}

func (s *Store) IsFollowing(ctx context.Context, follower, followed string) (bool, error) {
	res, err := s.query(ctx, `
		MATCH (:User {id: $a})-[r:FOLLOWS]->(:User {id: $b})
		RETURN count(r) AS n`,
		map[string]any{"a": follower, "b": followed}, true)
	if err != nil {
		return false, err
	}
	if len(res.Records) == 0 {
		return false, nil
	}
	n, _, err := neo4j.GetRecordValue[int64](res.Records[0], "n")
	return n > 0, err
}

// ToggleFollow checks and flips the edge inside one write transaction while
// holding the follower's node lock.
func (s *Store) ToggleFollow(ctx context.Context, follower, followed string) (following bool, err error) {
	start := time.Now()
	defer func() { observe("toggle_follow", start, err) }()
	res, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := lockPair(ctx, tx, follower, followed); err != nil {
			return false, err
		}
		found, err := hasEdge(ctx, tx, follower, followed)
		if err != nil {
			return false, err
		}
		if err := s.setEdge(ctx, tx, follower, followed, !found); err != nil {
			return false, err
		}
		return !found, nil
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// CoFollowCounts counts, per other user, the distinct accounts both they
// and viewer follow.
func (s *Store) CoFollowCounts(ctx context.Context, viewer string) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { observe("co_follow_counts", start, err) }()
	res, err := s.query(ctx, `
		MATCH (v:User {id: $viewer})
		OPTIONAL MATCH (v)-[:FOLLOWS]->(f:User)<-[:FOLLOWS]-(u:User)
		WHERE u <> v
		RETURN u.id AS id, count(DISTINCT f) AS mutual`,
		map[string]any{"viewer": viewer}, true)
	if err != nil {
		return nil, fmt.Errorf("co-follow query: %w", err)
	}
	if len(res.Records) == 0 {
		return nil, models.NewNotFoundError("user", viewer)
	}
	counts = make(map[string]int, len(res.Records))
	for _, rec := range res.Records {
		id, isNil, err := neo4j.GetRecordValue[string](rec, "id")
		if err != nil {
			return nil, err
		}
		if isNil {
			continue
		}
		n, _, err := neo4j.GetRecordValue[int64](rec, "mutual")
		if err != nil {
			return nil, err
		}
		if n > 0 {
			counts[id] = int(n)
		}
	}
	return counts, nil
}
