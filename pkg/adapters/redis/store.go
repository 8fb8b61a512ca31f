// Package redis persists optimization results in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/flowant/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "flowant:"

// noExpiry is the index score of results without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.ResultStore using Redis.
// Results are JSON strings under prefix+runID; a sorted set under prefix+"index"
// maps run IDs to their expiry time so List can prune expired entries.
type Store struct {
	client *backend.Client
	ttl    time.Duration
	prefix string
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration of stored results. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to a Redis server.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(runID string) string {
	return s.prefix + runID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save persists the result.
func (s *Store) Save(ctx context.Context, result *domain.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	score := float64(noExpiry)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(result.RunID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: result.RunID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result %s: %w", result.RunID, err)
	}
	return nil
}

// Load retrieves a result.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Result, error) {
	data, err := s.client.Get(ctx, s.key(runID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result %s: %w", runID, err)
	}

	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result %s: %w", runID, err)
	}
	return &result, nil
}

// Delete removes a result. Deleting an unknown run is not an error.
func (s *Store) Delete(ctx context.Context, runID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(runID))
	pipe.ZRem(ctx, s.indexKey(), runID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete result %s: %w", runID, err)
	}
	return nil
}

// List returns the IDs of the stored runs, oldest expiry first.
// Expired entries are removed from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune run index: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return ids, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.client.Close()
}
