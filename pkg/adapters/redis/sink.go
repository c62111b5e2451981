package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/transposer/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Sink implements ports.Sink using Redis.
// Each result is a JSON string key; a sorted set per piece indexes its destinations.
type Sink struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.Sink = (*Sink)(nil)

type Option func(*Sink)

// WithTTL sets the expiration for results.
func WithTTL(ttl time.Duration) Option {
	return func(s *Sink) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for results.
func WithPrefix(prefix string) Option {
	return func(s *Sink) {
		s.prefix = prefix
	}
}

// New creates a new Redis sink with options.
func New(address, password string, db int, opts ...Option) *Sink {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis sink from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	sink := &Sink{
		client: client,
		prefix: "transposer:result:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(sink)
	}

	return sink
}

// Client exposes the underlying client, e.g. to build a Locker on the same connection.
func (s *Sink) Client() *backend.Client {
	return s.client
}

func (s *Sink) key(piece, destination string) string {
	return s.prefix + piece + ":" + destination
}

func (s *Sink) indexKey(piece string) string {
	return s.prefix + piece + ":index"
}

// Write persists the result and indexes it under its piece.
func (s *Sink) Write(ctx context.Context, res ports.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(res.Piece, res.Destination.Name), data, s.ttl)

	// Score = expiry time, so List can prune entries whose key has expired.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(res.Piece), backend.Z{
		Score:  score,
		Member: res.Destination.Name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Read retrieves a result from Redis.
func (s *Sink) Read(ctx context.Context, piece, destination string) (*ports.Result, error) {
	val, err := s.client.Get(ctx, s.key(piece, destination)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ports.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var res ports.Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &res, nil
}

// List returns the destinations written for a piece, pruning expired entries first.
func (s *Sink) List(ctx context.Context, piece string) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(piece), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired results: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(piece), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Sink) Close() error {
	return s.client.Close()
}
