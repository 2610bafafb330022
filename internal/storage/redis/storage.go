package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
)

// Storage keeps the games document as one JSON string in Redis
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and verifies the connection
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.Key == "" {
		cfg.Key = defaultGamesKey()
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) ReadGames(ctx context.Context) ([]*model.Game, error) {
	data, err := s.client.Get(ctx, s.cfg.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*model.Game{}, nil
		}
		return nil, err
	}

	var games []*model.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.cfg.Key, err)
	}
	if games == nil {
		games = []*model.Game{}
	}
	return games, nil
}

// WriteGames replaces the document. Games are never deleted, so the key
// carries no TTL.
func (s *Storage) WriteGames(ctx context.Context, games []*model.Game) error {
	data, err := json.Marshal(games)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.cfg.Key, data, 0).Err()
}

func (s *Storage) Destination() string {
	return s.cfg.URL + "#" + s.cfg.Key
}
