package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/mafiagame-go/internal/dependencies/random"
	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
)

// Store holds the cached collection of games and resolves games by
// topic, chat, name or alias. The first Load reads the backend; every
// later call is served from memory.
type Store struct {
	backend Backend
	random  random.Random
	logger  *slog.Logger

	mu     sync.Mutex
	loaded bool
	games  []*model.Game
	group  singleflight.Group

	// Games share one document, so commands against any game are
	// serialized on a single lock
	cmdMu sync.Mutex
}

// Ensure Store can persist games
var _ mafia.Persister = (*Store)(nil)

// NewStore creates a store over the given backend
func NewStore(backend Backend, rnd random.Random, logger *slog.Logger) *Store {
	if rnd == nil {
		rnd = random.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Store{
		backend: backend,
		random:  rnd,
		logger:  logger,
	}
}

// Destination returns where the backing document lives
func (s *Store) Destination() string {
	return s.backend.Destination()
}

// Load returns the cached collection, reading the backend on first use
func (s *Store) Load(ctx context.Context) ([]*model.Game, error) {
	s.mu.Lock()
	if s.loaded {
		games := s.games
		s.mu.Unlock()
		return games, nil
	}
	s.mu.Unlock()

	// Concurrent first loads share one backend read
	_, err, _ := s.group.Do("load", func() (any, error) {
		s.mu.Lock()
		loaded := s.loaded
		s.mu.Unlock()
		if loaded {
			return nil, nil
		}

		games, err := s.backend.ReadGames(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range games {
			g.Normalize()
		}

		s.mu.Lock()
		s.games = games
		s.loaded = true
		s.mu.Unlock()

		s.logger.Debug("games loaded",
			slog.String("destination", s.backend.Destination()),
			slog.Int("game_count", len(games)),
		)
		return nil, nil
	})
	if err != nil {
		s.logger.Error("failed to load games",
			slog.String("destination", s.backend.Destination()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games, nil
}

// Save writes the whole collection to the backend. Nothing is written
// for the in-memory destination. A failed write leaves the cache as is.
func (s *Store) Save(ctx context.Context) error {
	if s.backend.Destination() == MemoryDestination {
		return nil
	}

	games, err := s.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.WriteGames(ctx, games); err != nil {
		s.logger.Error("failed to save games",
			slog.String("destination", s.backend.Destination()),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// CreateGame adds a new game. Both the topic id and the name must be
// unused by every stored game.
func (s *Store) CreateGame(ctx context.Context, topicID int, name string, active bool) (*mafia.Game, error) {
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}

	topicAlias := identity.TopicAlias(strconv.Itoa(topicID))

	s.mu.Lock()
	for _, g := range s.games {
		if g.TopicID == topicID || g.HasAlias(topicAlias) || strings.EqualFold(g.Name, name) || g.HasAlias(name) {
			s.mu.Unlock()
			return nil, fmt.Errorf("topic %d / %q: %w", topicID, name, model.ErrGameExists)
		}
	}

	aliases := []string{topicAlias}
	if name != "" {
		aliases = append(aliases, name)
	}
	data := model.NewGame(topicID, name, aliases, active)
	s.games = append(s.games, data)
	s.mu.Unlock()

	if err := s.Save(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		slog.Int("topic_id", topicID),
		slog.String("name", name),
		slog.Bool("active", active),
	)
	return s.bind(data), nil
}

// GetGameByTopicID resolves a game through its topic alias
func (s *Store) GetGameByTopicID(ctx context.Context, topicID int) (*mafia.Game, error) {
	return s.GetGameByAlias(ctx, identity.TopicAlias(strconv.Itoa(topicID)))
}

// GetGameByChatID resolves a game through its chat alias
func (s *Store) GetGameByChatID(ctx context.Context, chatID int) (*mafia.Game, error) {
	return s.GetGameByAlias(ctx, identity.ChatAlias(strconv.Itoa(chatID)))
}

// GetGameByName resolves a game through its custom name
func (s *Store) GetGameByName(ctx context.Context, name string) (*mafia.Game, error) {
	return s.GetGameByAlias(ctx, name)
}

// GetGameByAlias returns the first game with a case-insensitive alias match
func (s *Store) GetGameByAlias(ctx context.Context, alias string) (*mafia.Game, error) {
	games, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range games {
		if g.HasAlias(alias) {
			return s.bind(g), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", alias, model.ErrNoSuchGame)
}

// GetGame resolves an identifier as a topic id first and then as a name
func (s *Store) GetGame(ctx context.Context, identifier string) (*mafia.Game, error) {
	game, err := s.GetGameByAlias(ctx, identity.TopicAlias(identifier))
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, model.ErrNoSuchGame) {
		return nil, err
	}
	return s.GetGameByName(ctx, identifier)
}

// Games returns every stored game, active or not
func (s *Store) Games(ctx context.Context) ([]*mafia.Game, error) {
	games, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*mafia.Game, len(games))
	for i, g := range games {
		result[i] = s.bind(g)
	}
	return result, nil
}

// LockGame serializes commands that mutate games. The returned function
// releases the lock.
func (s *Store) LockGame() func() {
	s.cmdMu.Lock()
	return s.cmdMu.Unlock
}

// LockedGame resolves ref as GetGame does and takes the game's lock.
// The caller must release it with the returned function.
func (s *Store) LockedGame(ctx context.Context, ref string) (*mafia.Game, func(), error) {
	if ref == "" {
		return nil, nil, model.ErrMissingGameIdentifier
	}
	unlock := s.LockGame()
	game, err := s.GetGame(ctx, ref)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return game, unlock, nil
}

func (s *Store) bind(data *model.Game) *mafia.Game {
	return mafia.Bind(data, s, s.random)
}
