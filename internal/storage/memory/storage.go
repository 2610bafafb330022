package memory

import (
	"context"

	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
)

// Storage is the ephemeral backend. It starts from an optional seed
// collection and never keeps writes.
type Storage struct {
	seed []*model.Game
}

// New creates an in-memory backend, optionally seeded with games
func New(seed ...*model.Game) *Storage {
	return &Storage{seed: seed}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) ReadGames(ctx context.Context) ([]*model.Game, error) {
	games := make([]*model.Game, len(s.seed))
	copy(games, s.seed)
	return games, nil
}

// WriteGames discards the collection
func (s *Storage) WriteGames(ctx context.Context, games []*model.Game) error {
	return nil
}

func (s *Storage) Destination() string {
	return storage.MemoryDestination
}
