package storage

import (
	"context"

	"github.com/mcoot/mafiagame-go/internal/model"
)

// MemoryDestination is the destination of a store that is never written
const MemoryDestination = ":memory:"

// Backend reads and writes the whole collection of games as one document
type Backend interface {
	// ReadGames returns the stored collection. A missing document is an
	// empty collection; a malformed one is an error.
	ReadGames(ctx context.Context) ([]*model.Game, error)

	// WriteGames replaces the stored collection
	WriteGames(ctx context.Context, games []*model.Game) error

	// Destination describes where the document lives
	Destination() string
}
