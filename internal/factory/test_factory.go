package factory

import (
	"context"

	"github.com/mcoot/mafiagame-go/internal/dependencies/mocks"
	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage/memory"
	"github.com/mcoot/mafiagame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App over an in-memory store with mocked
// randomness, optionally seeded with games
func NewTestApp(seed ...*model.Game) *TestApp {
	mockRandom := mocks.NewMockRandom()
	app := newWithDependencies(memory.New(seed...), mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockRandom: mockRandom,
	}
}

// SetupGame creates an active game with the given live players
func (t *TestApp) SetupGame(ctx context.Context, topicID int, name string, players ...string) (*mafia.Game, error) {
	g, err := t.GameController.CreateGame(ctx, topicID, name, true)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if _, err := g.AddPlayer(ctx, p); err != nil {
			return nil, err
		}
	}
	return g, nil
}
