package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mafiagame-go/internal/dependencies/mocks"
	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
	"github.com/mcoot/mafiagame-go/internal/storage/memory"
	"github.com/mcoot/mafiagame-go/internal/testutil"
)

// fakeBackend records reads and writes and can be made to fail
type fakeBackend struct {
	mu       sync.Mutex
	games    []*model.Game
	reads    int
	writes   int
	readErr  error
	writeErr error
	dest     string
}

func (b *fakeBackend) ReadGames(ctx context.Context) ([]*model.Game, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++
	if b.readErr != nil {
		return nil, b.readErr
	}
	return b.games, nil
}

func (b *fakeBackend) WriteGames(ctx context.Context, games []*model.Game) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes++
	return b.writeErr
}

func (b *fakeBackend) Destination() string {
	if b.dest == "" {
		return "fake"
	}
	return b.dest
}

type StoreSuite struct {
	suite.Suite
	backend *fakeBackend
	store   *storage.Store
	ctx     context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.backend = &fakeBackend{}
	s.store = storage.NewStore(s.backend, mocks.NewMockRandom(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Load tests

func (s *StoreSuite) TestLoadReadsBackendOnce() {
	s.backend.games = []*model.Game{model.NewGame(1, "One", []string{"t_1", "One"}, true)}

	for range 3 {
		games, err := s.store.Load(s.ctx)
		s.Require().NoError(err)
		s.Len(games, 1)
	}
	s.Equal(1, s.backend.reads)
}

func (s *StoreSuite) TestConcurrentLoadsShareOneRead() {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Load(s.ctx)
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal(1, s.backend.reads)
}

func (s *StoreSuite) TestLoadFailureIsRetried() {
	s.backend.readErr = errors.New("unavailable")

	_, err := s.store.Load(s.ctx)
	s.EqualError(err, "unavailable")

	s.backend.readErr = nil
	_, err = s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, s.backend.reads)
}

func (s *StoreSuite) TestLoadNormalizesGames() {
	s.backend.games = []*model.Game{{TopicID: 4, Aliases: []string{"t_4"}}}

	game, err := s.store.GetGameByTopicID(s.ctx, 4)
	s.Require().NoError(err)
	s.Equal(1, game.Day())
	s.Equal(model.PhaseDay, game.Phase())
}

// CreateGame tests

func (s *StoreSuite) TestCreateGame() {
	game, err := s.store.CreateGame(s.ctx, 12, "Test Game", true)
	s.Require().NoError(err)

	s.Equal(12, game.TopicID())
	s.Equal("Test Game", game.Name())
	s.Equal([]string{"t_12", "Test Game"}, game.Aliases())
	s.Equal(1, game.Day())
	s.Equal(model.PhaseDay, game.Phase())
	s.True(game.IsActive())
	s.Equal(1, s.backend.writes)
}

func (s *StoreSuite) TestCreateGameRejectsDuplicateTopic() {
	_, err := s.store.CreateGame(s.ctx, 12, "First", true)
	s.Require().NoError(err)

	_, err = s.store.CreateGame(s.ctx, 12, "Second", true)
	s.ErrorIs(err, model.ErrGameExists)
}

func (s *StoreSuite) TestCreateGameRejectsDuplicateName() {
	_, err := s.store.CreateGame(s.ctx, 12, "Same", true)
	s.Require().NoError(err)

	_, err = s.store.CreateGame(s.ctx, 13, "SAME", true)
	s.ErrorIs(err, model.ErrGameExists)
}

func (s *StoreSuite) TestCreateGameRejectsNameUsedAsAlias() {
	game, err := s.store.CreateGame(s.ctx, 12, "First", true)
	s.Require().NoError(err)
	s.Require().NoError(game.AddPlayArea(s.ctx, identity.Chat(5)))

	_, err = s.store.CreateGame(s.ctx, 13, "c_5", true)
	s.ErrorIs(err, model.ErrGameExists)
}

func (s *StoreSuite) TestFailedSaveLeavesCacheAhead() {
	s.backend.writeErr = errors.New("disk full")

	_, err := s.store.CreateGame(s.ctx, 12, "Test", true)
	s.EqualError(err, "disk full")

	// The game stays in the cache and is written by the next save
	game, err := s.store.GetGameByTopicID(s.ctx, 12)
	s.Require().NoError(err)
	s.Equal("Test", game.Name())

	_, err = s.store.CreateGame(s.ctx, 12, "Test", true)
	s.ErrorIs(err, model.ErrGameExists)
}

// Lookup tests

func (s *StoreSuite) TestLookups() {
	game, err := s.store.CreateGame(s.ctx, 12, "Test Game", true)
	s.Require().NoError(err)
	s.Require().NoError(game.AddPlayArea(s.ctx, identity.Chat(99)))

	byTopic, err := s.store.GetGameByTopicID(s.ctx, 12)
	s.Require().NoError(err)
	s.Equal(12, byTopic.TopicID())

	byChat, err := s.store.GetGameByChatID(s.ctx, 99)
	s.Require().NoError(err)
	s.Equal(12, byChat.TopicID())

	byName, err := s.store.GetGameByName(s.ctx, "test game")
	s.Require().NoError(err)
	s.Equal(12, byName.TopicID())

	byAlias, err := s.store.GetGameByAlias(s.ctx, "T_12")
	s.Require().NoError(err)
	s.Equal(12, byAlias.TopicID())
}

func (s *StoreSuite) TestLookupMissingGame() {
	_, err := s.store.GetGameByTopicID(s.ctx, 404)
	s.ErrorIs(err, model.ErrNoSuchGame)

	_, err = s.store.GetGameByChatID(s.ctx, 404)
	s.ErrorIs(err, model.ErrNoSuchGame)

	_, err = s.store.GetGame(s.ctx, "nothing")
	s.ErrorIs(err, model.ErrNoSuchGame)
}

func (s *StoreSuite) TestGetGamePrefersTopicID() {
	_, err := s.store.CreateGame(s.ctx, 12, "Twelve", true)
	s.Require().NoError(err)
	// A game whose name looks like another game's topic id
	_, err = s.store.CreateGame(s.ctx, 30, "12x", true)
	s.Require().NoError(err)

	game, err := s.store.GetGame(s.ctx, "12")
	s.Require().NoError(err)
	s.Equal(12, game.TopicID())

	game, err = s.store.GetGame(s.ctx, "twelve")
	s.Require().NoError(err)
	s.Equal(12, game.TopicID())

	game, err = s.store.GetGame(s.ctx, "12x")
	s.Require().NoError(err)
	s.Equal(30, game.TopicID())
}

func (s *StoreSuite) TestHandlesShareState() {
	_, err := s.store.CreateGame(s.ctx, 12, "Test", true)
	s.Require().NoError(err)

	first, err := s.store.GetGame(s.ctx, "12")
	s.Require().NoError(err)
	second, err := s.store.GetGame(s.ctx, "test")
	s.Require().NoError(err)

	_, err = first.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	_, err = second.GetPlayer("alice")
	s.NoError(err)
}

func (s *StoreSuite) TestGamesIncludesInactive() {
	_, err := s.store.CreateGame(s.ctx, 1, "Running", true)
	s.Require().NoError(err)
	_, err = s.store.CreateGame(s.ctx, 2, "Ended", false)
	s.Require().NoError(err)

	games, err := s.store.Games(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *StoreSuite) TestLockedGame() {
	_, err := s.store.CreateGame(s.ctx, 12, "Test", true)
	s.Require().NoError(err)

	_, _, err = s.store.LockedGame(s.ctx, "")
	s.ErrorIs(err, model.ErrMissingGameIdentifier)

	// A failed lookup releases the lock, or the next call would block
	_, _, err = s.store.LockedGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrNoSuchGame)

	game, unlock, err := s.store.LockedGame(s.ctx, "12")
	s.Require().NoError(err)
	s.Equal(12, game.TopicID())
	unlock()
}

// Memory destination tests

func (s *StoreSuite) TestMemoryDestinationSkipsWrites() {
	s.backend.dest = storage.MemoryDestination

	game, err := s.store.CreateGame(s.ctx, 1, "Ephemeral", true)
	s.Require().NoError(err)
	_, err = game.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Equal(0, s.backend.writes)
	s.Equal(storage.MemoryDestination, s.store.Destination())
}

func (s *StoreSuite) TestSeededMemoryBackend() {
	seed := model.NewGame(1, "Seeded", []string{"t_1", "Seeded"}, true)
	store := storage.NewStore(memory.New(seed), mocks.NewMockRandom(), testutil.NopLogger())

	game, err := store.GetGameByName(s.ctx, "seeded")
	s.Require().NoError(err)
	s.Equal(1, game.TopicID())
}
