package game

import (
	"context"
	"io"
	"log/slog"

	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
)

// Controller runs moderator commands against stored games: setup,
// participants, the phase cycle and activation
type Controller struct {
	store  *storage.Store
	logger *slog.Logger
}

// NewController creates a new game Controller
func NewController(store *storage.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Controller{
		store:  store,
		logger: logger,
	}
}

// CreateGame creates a game for a topic
func (c *Controller) CreateGame(ctx context.Context, topicID int, name string, active bool) (*mafia.Game, error) {
	if _, err := identity.Topic(topicID).Alias(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, model.ErrMissingGameIdentifier
	}

	unlock := c.store.LockGame()
	defer unlock()
	return c.store.CreateGame(ctx, topicID, name, active)
}

// GetGame resolves a game by topic id or name
func (c *Controller) GetGame(ctx context.Context, ref string) (*mafia.Game, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	unlock()
	return game, nil
}

// ListGames returns every stored game
func (c *Controller) ListGames(ctx context.Context) ([]*mafia.Game, error) {
	unlock := c.store.LockGame()
	defer unlock()
	return c.store.Games(ctx)
}

// StartGame marks a game active
func (c *Controller) StartGame(ctx context.Context, ref string) (*mafia.Game, error) {
	return c.setActive(ctx, ref, true)
}

// EndGame marks a game inactive. The game stays in the store.
func (c *Controller) EndGame(ctx context.Context, ref string) (*mafia.Game, error) {
	return c.setActive(ctx, ref, false)
}

func (c *Controller) setActive(ctx context.Context, ref string, active bool) (*mafia.Game, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := game.SetActive(ctx, active); err != nil {
		return nil, err
	}

	c.logger.Info("game activation changed",
		slog.Int("topic_id", game.TopicID()),
		slog.Bool("active", active),
	)
	return game, nil
}

// AddPlayer adds a live player to a game
func (c *Controller) AddPlayer(ctx context.Context, ref, username string) (*mafia.Player, error) {
	return c.addParticipant(ctx, ref, username, false)
}

// AddModerator adds a moderator to a game
func (c *Controller) AddModerator(ctx context.Context, ref, username string) (*mafia.Player, error) {
	return c.addParticipant(ctx, ref, username, true)
}

func (c *Controller) addParticipant(ctx context.Context, ref, username string, moderator bool) (*mafia.Player, error) {
	name, err := identity.ResolveUsername(username)
	if err != nil {
		return nil, err
	}

	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var p *mafia.Player
	if moderator {
		p, err = game.AddModerator(ctx, name)
	} else {
		p, err = game.AddPlayer(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Info("participant added",
		slog.Int("topic_id", game.TopicID()),
		slog.String("player", p.Slug()),
		slog.Bool("moderator", moderator),
	)
	return p, nil
}

// KillPlayer moves a live player to the dead bucket
func (c *Controller) KillPlayer(ctx context.Context, ref, username string) (*mafia.Player, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, err := game.KillPlayer(ctx, username)
	if err != nil {
		return nil, err
	}

	c.logger.Info("player killed",
		slog.Int("topic_id", game.TopicID()),
		slog.String("player", p.Slug()),
	)
	return p, nil
}

// ResurrectPlayer moves a dead player back to the live bucket
func (c *Controller) ResurrectPlayer(ctx context.Context, ref, username string) (*mafia.Player, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, err := game.ResurrectPlayer(ctx, username)
	if err != nil {
		return nil, err
	}

	c.logger.Info("player resurrected",
		slog.Int("topic_id", game.TopicID()),
		slog.String("player", p.Slug()),
	)
	return p, nil
}

// NextPhase advances the game one step through its phase cycle
func (c *Controller) NextPhase(ctx context.Context, ref string) (*mafia.Game, error) {
	return c.changePhase(ctx, ref, "next_phase", func(g *mafia.Game) (*mafia.Game, error) {
		return g.NextPhase(ctx)
	})
}

// NewDay starts the next day at the first phase
func (c *Controller) NewDay(ctx context.Context, ref string) (*mafia.Game, error) {
	return c.changePhase(ctx, ref, "new_day", func(g *mafia.Game) (*mafia.Game, error) {
		return g.NewDay(ctx)
	})
}

// SetPhase jumps to a named phase of the current day
func (c *Controller) SetPhase(ctx context.Context, ref, phase string) (*mafia.Game, error) {
	return c.changePhase(ctx, ref, "set_phase", func(g *mafia.Game) (*mafia.Game, error) {
		return g.SetPhase(ctx, phase)
	})
}

func (c *Controller) changePhase(ctx context.Context, ref, command string, change func(*mafia.Game) (*mafia.Game, error)) (*mafia.Game, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := change(game); err != nil {
		return nil, err
	}

	c.logger.Info("phase changed",
		slog.Int("topic_id", game.TopicID()),
		slog.String("command", command),
		slog.Int("day", game.Day()),
		slog.String("phase", game.Phase()),
	)
	return game, nil
}

// AddPlayArea attaches a topic or chat to a game
func (c *Controller) AddPlayArea(ctx context.Context, ref string, area identity.PlayArea) (*mafia.Game, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := game.AddPlayArea(ctx, area); err != nil {
		return nil, err
	}

	c.logger.Info("play area added",
		slog.Int("topic_id", game.TopicID()),
		slog.String("kind", area.Kind.String()),
		slog.Int("area_id", area.ID),
	)
	return game, nil
}

// RemovePlayArea detaches a topic or chat from a game
func (c *Controller) RemovePlayArea(ctx context.Context, ref string, area identity.PlayArea) (*mafia.Game, error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := game.RemovePlayArea(ctx, area); err != nil {
		return nil, err
	}

	c.logger.Info("play area removed",
		slog.Int("topic_id", game.TopicID()),
		slog.String("kind", area.Kind.String()),
		slog.Int("area_id", area.ID),
	)
	return game, nil
}

// AddPlayerProperty flags a player. changed is false if the flag was
// already set.
func (c *Controller) AddPlayerProperty(ctx context.Context, ref, username, property string) (changed bool, err error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return false, err
	}
	defer unlock()

	p, err := game.GetPlayer(username)
	if err != nil {
		return false, err
	}
	return p.AddProperty(ctx, property)
}

// RemovePlayerProperty clears a player flag. changed is false if the
// flag was not set.
func (c *Controller) RemovePlayerProperty(ctx context.Context, ref, username, property string) (changed bool, err error) {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return false, err
	}
	defer unlock()

	p, err := game.GetPlayer(username)
	if err != nil {
		return false, err
	}
	return p.RemoveProperty(ctx, property)
}

// SetGameValue stores an entry in a game's value store
func (c *Controller) SetGameValue(ctx context.Context, ref, key string, value any) error {
	game, unlock, err := c.store.LockedGame(ctx, ref)
	if err != nil {
		return err
	}
	defer unlock()

	return game.SetValue(ctx, key, value)
}

// ControllerInterface is the command surface used by the CLI
type ControllerInterface interface {
	CreateGame(ctx context.Context, topicID int, name string, active bool) (*mafia.Game, error)
	GetGame(ctx context.Context, ref string) (*mafia.Game, error)
	ListGames(ctx context.Context) ([]*mafia.Game, error)
	StartGame(ctx context.Context, ref string) (*mafia.Game, error)
	EndGame(ctx context.Context, ref string) (*mafia.Game, error)
	AddPlayer(ctx context.Context, ref, username string) (*mafia.Player, error)
	AddModerator(ctx context.Context, ref, username string) (*mafia.Player, error)
	KillPlayer(ctx context.Context, ref, username string) (*mafia.Player, error)
	ResurrectPlayer(ctx context.Context, ref, username string) (*mafia.Player, error)
	NextPhase(ctx context.Context, ref string) (*mafia.Game, error)
	NewDay(ctx context.Context, ref string) (*mafia.Game, error)
	SetPhase(ctx context.Context, ref, phase string) (*mafia.Game, error)
	AddPlayArea(ctx context.Context, ref string, area identity.PlayArea) (*mafia.Game, error)
	RemovePlayArea(ctx context.Context, ref string, area identity.PlayArea) (*mafia.Game, error)
	AddPlayerProperty(ctx context.Context, ref, username, property string) (bool, error)
	RemovePlayerProperty(ctx context.Context, ref, username, property string) (bool, error)
	SetGameValue(ctx context.Context, ref, key string, value any) error
}

var _ ControllerInterface = (*Controller)(nil)
