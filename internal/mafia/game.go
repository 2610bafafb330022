// Package mafia implements the game aggregate: participants bucketed
// into live, dead and moderator sets, the day/phase state machine and
// the append-only action ledger. Every mutation is persisted through
// the Persister the game is bound to.
package mafia

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/mafiagame-go/internal/dependencies/random"
	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/model"
)

// Persister writes the collection a game belongs to
type Persister interface {
	Save(ctx context.Context) error
}

// Game is a handle onto one stored game snapshot. Handles obtained from
// separate lookups share the same snapshot and see each other's changes.
type Game struct {
	data      *model.Game
	persister Persister
	random    random.Random
}

// Bind wraps a stored snapshot. rnd orders live and dead player listings.
func Bind(data *model.Game, persister Persister, rnd random.Random) *Game {
	if rnd == nil {
		rnd = random.New()
	}
	return &Game{
		data:      data,
		persister: persister,
		random:    rnd,
	}
}

func (g *Game) save(ctx context.Context) error {
	if g.persister == nil {
		return nil
	}
	return g.persister.Save(ctx)
}

// TopicID returns the stable external identifier
func (g *Game) TopicID() int {
	return g.data.TopicID
}

// Name returns the custom game name
func (g *Game) Name() string {
	return g.data.Name
}

// Aliases returns every string the game can be looked up by
func (g *Game) Aliases() []string {
	return slices.Clone(g.data.Aliases)
}

// Day returns the current day number, starting at 1
func (g *Game) Day() int {
	return g.data.Day
}

// Phase returns the current phase name
func (g *Game) Phase() string {
	return g.data.Phase
}

// Phases returns the configured phase cycle
func (g *Game) Phases() []string {
	return slices.Clone(g.data.Phases)
}

// IsActive reports whether the game is accepting actions
func (g *Game) IsActive() bool {
	return g.data.IsActive
}

// Value returns an entry from the game's value store
func (g *Game) Value(key string) (any, bool) {
	v, ok := g.data.Values[key]
	return v, ok
}

// SetValue stores an entry in the game's value store
func (g *Game) SetValue(ctx context.Context, key string, value any) error {
	g.data.Values[key] = value
	return g.save(ctx)
}

// SetActive marks the game as running or ended. Ended games are kept.
func (g *Game) SetActive(ctx context.Context, active bool) error {
	g.data.IsActive = active
	return g.save(ctx)
}

// AddPlayArea attaches a topic or chat to the game as a lookup alias
func (g *Game) AddPlayArea(ctx context.Context, area identity.PlayArea) error {
	alias, err := area.Alias()
	if err != nil {
		return err
	}
	if g.data.HasAlias(alias) {
		return nil
	}
	g.data.Aliases = append(g.data.Aliases, alias)
	return g.save(ctx)
}

// RemovePlayArea detaches a topic or chat alias from the game
func (g *Game) RemovePlayArea(ctx context.Context, area identity.PlayArea) error {
	alias, err := area.Alias()
	if err != nil {
		return err
	}
	g.data.Aliases = slices.DeleteFunc(g.data.Aliases, func(a string) bool {
		return strings.EqualFold(a, alias)
	})
	return g.save(ctx)
}

// Participants

// AddPlayer adds a live player. The identity must not already be in
// any bucket.
func (g *Game) AddPlayer(ctx context.Context, username string) (*Player, error) {
	return g.addParticipant(ctx, username, false)
}

// AddModerator adds a moderator. Moderators are not players and cannot
// be killed or targeted.
func (g *Game) AddModerator(ctx context.Context, username string) (*Player, error) {
	return g.addParticipant(ctx, username, true)
}

func (g *Game) addParticipant(ctx context.Context, username string, moderator bool) (*Player, error) {
	slug := identity.Slug(username)
	if g.data.LivePlayers.Has(slug) || g.data.DeadPlayers.Has(slug) || g.data.Moderators.Has(slug) {
		return nil, fmt.Errorf("%s: %w", username, model.ErrUserExists)
	}

	p := model.NewPlayer(username, slug, moderator)
	if moderator {
		g.data.Moderators.Put(p)
	} else {
		g.data.LivePlayers.Put(p)
	}

	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g.wrapPlayer(p), nil
}

// KillPlayer moves a live player to the dead bucket
func (g *Game) KillPlayer(ctx context.Context, username string) (*Player, error) {
	slug := identity.Slug(username)
	p, ok := g.data.LivePlayers.Get(slug)
	if !ok {
		return nil, fmt.Errorf("%s: %w", username, model.ErrUserNotLive)
	}

	g.data.LivePlayers.Delete(slug)
	p.IsAlive = false
	g.data.DeadPlayers.Put(p)

	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g.wrapPlayer(p), nil
}

// ResurrectPlayer moves a dead player back to the live bucket
func (g *Game) ResurrectPlayer(ctx context.Context, username string) (*Player, error) {
	slug := identity.Slug(username)
	p, ok := g.data.DeadPlayers.Get(slug)
	if !ok {
		return nil, fmt.Errorf("%s: %w", username, model.ErrUserNotDead)
	}

	g.data.DeadPlayers.Delete(slug)
	p.IsAlive = true
	g.data.LivePlayers.Put(p)

	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g.wrapPlayer(p), nil
}

// GetPlayer finds a live or dead player. Moderators are not included.
func (g *Game) GetPlayer(username string) (*Player, error) {
	p := g.lookupPlayer(identity.Slug(username))
	if p == nil {
		return nil, fmt.Errorf("%s: %w", username, model.ErrUserNotFound)
	}
	return p, nil
}

// GetLivePlayer finds a player who must currently be alive
func (g *Game) GetLivePlayer(username string) (*Player, error) {
	p, err := g.GetPlayer(username)
	if err != nil {
		return nil, err
	}
	if !p.IsAlive() {
		return nil, fmt.Errorf("%s: %w", username, model.ErrUserNotLive)
	}
	return p, nil
}

// GetModerator finds a moderator
func (g *Game) GetModerator(username string) (*Player, error) {
	p, ok := g.data.Moderators.Get(identity.Slug(username))
	if !ok {
		return nil, fmt.Errorf("%s: %w", username, model.ErrUserNotFound)
	}
	return g.wrapPlayer(p), nil
}

// lookupPlayer resolves a slug against the live and dead buckets, or nil
func (g *Game) lookupPlayer(slug string) *Player {
	if p, ok := g.data.LivePlayers.Get(slug); ok {
		return g.wrapPlayer(p)
	}
	if p, ok := g.data.DeadPlayers.Get(slug); ok {
		return g.wrapPlayer(p)
	}
	return nil
}

// LivePlayers returns the live players in a fresh random order
func (g *Game) LivePlayers() []*Player {
	return g.wrapPlayers(random.Shuffled(g.random, g.data.LivePlayers.Values()))
}

// DeadPlayers returns the dead players in a fresh random order
func (g *Game) DeadPlayers() []*Player {
	return g.wrapPlayers(random.Shuffled(g.random, g.data.DeadPlayers.Values()))
}

// AllPlayers returns live and dead players together in a fresh random
// order. Moderators are not players.
func (g *Game) AllPlayers() []*Player {
	all := append(g.data.LivePlayers.Values(), g.data.DeadPlayers.Values()...)
	return g.wrapPlayers(random.Shuffled(g.random, all))
}

// Moderators returns the moderators in the order they were added
func (g *Game) Moderators() []*Player {
	return g.wrapPlayers(g.data.Moderators.Values())
}

// LiveCount returns the number of live players
func (g *Game) LiveCount() int {
	return g.data.LivePlayers.Len()
}

func (g *Game) wrapPlayer(p *model.Player) *Player {
	return &Player{data: p, game: g}
}

func (g *Game) wrapPlayers(players []*model.Player) []*Player {
	result := make([]*Player, len(players))
	for i, p := range players {
		result[i] = g.wrapPlayer(p)
	}
	return result
}
