package mafia

import (
	"context"
	"slices"

	"github.com/mcoot/mafiagame-go/internal/model"
)

// Player is a handle onto one participant record of a game
type Player struct {
	data *model.Player
	game *Game
}

// Username returns the display form of the identity
func (p *Player) Username() string {
	return p.data.Username
}

// Slug returns the normalized lookup key
func (p *Player) Slug() string {
	return p.data.Slug
}

func (p *Player) IsAlive() bool {
	return p.data.IsAlive
}

func (p *Player) IsModerator() bool {
	return p.data.IsModerator
}

// Properties returns a copy of the player's flags
func (p *Player) Properties() []string {
	return slices.Clone(p.data.Properties)
}

// HasProperty reports whether the player carries the flag
func (p *Player) HasProperty(property string) bool {
	return p.data.HasProperty(property)
}

// AddProperty adds a flag. It returns false without persisting if the
// flag is already present.
func (p *Player) AddProperty(ctx context.Context, property string) (bool, error) {
	if p.data.HasProperty(property) {
		return false, nil
	}
	p.data.Properties = append(p.data.Properties, property)
	if err := p.game.save(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveProperty removes a flag, reporting whether it was present.
// The game is persisted either way.
func (p *Player) RemoveProperty(ctx context.Context, property string) (bool, error) {
	before := len(p.data.Properties)
	p.data.Properties = slices.DeleteFunc(p.data.Properties, func(s string) bool {
		return s == property
	})
	removed := len(p.data.Properties) != before

	if err := p.game.save(ctx); err != nil {
		return false, err
	}
	return removed, nil
}

// Value returns an entry from the player's value store
func (p *Player) Value(key string) (any, bool) {
	v, ok := p.data.Values[key]
	return v, ok
}

// SetValue stores an entry in the player's value store
func (p *Player) SetValue(ctx context.Context, key string, value any) error {
	p.data.Values[key] = value
	return p.game.save(ctx)
}
