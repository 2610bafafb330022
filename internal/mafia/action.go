package mafia

import (
	"context"
	"fmt"

	"github.com/mcoot/mafiagame-go/internal/model"
)

// Action is a handle onto one ledger entry of a game
type Action struct {
	data *model.Action
	game *Game
}

// PostID returns the post that cast the action
func (a *Action) PostID() int {
	return a.data.PostID
}

func (a *Action) ActorSlug() string {
	return a.data.Actor
}

// Type returns the action type, "vote" by default
func (a *Action) Type() string {
	return a.data.Action
}

// Token returns the sub-type discriminator
func (a *Action) Token() string {
	return a.data.Token
}

// Day returns the game day the action was cast in
func (a *Action) Day() int {
	return a.data.Day
}

// IsCurrent reports whether the entry has not been revoked
func (a *Action) IsCurrent() bool {
	return a.data.IsCurrent()
}

// TargetSlug returns the target slug, or "" for an untargeted entry
func (a *Action) TargetSlug() string {
	return a.data.TargetSlug()
}

// HasTarget reports whether the entry names a target
func (a *Action) HasTarget() bool {
	return a.data.Target != nil
}

// RevokedID returns the post that revoked this entry, if any
func (a *Action) RevokedID() (int, bool) {
	if a.data.RevokedID == nil {
		return 0, false
	}
	return *a.data.RevokedID, true
}

// Actor resolves the acting player, or nil if they are no longer a player
func (a *Action) Actor() *Player {
	return a.game.lookupPlayer(a.data.Actor)
}

// Target resolves the targeted player, or nil for an untargeted entry
func (a *Action) Target() *Player {
	if a.data.Target == nil {
		return nil
	}
	return a.game.lookupPlayer(*a.data.Target)
}

// Revoke marks the entry as no longer current. An entry can only be
// revoked once.
func (a *Action) Revoke(ctx context.Context, postID int) (*Action, error) {
	if a.data.RevokedID != nil {
		return nil, fmt.Errorf("post %d: %w", a.data.PostID, model.ErrActionAlreadyRevoked)
	}
	a.data.RevokedID = &postID

	if err := a.game.save(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
