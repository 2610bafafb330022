package mafia

import (
	"context"

	"github.com/mcoot/mafiagame-go/internal/identity"
	"github.com/mcoot/mafiagame-go/internal/model"
)

// ActionQuery filters the ledger. Actor is required; the other fields
// only filter when set.
type ActionQuery struct {
	Actor          string
	Target         string
	Type           string
	Token          string
	Day            int
	IncludeRevoked bool
}

func (q ActionQuery) matches(a *model.Action, actor, target string) bool {
	if actor != "" && a.Actor != actor {
		return false
	}
	if !q.IncludeRevoked && !a.IsCurrent() {
		return false
	}
	if target != "" && a.TargetSlug() != target {
		return false
	}
	if q.Type != "" && a.Action != q.Type {
		return false
	}
	if q.Token != "" && a.Token != q.Token {
		return false
	}
	if q.Day != 0 && a.Day != q.Day {
		return false
	}
	return true
}

// GetAction returns the first ledger entry matching q, or nil
func (g *Game) GetAction(q ActionQuery) *Action {
	if q.Actor == "" {
		return nil
	}
	actor, target := identity.Slug(q.Actor), identity.Slug(q.Target)
	for _, a := range g.data.Actions {
		if q.matches(a, actor, target) {
			return g.wrapAction(a)
		}
	}
	return nil
}

// Actions returns every matching entry in ledger order. Unlike GetAction
// the actor filter is optional.
func (g *Game) Actions(q ActionQuery) []*Action {
	actor, target := identity.Slug(q.Actor), identity.Slug(q.Target)
	var result []*Action
	for _, a := range g.data.Actions {
		if q.matches(a, actor, target) {
			result = append(result, g.wrapAction(a))
		}
	}
	return result
}

// CurrentActions returns the current entries of one type cast on day
func (g *Game) CurrentActions(actionType string, day int) []*Action {
	var result []*Action
	for _, a := range g.data.Actions {
		if a.IsCurrent() && a.Action == actionType && a.Day == day {
			result = append(result, g.wrapAction(a))
		}
	}
	return result
}

// RegisterRequest describes a new ledger entry. Empty Type and Token
// default to "vote"; an empty Target records an untargeted entry.
type RegisterRequest struct {
	PostID int
	Actor  string
	Target string
	Type   string
	Token  string
}

// RegisterAction appends an entry at the current day. It does not revoke
// conflicting entries; callers revoke first.
func (g *Game) RegisterAction(ctx context.Context, req RegisterRequest) (*Action, error) {
	a := &model.Action{
		PostID: req.PostID,
		Actor:  identity.Slug(req.Actor),
		Action: req.Type,
		Token:  req.Token,
		Day:    g.data.Day,
	}
	if a.Action == "" {
		a.Action = model.ActionVote
	}
	if a.Token == "" {
		a.Token = model.TokenVote
	}
	if req.Target != "" {
		target := identity.Slug(req.Target)
		a.Target = &target
	}

	g.data.Actions = append(g.data.Actions, a)
	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g.wrapAction(a), nil
}

// RevokeAction revokes the first current entry matching q
func (g *Game) RevokeAction(ctx context.Context, postID int, q ActionQuery) (*Action, error) {
	q.IncludeRevoked = false
	a := g.GetAction(q)
	if a == nil {
		if q.Target != "" {
			return nil, model.ErrNoMatchingActionForTarget
		}
		return nil, model.ErrNoMatchingAction
	}
	return a.Revoke(ctx, postID)
}

func (g *Game) wrapAction(a *model.Action) *Action {
	return &Action{data: a, game: g}
}
