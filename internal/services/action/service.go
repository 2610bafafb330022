package action

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
)

// Service records role actions other than votes, such as a night kill
// or a protection. Votes go through the vote service.
type Service struct {
	store  *storage.Store
	logger *slog.Logger
}

// New creates a new action service
func New(store *storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// IssueRequest describes an action cast from a post. Token defaults to
// the action type.
type IssueRequest struct {
	Game   string
	PostID int
	Actor  string
	Target string
	Type   string
	Token  string
}

// RevokeRequest describes an action withdrawal. Target and Token narrow
// the match when set.
type RevokeRequest struct {
	Game   string
	PostID int
	Actor  string
	Target string
	Type   string
	Token  string
}

// IssueResult reports what an issue did
type IssueResult struct {
	Action   *mafia.Action
	Replaced *mafia.Action
}

func isVote(actionType string) bool {
	return actionType == "" || strings.EqualFold(actionType, model.ActionVote)
}

// Issue records an action, replacing the actor's current action of the
// same type and token for today
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	if isVote(req.Type) {
		return nil, model.ErrCannotIssueVoteAsAction
	}
	token := req.Token
	if token == "" {
		token = req.Type
	}

	game, unlock, err := s.store.LockedGame(ctx, req.Game)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !game.IsActive() {
		return nil, model.ErrGameNotActive
	}
	actor, err := game.GetLivePlayer(req.Actor)
	if err != nil {
		return nil, err
	}
	var target *mafia.Player
	if req.Target != "" {
		if target, err = game.GetLivePlayer(req.Target); err != nil {
			return nil, err
		}
	}

	result := &IssueResult{}
	previous := game.GetAction(mafia.ActionQuery{
		Actor: actor.Slug(),
		Type:  req.Type,
		Token: token,
		Day:   game.Day(),
	})
	if previous != nil {
		if result.Replaced, err = previous.Revoke(ctx, req.PostID); err != nil {
			return nil, err
		}
	}

	register := mafia.RegisterRequest{
		PostID: req.PostID,
		Actor:  actor.Slug(),
		Type:   req.Type,
		Token:  token,
	}
	if target != nil {
		register.Target = target.Slug()
	}
	if result.Action, err = game.RegisterAction(ctx, register); err != nil {
		return nil, err
	}

	s.logger.Info("action issued",
		slog.Int("topic_id", game.TopicID()),
		slog.Int("post_id", req.PostID),
		slog.String("actor", actor.Slug()),
		slog.String("target", register.Target),
		slog.String("action", req.Type),
		slog.String("token", token),
	)
	return result, nil
}

// Revoke withdraws the actor's first current action matching the request
func (s *Service) Revoke(ctx context.Context, req RevokeRequest) (*mafia.Action, error) {
	if isVote(req.Type) {
		return nil, model.ErrCannotRevokeVoteAsAction
	}

	game, unlock, err := s.store.LockedGame(ctx, req.Game)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !game.IsActive() {
		return nil, model.ErrGameNotActive
	}
	actor, err := game.GetLivePlayer(req.Actor)
	if err != nil {
		return nil, err
	}

	revoked, err := game.RevokeAction(ctx, req.PostID, mafia.ActionQuery{
		Actor:  actor.Slug(),
		Target: req.Target,
		Type:   req.Type,
		Token:  req.Token,
		Day:    game.Day(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("action revoked",
		slog.Int("topic_id", game.TopicID()),
		slog.Int("post_id", req.PostID),
		slog.String("actor", actor.Slug()),
		slog.String("action", req.Type),
	)
	return revoked, nil
}

// Actions lists the game's ledger, revoked entries included. An empty
// actionType lists every type.
func (s *Service) Actions(ctx context.Context, ref, actionType string) ([]*mafia.Action, error) {
	game, unlock, err := s.store.LockedGame(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return game.Actions(mafia.ActionQuery{Type: actionType, IncludeRevoked: true}), nil
}
