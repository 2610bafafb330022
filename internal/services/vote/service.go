package vote

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
)

// Vote tokens. A double voter's alternate vote occupies a second,
// independently revocable slot.
const (
	TokenPrimary   = "vote[1]"
	TokenSecondary = "vote[2]"
)

// Service casts and revokes votes and lynches a player once their tally
// reaches the majority threshold
type Service struct {
	store  *storage.Store
	logger *slog.Logger
}

// New creates a new vote service
func New(store *storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Request describes a vote cast from a post
type Request struct {
	Game      string
	PostID    int
	Actor     string
	Target    string // empty for a no-lynch vote
	Alternate bool   // use the second slot if the actor is a double voter
}

// UnvoteRequest describes a vote withdrawal. Without a target the
// actor's first current vote is withdrawn.
type UnvoteRequest struct {
	Game   string
	PostID int
	Actor  string
	Target string
}

// Result reports what a vote did
type Result struct {
	Action   *mafia.Action
	Replaced *mafia.Action // the actor's previous vote in the same slot
	Votes    int
	Required int
	Lynched  *mafia.Player
}

// RequiredVotes returns the votes needed to lynch target: a majority of
// the live players, one more for a loved target and one fewer for a
// hated one. A nil target is the no-lynch bucket.
func RequiredVotes(liveCount int, target *mafia.Player) int {
	required := (liveCount + 2) / 2
	if target == nil {
		return required
	}
	if target.HasProperty(model.PropertyLoved) {
		required++
	}
	if target.HasProperty(model.PropertyHated) {
		required--
	}
	return required
}

// TokenFor picks the slot a vote occupies. Only double voters get the
// second slot, and a no-lynch vote always uses the first.
func TokenFor(actor *mafia.Player, alternate, noLynch bool) string {
	if alternate && !noLynch && actor.HasProperty(model.PropertyDoubleVoter) {
		return TokenSecondary
	}
	return TokenPrimary
}

// Vote casts a vote for req.Target and lynches them if the threshold is
// reached
func (s *Service) Vote(ctx context.Context, req Request) (*Result, error) {
	return s.cast(ctx, req)
}

// NoLynch casts a vote for nobody. It is tallied but never lynches.
func (s *Service) NoLynch(ctx context.Context, req Request) (*Result, error) {
	req.Target = ""
	req.Alternate = false
	return s.cast(ctx, req)
}

func (s *Service) cast(ctx context.Context, req Request) (*Result, error) {
	game, unlock, err := s.store.LockedGame(ctx, req.Game)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := checkVoting(game); err != nil {
		return nil, err
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
	noLynch := target == nil
	token := TokenFor(actor, req.Alternate, noLynch)

	result := &Result{}

	// Keep at most one current vote per slot: revoke, then register
	previous := game.GetAction(mafia.ActionQuery{
		Actor: actor.Slug(),
		Type:  model.ActionVote,
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
		Type:   model.ActionVote,
		Token:  token,
	}
	if target != nil {
		register.Target = target.Slug()
	}
	if result.Action, err = game.RegisterAction(ctx, register); err != nil {
		return nil, err
	}

	result.Votes = countVotes(game, register.Target)
	result.Required = RequiredVotes(game.LiveCount(), target)

	s.logger.Info("vote cast",
		slog.Int("topic_id", game.TopicID()),
		slog.Int("post_id", req.PostID),
		slog.String("actor", actor.Slug()),
		slog.String("target", register.Target),
		slog.String("token", token),
		slog.Int("votes", result.Votes),
		slog.Int("required", result.Required),
	)

	if noLynch || result.Votes < result.Required {
		return result, nil
	}

	// The kill stands even if advancing the phase fails
	if result.Lynched, err = game.KillPlayer(ctx, target.Username()); err != nil {
		return result, err
	}
	s.logger.Info("player lynched",
		slog.Int("topic_id", game.TopicID()),
		slog.String("target", target.Slug()),
		slog.Int("day", game.Day()),
	)
	if _, err := game.NextPhase(ctx); err != nil {
		return result, fmt.Errorf("advance phase after lynch: %w", err)
	}
	return result, nil
}

// Unvote withdraws one of the actor's current votes
func (s *Service) Unvote(ctx context.Context, req UnvoteRequest) (*mafia.Action, error) {
	game, unlock, err := s.store.LockedGame(ctx, req.Game)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := checkVoting(game); err != nil {
		return nil, err
	}

	actor, err := game.GetLivePlayer(req.Actor)
	if err != nil {
		return nil, err
	}

	revoked, err := game.RevokeAction(ctx, req.PostID, mafia.ActionQuery{
		Actor:  actor.Slug(),
		Target: req.Target,
		Type:   model.ActionVote,
		Day:    game.Day(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vote withdrawn",
		slog.Int("topic_id", game.TopicID()),
		slog.Int("post_id", req.PostID),
		slog.String("actor", actor.Slug()),
		slog.String("target", revoked.TargetSlug()),
	)
	return revoked, nil
}

// checkVoting rejects votes outside the opening phase of an active
// game's day. A lynch advances the phase, so it also closes voting.
func checkVoting(game *mafia.Game) error {
	if !game.IsActive() {
		return model.ErrGameNotActive
	}
	if !game.IsFirstPhase() {
		return fmt.Errorf("%s: %w", game.Phase(), model.ErrWrongPhase)
	}
	return nil
}

// countVotes counts current votes cast today for target ("" counts
// no-lynch votes)
func countVotes(game *mafia.Game, target string) int {
	count := 0
	for _, a := range game.CurrentActions(model.ActionVote, game.Day()) {
		if a.TargetSlug() == target {
			count++
		}
	}
	return count
}
