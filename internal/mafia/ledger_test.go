package mafia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mafiagame-go/internal/model"
)

type LedgerSuite struct {
	suite.Suite
	persister *countingPersister
	data      *model.Game
	game      *Game
	ctx       context.Context
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.persister = &countingPersister{}
	s.data = model.NewGame(1, "Ledger", []string{"t_1"}, true)
	s.game = Bind(s.data, s.persister, nil)
	s.ctx = context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := s.game.AddPlayer(s.ctx, name)
		s.Require().NoError(err)
	}
}

func (s *LedgerSuite) register(postID int, actor, target string) *Action {
	a, err := s.game.RegisterAction(s.ctx, RegisterRequest{PostID: postID, Actor: actor, Target: target})
	s.Require().NoError(err)
	return a
}

func (s *LedgerSuite) TestRegisterDefaults() {
	a := s.register(10, "Alice", "BOB")

	s.Equal(10, a.PostID())
	s.Equal("alice", a.ActorSlug())
	s.Equal("bob", a.TargetSlug())
	s.Equal(model.ActionVote, a.Type())
	s.Equal(model.TokenVote, a.Token())
	s.Equal(1, a.Day())
	s.True(a.IsCurrent())
	s.True(a.HasTarget())
	s.Equal("Alice", a.Actor().Username())
	s.Equal("Bob", a.Target().Username())
}

func (s *LedgerSuite) TestRegisterWithoutTarget() {
	a := s.register(10, "alice", "")

	s.False(a.HasTarget())
	s.Nil(a.Target())
	s.Nil(s.data.Actions[0].Target)
}

func (s *LedgerSuite) TestRegisterStampsCurrentDay() {
	_, err := s.game.NewDay(s.ctx)
	s.Require().NoError(err)

	a := s.register(10, "alice", "bob")
	s.Equal(2, a.Day())
}

func (s *LedgerSuite) TestRegisterAppendsAndPersists() {
	saves := s.persister.saves
	s.register(10, "alice", "bob")
	s.register(11, "alice", "carol")

	s.Len(s.data.Actions, 2)
	s.Equal(saves+2, s.persister.saves)
}

func (s *LedgerSuite) TestGetActionRequiresActor() {
	s.register(10, "alice", "bob")

	s.Nil(s.game.GetAction(ActionQuery{Target: "bob"}))
}

func (s *LedgerSuite) TestGetActionFilters() {
	s.register(10, "alice", "bob")
	_, err := s.game.RegisterAction(s.ctx, RegisterRequest{PostID: 11, Actor: "alice", Target: "carol", Type: "kill", Token: "kill"})
	s.Require().NoError(err)

	a := s.game.GetAction(ActionQuery{Actor: "ALICE"})
	s.Require().NotNil(a)
	s.Equal(10, a.PostID())

	a = s.game.GetAction(ActionQuery{Actor: "alice", Type: "kill"})
	s.Require().NotNil(a)
	s.Equal(11, a.PostID())

	a = s.game.GetAction(ActionQuery{Actor: "alice", Target: "Carol"})
	s.Require().NotNil(a)
	s.Equal(11, a.PostID())

	s.Nil(s.game.GetAction(ActionQuery{Actor: "alice", Day: 2}))
	s.Nil(s.game.GetAction(ActionQuery{Actor: "bob"}))
}

func (s *LedgerSuite) TestRevokedEntriesAreSkippedUnlessRequested() {
	a := s.register(10, "alice", "bob")
	_, err := a.Revoke(s.ctx, 12)
	s.Require().NoError(err)

	s.Nil(s.game.GetAction(ActionQuery{Actor: "alice"}))

	found := s.game.GetAction(ActionQuery{Actor: "alice", IncludeRevoked: true})
	s.Require().NotNil(found)
	revokedID, ok := found.RevokedID()
	s.True(ok)
	s.Equal(12, revokedID)
}

func (s *LedgerSuite) TestRevokeTwiceFails() {
	a := s.register(10, "alice", "bob")

	_, err := a.Revoke(s.ctx, 12)
	s.Require().NoError(err)

	_, err = a.Revoke(s.ctx, 13)
	s.ErrorIs(err, model.ErrActionAlreadyRevoked)
	revokedID, _ := a.RevokedID()
	s.Equal(12, revokedID)
}

func (s *LedgerSuite) TestRevokeAction() {
	s.register(10, "alice", "bob")

	revoked, err := s.game.RevokeAction(s.ctx, 11, ActionQuery{Actor: "alice"})
	s.Require().NoError(err)
	s.False(revoked.IsCurrent())
	s.Equal(10, revoked.PostID())
}

func (s *LedgerSuite) TestRevokeActionErrors() {
	s.register(10, "alice", "bob")

	_, err := s.game.RevokeAction(s.ctx, 11, ActionQuery{Actor: "carol"})
	s.ErrorIs(err, model.ErrNoMatchingAction)

	_, err = s.game.RevokeAction(s.ctx, 11, ActionQuery{Actor: "alice", Target: "carol"})
	s.ErrorIs(err, model.ErrNoMatchingActionForTarget)
}

func (s *LedgerSuite) TestActionsAndCurrentActions() {
	s.register(10, "alice", "bob")
	s.register(11, "bob", "alice")
	_, err := s.game.RevokeAction(s.ctx, 12, ActionQuery{Actor: "bob"})
	s.Require().NoError(err)

	s.Len(s.game.Actions(ActionQuery{}), 1)
	s.Len(s.game.Actions(ActionQuery{IncludeRevoked: true}), 2)
	s.Len(s.game.Actions(ActionQuery{Target: "alice", IncludeRevoked: true}), 1)

	current := s.game.CurrentActions(model.ActionVote, 1)
	s.Require().Len(current, 1)
	s.Equal("alice", current[0].ActorSlug())
	s.Empty(s.game.CurrentActions(model.ActionVote, 2))
}

func (s *LedgerSuite) TestActorResolvesAfterDeath() {
	a := s.register(10, "alice", "bob")
	_, err := s.game.KillPlayer(s.ctx, "bob")
	s.Require().NoError(err)

	target := a.Target()
	s.Require().NotNil(target)
	s.False(target.IsAlive())
}
