package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mafiagame-go/internal/mafia"
	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/services/vote"
)

type CLISuite struct {
	suite.Suite
	store string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.store = filepath.Join(s.T().TempDir(), "games.json")
}

// run executes one command in process against the suite's file store
func (s *CLISuite) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--store", s.store}, args...))

	err := cmd.Execute()
	if app != nil {
		_ = app.Close()
		app = nil
	}
	return stdout.String(), err
}

func (s *CLISuite) mustRun(args ...string) string {
	out, err := s.run(args...)
	s.Require().NoError(err, "output: %s", out)
	return out
}

func (s *CLISuite) TestGameLifecycleText() {
	out := s.mustRun("game", "create", "12", "Test")
	s.Contains(out, "Game: Test (topic 12)")
	s.Contains(out, "Day 1, day")

	s.mustRun("player", "add", "12", "Mod", "--moderator")
	out = s.mustRun("player", "add", "12", "Alice")
	s.Contains(out, "Player: Alice (alive)")

	out = s.mustRun("game", "next-phase", "12")
	s.Contains(out, "Day 1, night")

	out = s.mustRun("game", "list")
	s.Contains(out, "12\tTest\tday 1 night")
}

func (s *CLISuite) TestVoteJSON() {
	s.mustRun("game", "create", "7", "Mob")
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		s.mustRun("player", "add", "7", name)
	}
	s.mustRun("vote", "7", "1", "alice", "dave")
	s.mustRun("vote", "7", "2", "bob", "dave")

	out := s.mustRun("--output", "json", "vote", "7", "3", "carol", "dave")
	var v VoteView
	s.Require().NoError(json.Unmarshal([]byte(out), &v))
	s.Equal(3, v.Votes)
	s.Equal(3, v.Required)
	s.Equal("dave", v.Lynched)
	s.Equal("dave", v.Vote.Target)
}

func (s *CLISuite) TestTallyAndUnvote() {
	s.mustRun("game", "create", "7", "Mob")
	for _, name := range []string{"alice", "bob", "carol"} {
		s.mustRun("player", "add", "7", name)
	}
	s.mustRun("vote", "7", "#1", "alice", "bob")
	s.mustRun("nolynch", "7", "2", "carol")

	out := s.mustRun("tally", "7")
	s.Contains(out, "bob (1/2): alice")
	s.Contains(out, "No lynch (1/2): carol")
	s.Contains(out, "Not voting: bob")

	out = s.mustRun("--output", "json", "unvote", "7", "3", "alice")
	var a ActionView
	s.Require().NoError(json.Unmarshal([]byte(out), &a))
	s.Equal(1, a.PostID)
	s.Require().NotNil(a.RevokedID)
	s.Equal(3, *a.RevokedID)
}

func (s *CLISuite) TestActions() {
	s.mustRun("game", "create", "7", "Mob")
	s.mustRun("player", "add", "7", "alice")
	s.mustRun("player", "add", "7", "bob")

	s.mustRun("action", "issue", "7", "1", "alice", "kill", "bob")
	out := s.mustRun("action", "list", "7")
	s.Contains(out, "#1 day 1 kill[kill] alice -> bob")

	_, err := s.run("action", "issue", "7", "2", "alice", "vote", "bob")
	s.Equal(CodeCannotIssueVote, ErrorCode(err))
}

func (s *CLISuite) TestFlagsAndAreas() {
	s.mustRun("game", "create", "7", "Mob")
	s.mustRun("player", "add", "7", "alice")

	out := s.mustRun("player", "flag", "add", "7", "alice", "loved")
	s.Contains(out, "alice is now loved")
	out = s.mustRun("player", "flag", "add", "7", "alice", "loved")
	s.Contains(out, "alice is already loved")

	out = s.mustRun("game", "area", "add", "7", "chat:99")
	s.Contains(out, "c_99")
	out = s.mustRun("game", "show", "c_99")
	s.Contains(out, "Game: Mob")
}

func (s *CLISuite) TestErrorCodes() {
	_, err := s.run("game", "show", "404")
	s.Equal(CodeNoSuchGame, ErrorCode(err))

	_, err = s.run("game", "create", "abc", "Bad")
	s.Equal(CodeInternalError, ErrorCode(err))

	s.mustRun("game", "create", "7", "Mob")
	_, err = s.run("game", "set-phase", "7", "dusk")
	s.Equal(CodeInvalidTargetPhase, ErrorCode(err))

	_, err = s.run("vote", "7", "x", "alice", "bob")
	s.Equal(CodeInvalidPost, ErrorCode(err))

	_, err = s.run("vote", "7", "1", "alice", "bob smith")
	s.Equal(CodeInvalidUser, ErrorCode(err))
	_, err = s.run("action", "issue", "7", "1", "al!ce", "kill")
	s.Equal(CodeInvalidUser, ErrorCode(err))
}

func (s *CLISuite) TestVotingClosedAtNight() {
	s.mustRun("game", "create", "7", "Mob")
	s.mustRun("player", "add", "7", "alice")
	s.mustRun("player", "add", "7", "bob")
	s.mustRun("game", "set-phase", "7", "night")

	_, err := s.run("vote", "7", "1", "@alice", "bob")
	s.Equal(CodeWrongPhase, ErrorCode(err))
	_, err = s.run("nolynch", "7", "2", "alice")
	s.Equal(CodeWrongPhase, ErrorCode(err))

	// Role actions are not tied to the day
	s.mustRun("action", "issue", "7", "3", "@alice", "kill", "bob")
}

func (s *CLISuite) TestPrintVoteReportsLynchWithError() {
	game := mafia.Bind(model.NewGame(7, "Mob", []string{"t_7", "Mob"}, true), nil, nil)
	_, err := game.AddPlayer(context.Background(), "alice")
	s.Require().NoError(err)
	dave, err := game.AddPlayer(context.Background(), "dave")
	s.Require().NoError(err)
	cast, err := game.RegisterAction(context.Background(), mafia.RegisterRequest{
		PostID: 3, Actor: "alice", Target: "dave", Type: model.ActionVote, Token: "vote[1]",
	})
	s.Require().NoError(err)

	phaseErr := errors.New("advance phase after lynch: disk full")
	var buf bytes.Buffer
	err = printVote(NewOutput("text", &buf), &vote.Result{Action: cast, Votes: 1, Required: 1, Lynched: dave}, phaseErr)
	s.ErrorIs(err, phaseErr)
	s.Contains(buf.String(), "dave has been lynched")

	buf.Reset()
	err = printVote(NewOutput("text", &buf), &vote.Result{Action: cast, Votes: 1, Required: 2}, phaseErr)
	s.ErrorIs(err, phaseErr)
	s.Empty(buf.String())
}

func (s *CLISuite) TestRejectsUnknownOutput() {
	_, err := s.run("--output", "xml", "game", "list")
	s.Error(err)
}
