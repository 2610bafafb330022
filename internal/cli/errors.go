package cli

import (
	"errors"

	"github.com/mcoot/mafiagame-go/internal/model"
)

// Error condition tokens reported to the user
const (
	CodeGameExists                = "GAME_EXISTS"
	CodeNoSuchGame                = "NO_SUCH_GAME"
	CodeMissingGameIdentifier     = "MISSING_GAME_IDENTIFIER"
	CodeGameNotActive             = "GAME_NOT_ACTIVE"
	CodeWrongPhase                = "WRONG_PHASE"
	CodeInvalidTargetPhase        = "INVALID_TARGET_PHASE"
	CodeInvalidPlayArea           = "INVALID_PLAY_AREA"
	CodeUserExists                = "USER_EXISTS"
	CodeUserNotFound              = "USER_NOT_FOUND"
	CodeUserNotLive               = "USER_NOT_LIVE"
	CodeUserNotDead               = "USER_NOT_DEAD"
	CodeInvalidUser               = "INVALID_USER"
	CodeInvalidPost               = "INVALID_POST"
	CodeCannotIssueVote           = "CANNOT_ISSUE_VOTE_AS_ACTION"
	CodeCannotRevokeVote          = "CANNOT_REVOKE_VOTE_AS_ACTION"
	CodeNoMatchingAction          = "NO_MATCHING_ACTION"
	CodeNoMatchingActionForTarget = "NO_MATCHING_ACTION_FOR_TARGET"
	CodeActionAlreadyRevoked      = "ACTION_ALREADY_REVOKED"
	CodeInternalError             = "INTERNAL_ERROR"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{model.ErrGameExists, CodeGameExists},
	{model.ErrNoSuchGame, CodeNoSuchGame},
	{model.ErrMissingGameIdentifier, CodeMissingGameIdentifier},
	{model.ErrGameNotActive, CodeGameNotActive},
	{model.ErrWrongPhase, CodeWrongPhase},
	{model.ErrInvalidTargetPhase, CodeInvalidTargetPhase},
	{model.ErrInvalidPlayArea, CodeInvalidPlayArea},
	{model.ErrUserExists, CodeUserExists},
	{model.ErrUserNotFound, CodeUserNotFound},
	{model.ErrUserNotLive, CodeUserNotLive},
	{model.ErrUserNotDead, CodeUserNotDead},
	{model.ErrInvalidUser, CodeInvalidUser},
	{model.ErrInvalidPost, CodeInvalidPost},
	{model.ErrCannotIssueVoteAsAction, CodeCannotIssueVote},
	{model.ErrCannotRevokeVoteAsAction, CodeCannotRevokeVote},
	{model.ErrNoMatchingActionForTarget, CodeNoMatchingActionForTarget},
	{model.ErrNoMatchingAction, CodeNoMatchingAction},
	{model.ErrActionAlreadyRevoked, CodeActionAlreadyRevoked},
}

// ErrorCode maps an error to its condition token
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternalError
}
