package model

import "errors"

// Error conditions surfaced to the command layer
var (
	// Game errors
	ErrGameExists            = errors.New("game already exists")
	ErrNoSuchGame            = errors.New("no such game")
	ErrMissingGameIdentifier = errors.New("missing game identifier")
	ErrGameNotActive         = errors.New("game is not active")
	ErrWrongPhase            = errors.New("not allowed in the current phase")
	ErrInvalidTargetPhase    = errors.New("invalid target phase")
	ErrInvalidPlayArea       = errors.New("invalid play area")

	// Participant errors
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrUserNotLive  = errors.New("user is not alive")
	ErrUserNotDead  = errors.New("user is not dead")

	// Identity errors
	ErrInvalidUser = errors.New("invalid user")
	ErrInvalidPost = errors.New("invalid post")

	// Action errors
	ErrCannotIssueVoteAsAction   = errors.New("cannot issue a vote as a generic action")
	ErrCannotRevokeVoteAsAction  = errors.New("cannot revoke a vote as a generic action")
	ErrNoMatchingAction          = errors.New("no matching action")
	ErrNoMatchingActionForTarget = errors.New("no matching action for target")
	ErrActionAlreadyRevoked      = errors.New("action has already been revoked")
)
