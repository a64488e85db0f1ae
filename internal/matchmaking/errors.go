package matchmaking

import "errors"

// Team pool errors
var (
	ErrBucketNotFound   = errors.New("team bucket not found")
	ErrBucketNotForming = errors.New("team bucket is not forming")
	ErrInvalidTeamSize  = errors.New("team size must be 1, 3 or 5")
)

// Match pool errors
var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchFinalized   = errors.New("match already has two teams")
	ErrTeamSizeMismatch = errors.New("opponent team size differs from home team")
	ErrDuplicateTeam    = errors.New("team is already part of this match")
)

// User queue errors
var (
	ErrUserNotFound       = errors.New("user not found in queue")
	ErrAlreadyQueued      = errors.New("user is already queued or in a team")
	ErrInvalidParticipant = errors.New("participant name is required")
)
