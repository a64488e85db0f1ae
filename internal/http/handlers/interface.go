package handlers

import (
	"github.com/mauv0809/matchmaker/internal/matchmaking"
	"github.com/mauv0809/matchmaker/internal/roster"
)

// Matchmaker is the command and query surface of the matchmaking engine.
type Matchmaker interface {
	EnqueueUser(name string, wins, losses int) (matchmaking.Participant, error)
	RemoveUser(name string) (matchmaking.Participant, error)
	UserQueue() []matchmaking.Participant
	TeamBucket(bucketID string) (matchmaking.TeamBucket, error)
	TeamBuckets() []matchmaking.TeamBucket
	TeamQueue() []string
	Match(matchID string) (matchmaking.MatchBucket, error)
	Matches() []matchmaking.MatchBucket
	DiscardMatch(matchID string, requeueTeams bool) (matchmaking.MatchBucket, error)
}

// Cycles runs a single team-build or match-build cycle on demand.
type Cycles interface {
	BuildTeam(dryRun bool) (matchmaking.TeamBucket, bool)
	BuildMatch(dryRun bool) (matchmaking.MatchBucket, bool)
}

// Roster lists players with their records.
type Roster interface {
	GetPlayersByWins(low, high *int) ([]roster.Player, error)
	GetPlayer(name string) (*roster.Player, error)
}
