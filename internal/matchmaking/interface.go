package matchmaking

import "github.com/mauv0809/matchmaker/internal/roster"

// Roster is the read-only source of participants used to seed the user queue.
type Roster interface {
	GetAllPlayers() ([]roster.Player, error)
}

// Metrics defines the counters the coordinator records.
// This keeps the matchmaking package decoupled from the main metrics interface.
type Metrics interface {
	IncTeamsFormed(teamSize int)
	IncMatchesFormed(teamSize int)
	IncCorruptedRecords()
}
