package scheduler

import (
	"github.com/mauv0809/matchmaker/internal/matchmaking"
	"github.com/mauv0809/matchmaker/internal/notifier"
)

// Engine defines the matchmaking operations driven by the scheduler.
type Engine interface {
	RunTeamBuildCycle() (matchmaking.TeamBucket, bool)
	RunMatchBuildCycle() (matchmaking.MatchBucket, bool)
	Depths() matchmaking.Depths
}

// Notifier defines the notification operations required by the scheduler.
type Notifier interface {
	notifier.Notifier
}
