package notifier

import "github.com/mauv0809/matchmaker/internal/matchmaking"

// Notifier defines a high-level interface for announcing matchmaking events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finalized matches
	SendMatchNotification(match matchmaking.MatchBucket, dryRun bool) error
	// For finalized teams
	SendTeamNotification(team matchmaking.TeamBucket, dryRun bool) error
}
