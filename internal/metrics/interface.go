package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTeamBuildRuns()
	IncMatchBuildRuns()
	IncTeamsFormed(teamSize int)
	IncMatchesFormed(teamSize int)
	IncCorruptedRecords()
	ObserveCycleDuration(cycle string, duration float64)
	SetQueueDepth(queue string, depth int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
