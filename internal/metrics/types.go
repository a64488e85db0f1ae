package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TeamBuildRuns      prometheus.Counter
	MatchBuildRuns     prometheus.Counter
	TeamsFormed        *prometheus.CounterVec
	MatchesFormed      *prometheus.CounterVec
	CorruptedRecords   prometheus.Counter
	CycleDuration      *prometheus.HistogramVec
	QueueDepth         *prometheus.GaugeVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// Cycle and queue label values.
const (
	CycleTeamBuild  = "team_build"
	CycleMatchBuild = "match_build"

	QueueUsers     = "users"
	QueueTeamPool  = "team_pool"
	QueueTeamQueue = "team_queue"
	QueueMatches   = "matches"
)
