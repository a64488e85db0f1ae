package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TeamBuildRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaker_team_build_runs_total",
			Help: "The total number of team-build cycles executed.",
		}),
		MatchBuildRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaker_match_build_runs_total",
			Help: "The total number of match-build cycles executed.",
		}),
		TeamsFormed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaker_teams_formed_total",
			Help: "The total number of finalized teams, by team size.",
		}, []string{"team_size"}),
		MatchesFormed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaker_matches_formed_total",
			Help: "The total number of finalized matches, by team size.",
		}, []string{"team_size"}),
		CorruptedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaker_corrupted_records_total",
			Help: "The total number of users enqueued with negative win/loss stats.",
		}),
		CycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchmaker_cycle_duration_seconds",
			Help:    "The duration of individual matchmaking cycles.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"cycle"}),
		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "matchmaker_queue_depth",
			Help: "The current number of entries in each matchmaking container.",
		}, []string{"queue"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaker_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaker_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchmaker_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TeamBuildRuns,
		s.MatchBuildRuns,
		s.TeamsFormed,
		s.MatchesFormed,
		s.CorruptedRecords,
		s.CycleDuration,
		s.QueueDepth,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTeamBuildRuns() {
	s.TeamBuildRuns.Inc()
}

func (s *Service) IncMatchBuildRuns() {
	s.MatchBuildRuns.Inc()
}

func (s *Service) IncTeamsFormed(teamSize int) {
	s.TeamsFormed.WithLabelValues(strconv.Itoa(teamSize)).Inc()
}

func (s *Service) IncMatchesFormed(teamSize int) {
	s.MatchesFormed.WithLabelValues(strconv.Itoa(teamSize)).Inc()
}

func (s *Service) IncCorruptedRecords() {
	s.CorruptedRecords.Inc()
}

func (s *Service) ObserveCycleDuration(cycle string, duration float64) {
	s.CycleDuration.WithLabelValues(cycle).Observe(duration)
}

func (s *Service) SetQueueDepth(queue string, depth int) {
	s.QueueDepth.WithLabelValues(queue).Set(float64(depth))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
