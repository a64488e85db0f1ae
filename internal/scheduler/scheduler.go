package scheduler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchmaker/internal/matchmaking"
	"github.com/mauv0809/matchmaker/internal/metrics"
	"github.com/mauv0809/matchmaker/internal/pubsub"
)

// New creates a new Scheduler. notifier and pubsub may be nil.
func New(engine Engine, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, intervals Intervals) *Scheduler {
	return &Scheduler{
		engine:        engine,
		pubsub:        pubsub,
		notifier:      notifier,
		metrics:       metrics,
		teamInterval:  intervals.TeamBuild,
		matchInterval: intervals.MatchBuild,
	}
}

// Start launches both cycles. They stop when ctx is cancelled; use Wait to
// block until they have returned.
func (s *Scheduler) Start(ctx context.Context) {
	log.Info("Starting matchmaking scheduler", "teamBuildInterval", s.teamInterval, "matchBuildInterval", s.matchInterval)
	s.wg.Add(2)
	go s.loop(ctx, metrics.CycleTeamBuild, s.teamInterval, func() { s.BuildTeam(false) })
	go s.loop(ctx, metrics.CycleMatchBuild, s.matchInterval, func() { s.BuildMatch(false) })
}

// Wait blocks until both cycle loops have stopped.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, cycle string, interval time.Duration, run func()) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping cycle", "cycle", cycle)
			return
		case <-ticker.C:
			run()
		}
	}
}

// BuildTeam runs one team-build cycle unless one is already running.
func (s *Scheduler) BuildTeam(dryRun bool) (matchmaking.TeamBucket, bool) {
	if !s.teamBusy.CompareAndSwap(false, true) {
		log.Debug("Team build cycle still running, skipping")
		return matchmaking.TeamBucket{}, false
	}
	defer s.teamBusy.Store(false)

	s.metrics.IncTeamBuildRuns()
	startTime := time.Now()
	team, ok := s.engine.RunTeamBuildCycle()
	s.metrics.ObserveCycleDuration(metrics.CycleTeamBuild, time.Since(startTime).Seconds())
	s.recordDepths()
	if !ok {
		return team, false
	}

	s.publish(pubsub.EventTeamFormed, team, dryRun)
	if s.notifier != nil {
		if err := s.notifier.SendTeamNotification(team, dryRun); err != nil {
			log.Error("Failed to send team notification", "error", err, "bucketID", team.BucketID)
		}
	}
	return team, true
}

// BuildMatch runs one match-build cycle unless one is already running.
func (s *Scheduler) BuildMatch(dryRun bool) (matchmaking.MatchBucket, bool) {
	if !s.matchBusy.CompareAndSwap(false, true) {
		log.Debug("Match build cycle still running, skipping")
		return matchmaking.MatchBucket{}, false
	}
	defer s.matchBusy.Store(false)

	s.metrics.IncMatchBuildRuns()
	startTime := time.Now()
	match, ok := s.engine.RunMatchBuildCycle()
	s.metrics.ObserveCycleDuration(metrics.CycleMatchBuild, time.Since(startTime).Seconds())
	s.recordDepths()
	if !ok {
		return match, false
	}

	s.publish(pubsub.EventMatchFormed, match, dryRun)
	if s.notifier != nil {
		if err := s.notifier.SendMatchNotification(match, dryRun); err != nil {
			log.Error("Failed to send match notification", "error", err, "matchID", match.MatchID)
		}
	}
	return match, true
}

func (s *Scheduler) publish(event pubsub.EventType, data any, dryRun bool) {
	if s.pubsub == nil {
		return
	}
	if dryRun {
		log.Info("[Dry Run] Would publish event", "event", event)
		return
	}
	if err := s.pubsub.SendMessage(event, data); err != nil {
		log.Error("Failed to publish event", "event", event, "error", err)
	}
}

func (s *Scheduler) recordDepths() {
	d := s.engine.Depths()
	s.metrics.SetQueueDepth(metrics.QueueUsers, d.Users)
	s.metrics.SetQueueDepth(metrics.QueueTeamPool, d.TeamPool)
	s.metrics.SetQueueDepth(metrics.QueueTeamQueue, d.TeamQueue)
	s.metrics.SetQueueDepth(metrics.QueueMatches, d.Matches)
}
