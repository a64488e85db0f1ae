package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mauv0809/matchmaker/internal/metrics"
	"github.com/mauv0809/matchmaker/internal/pubsub"
)

// Scheduler runs the team-build and match-build cycles on their own tickers.
// A cycle that is still running when its next tick fires is skipped.
type Scheduler struct {
	engine   Engine
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics

	teamInterval  time.Duration
	matchInterval time.Duration

	teamBusy  atomic.Bool
	matchBusy atomic.Bool
	wg        sync.WaitGroup
}

// Intervals sets how often each cycle runs.
type Intervals struct {
	TeamBuild  time.Duration
	MatchBuild time.Duration
}
