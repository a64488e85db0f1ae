package matchmaking

import (
	"slices"
	"sync"
	"time"
)

// Status represents the lifecycle state of a team or match bucket.
type Status string

const (
	StatusForming   Status = "forming"
	StatusFinalized Status = "finalized"
	StatusDeleting  Status = "deleting"
)

// Participant is a queued user with the score computed when it first joined the queue.
type Participant struct {
	ID        string    `json:"name"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Score     float64   `json:"score"`
	QueuedAt  time.Time `json:"queued_at"`
	Corrupted bool      `json:"corrupted,omitempty"`
}

// TeamBucket is a team in formation or a finalized team waiting for a match.
type TeamBucket struct {
	BucketID          string        `json:"bucket_id"`
	SeedUser          Participant   `json:"seed_user"`
	TeamSize          int           `json:"team_size"`
	Members           []Participant `json:"users"`
	AvgScore          float64       `json:"avg_score"`
	ScoreToleranceMax float64       `json:"score_tolerance_max"`
	Status            Status        `json:"status"`
	EnqueuedAt        *time.Time    `json:"enqueued_at,omitempty"`
}

// MatchBucket pairs a home team with at most one opponent of the same size.
type MatchBucket struct {
	MatchID  string       `json:"match_id"`
	TeamSize int          `json:"team_size"`
	Teams    []TeamBucket `json:"team_buckets"`
	Status   Status       `json:"status"`
}

// Settings holds the tuning values for both cycles.
type Settings struct {
	// TeamSizes are attempted in order on every team-build cycle.
	TeamSizes               []int
	TeamAggressiveness      float64
	TeamMinScoreTolerance   float64
	SingleUserTeamThreshold time.Duration
	MatchAggressiveness     float64
	MatchMinScoreTolerance  float64
}

// Depths reports the size of every container owned by the coordinator.
type Depths struct {
	Users     int `json:"users"`
	TeamPool  int `json:"team_pool"`
	TeamQueue int `json:"team_queue"`
	Matches   int `json:"matches"`
}

// Coordinator owns the user queue, team pool and match pool. Every command,
// query and cycle runs under mu, so no two mutations interleave.
type Coordinator struct {
	mu       sync.Mutex
	users    *UserQueue
	teams    *TeamPool
	matches  *MatchPool
	settings Settings
	metrics  Metrics
	now      func() time.Time
}

func (b *TeamBucket) clone() TeamBucket {
	c := *b
	c.Members = slices.Clone(b.Members)
	if b.EnqueuedAt != nil {
		t := *b.EnqueuedAt
		c.EnqueuedAt = &t
	}
	return c
}

func (b *TeamBucket) hasMember(id string) bool {
	for _, m := range b.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (m *MatchBucket) clone() MatchBucket {
	c := *m
	c.Teams = make([]TeamBucket, len(m.Teams))
	for i := range m.Teams {
		c.Teams[i] = m.Teams[i].clone()
	}
	return c
}
