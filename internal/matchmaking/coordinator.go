package matchmaking

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// NewCoordinator creates a coordinator with empty containers.
func NewCoordinator(settings Settings, metrics Metrics) *Coordinator {
	c := &Coordinator{
		settings: settings,
		metrics:  metrics,
		now:      time.Now,
	}
	clock := func() time.Time { return c.now() }
	c.users = NewUserQueue(clock)
	c.teams = NewTeamPool(c.users, settings.TeamMinScoreTolerance, clock)
	c.matches = NewMatchPool(c.teams)
	return c
}

// LoadRoster seeds the user queue from the roster, in roster order.
func (c *Coordinator) LoadRoster(r Roster) (int, error) {
	players, err := r.GetAllPlayers()
	if err != nil {
		return 0, fmt.Errorf("failed to list roster players: %w", err)
	}
	loaded := 0
	for _, p := range players {
		if _, err := c.EnqueueUser(p.Name, p.Wins, p.Losses); err != nil {
			log.Warn("Skipping roster player", "name", p.Name, "error", err)
			continue
		}
		loaded++
	}
	log.Info("Loaded users into the matchmaking queue", "count", loaded)
	return loaded, nil
}

// EnqueueUser adds a participant to the tail of the user queue.
func (c *Coordinator) EnqueueUser(name string, wins, losses int) (Participant, error) {
	if name == "" {
		return Participant{}, ErrInvalidParticipant
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.users.Contains(name) || c.teams.HasMember(name) {
		return Participant{}, fmt.Errorf("%w: %s", ErrAlreadyQueued, name)
	}
	p := c.users.Enqueue(Participant{ID: name, Wins: wins, Losses: losses}, false)
	if p.Corrupted {
		c.metrics.IncCorruptedRecords()
	}
	log.Info("Enqueued user", "name", name, "score", p.Score)
	return p, nil
}

// RemoveUser takes a participant out of the user queue.
func (c *Coordinator) RemoveUser(name string) (Participant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.users.RemoveByID(name)
	if !ok {
		return Participant{}, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	log.Info("Removed user from queue", "name", name)
	return p, nil
}

// RunTeamBuildCycle takes the head of the user queue as seed and tries to
// build a team around it, trying each configured size in order. When no
// size fills, a seed that has waited past the single user threshold gets a
// team of its own; otherwise it goes back to the tail of the queue.
func (c *Coordinator) RunTeamBuildCycle() (TeamBucket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seed, ok := c.users.DequeueFront()
	if !ok {
		log.Debug("No users in queue")
		return TeamBucket{}, false
	}

	for _, size := range c.settings.TeamSizes {
		bucketID, err := c.teams.CreateBucket(seed, size)
		if err != nil {
			log.Error("Failed to create team bucket", "seed", seed.ID, "error", err)
			continue
		}
		if c.fillTeam(bucketID) {
			return c.formedTeam(bucketID)
		}
		requeued, _ := c.teams.DiscardBucket(bucketID)
		log.Debug("No team found, cleared bucket", "bucketID", bucketID, "teamSize", size, "requeued", requeued)
	}

	if waited := c.now().Sub(seed.QueuedAt); waited >= c.settings.SingleUserTeamThreshold {
		bucketID, err := c.teams.CreateBucket(seed, 1)
		if err == nil {
			log.Info("Seed waited past threshold, forming single user team", "seed", seed.ID, "waited", waited)
			return c.formedTeam(bucketID)
		}
		log.Error("Failed to create single user team", "seed", seed.ID, "error", err)
	}

	c.users.Enqueue(seed, false)
	log.Debug("No team formed this cycle", "seed", seed.ID)
	return TeamBucket{}, false
}

func (c *Coordinator) formedTeam(bucketID string) (TeamBucket, bool) {
	b, err := c.teams.GetBucket(bucketID)
	if err != nil {
		return TeamBucket{}, false
	}
	c.metrics.IncTeamsFormed(b.TeamSize)
	log.Info("Team formed", "bucketID", b.BucketID, "teamSize", b.TeamSize, "avgScore", b.AvgScore)
	return b, true
}

func (c *Coordinator) fillTeam(bucketID string) bool {
	b, ok := c.teams.bucket(bucketID)
	if !ok {
		return false
	}
	search := expansion[Participant]{
		candidates: c.users.Snapshot,
		score:      func(p Participant) float64 { return p.Score },
		center:     func() float64 { return b.AvgScore },
		full:       func() bool { return len(b.Members) >= b.TeamSize },
		commit: func(p Participant) bool {
			n, err := c.teams.AddMember(bucketID, p)
			if err != nil {
				log.Warn("Failed to add user to team bucket", "bucketID", bucketID, "name", p.ID, "error", err)
				return false
			}
			log.Debug("Added user to team bucket", "bucketID", bucketID, "name", p.ID, "members", n)
			return n >= b.TeamSize
		},
	}
	start := initialTolerance(c.settings.TeamAggressiveness, b.SeedUser.Score)
	ok, tolerance := search.run(start, b.ScoreToleranceMax)
	if !ok {
		log.Debug("Team tolerance exhausted", "bucketID", bucketID, "tolerance", tolerance, "max", b.ScoreToleranceMax)
	}
	return ok
}

// RunMatchBuildCycle takes the head of the team queue as home team and looks
// for an opponent of the same size. When none is found within the bound the
// match is discarded and the home team returns to the team queue.
func (c *Coordinator) RunMatchBuildCycle() (MatchBucket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	home, ok := c.teams.DequeueTeam()
	if !ok {
		log.Debug("No teams in queue")
		return MatchBucket{}, false
	}
	matchID, err := c.matches.CreateMatch(home.BucketID)
	if err != nil {
		log.Error("Failed to create match", "home", home.BucketID, "error", err)
		return MatchBucket{}, false
	}

	if c.findOpponent(matchID, home) {
		m, err := c.matches.GetMatch(matchID)
		if err != nil {
			return MatchBucket{}, false
		}
		c.metrics.IncMatchesFormed(m.TeamSize)
		log.Info("Match formed", "matchID", matchID, "home", home.BucketID, "opponent", m.Teams[1].BucketID)
		return m, true
	}

	if _, err := c.matches.DiscardMatch(matchID, true); err != nil {
		log.Error("Failed to discard match", "matchID", matchID, "error", err)
	}
	log.Debug("No opponent found, home team requeued", "home", home.BucketID)
	return MatchBucket{}, false
}

// findOpponent searches the team queue for an opponent of home. The home
// score is read once from the dequeued copy and held fixed for the attempt.
func (c *Coordinator) findOpponent(matchID string, home TeamBucket) bool {
	matched := false
	search := expansion[TeamBucket]{
		candidates: func() []TeamBucket {
			ids := c.teams.QueueSnapshot()
			out := make([]TeamBucket, 0, len(ids))
			for _, id := range ids {
				if b, ok := c.teams.bucket(id); ok {
					out = append(out, *b)
				}
			}
			return out
		},
		score: func(t TeamBucket) float64 { return t.AvgScore },
		eligible: func(t TeamBucket) bool {
			return t.BucketID != home.BucketID && t.TeamSize == home.TeamSize
		},
		center: func() float64 { return home.AvgScore },
		full:   func() bool { return matched },
		commit: func(t TeamBucket) bool {
			if err := c.matches.AddOpponent(matchID, t.BucketID); err != nil {
				log.Warn("Failed to add opponent", "matchID", matchID, "bucketID", t.BucketID, "error", err)
				return false
			}
			matched = true
			return true
		},
	}
	start := initialTolerance(c.settings.MatchAggressiveness, home.AvgScore)
	bound := math.Max(home.AvgScore, c.settings.MatchMinScoreTolerance)
	ok, tolerance := search.run(start, bound)
	if !ok {
		log.Debug("Match tolerance exhausted", "matchID", matchID, "tolerance", tolerance, "max", bound)
	}
	return ok
}

// DiscardMatch removes a match, optionally returning its teams to the team queue.
func (c *Coordinator) DiscardMatch(matchID string, requeueTeams bool) (MatchBucket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.matches.DiscardMatch(matchID, requeueTeams)
	if err != nil {
		return MatchBucket{}, err
	}
	log.Info("Cleared match", "matchID", matchID, "requeued", requeueTeams)
	return m, nil
}

// UserQueue returns a copy of the user queue.
func (c *Coordinator) UserQueue() []Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users.Snapshot()
}

// TeamBucket returns a copy of one team bucket.
func (c *Coordinator) TeamBucket(bucketID string) (TeamBucket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teams.GetBucket(bucketID)
}

// TeamBuckets returns copies of all team buckets.
func (c *Coordinator) TeamBuckets() []TeamBucket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teams.AllBuckets()
}

// TeamQueue returns the ids of teams waiting for a match.
func (c *Coordinator) TeamQueue() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teams.QueueSnapshot()
}

// Match returns a copy of one match.
func (c *Coordinator) Match(matchID string) (MatchBucket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches.GetMatch(matchID)
}

// Matches returns copies of all matches.
func (c *Coordinator) Matches() []MatchBucket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches.AllMatches()
}

// Depths reports container sizes.
func (c *Coordinator) Depths() Depths {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Depths{
		Users:     c.users.Len(),
		TeamPool:  c.teams.Len(),
		TeamQueue: c.teams.QueueLen(),
		Matches:   c.matches.Len(),
	}
}

// IsNotFound reports whether err refers to an unknown user, bucket or match.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrBucketNotFound) || errors.Is(err, ErrMatchNotFound)
}
