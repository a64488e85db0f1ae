package matchmaking

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// TeamPool holds every team bucket by id plus the FIFO of finalized teams
// waiting for a match. Pool membership and queue membership are independent:
// a bucket stays in the pool while it sits in, or leaves, the team queue.
// It is not safe for concurrent use; the Coordinator serializes access.
type TeamPool struct {
	buckets      map[string]*TeamBucket
	queue        []string
	users        *UserQueue
	minTolerance float64
	now          func() time.Time
}

// NewTeamPool creates an empty pool that pulls participants from users.
func NewTeamPool(users *UserQueue, minTolerance float64, now func() time.Time) *TeamPool {
	return &TeamPool{
		buckets:      make(map[string]*TeamBucket),
		users:        users,
		minTolerance: minTolerance,
		now:          now,
	}
}

// CreateBucket seeds a new bucket. A bucket of size one is finalized and
// queued immediately.
func (p *TeamPool) CreateBucket(seed Participant, teamSize int) (string, error) {
	if !validTeamSize(teamSize) {
		return "", fmt.Errorf("%w: %d", ErrInvalidTeamSize, teamSize)
	}
	b := &TeamBucket{
		BucketID:          uuid.New().String(),
		SeedUser:          seed,
		TeamSize:          teamSize,
		Members:           []Participant{seed},
		AvgScore:          seed.Score,
		ScoreToleranceMax: math.Max(p.minTolerance, math.Min(seed.Score, MaxScore)),
		Status:            StatusForming,
	}
	p.buckets[b.BucketID] = b
	if teamSize == 1 {
		b.Status = StatusFinalized
		p.EnqueueTeam(b.BucketID)
	}
	log.Debug("Created team bucket", "bucketID", b.BucketID, "seed", seed.ID, "teamSize", teamSize)
	return b.BucketID, nil
}

// AddMember moves participant from the user queue into the bucket and
// returns the new member count. Reaching the team size finalizes the bucket
// and queues it for match making.
func (p *TeamPool) AddMember(bucketID string, participant Participant) (int, error) {
	b, ok := p.buckets[bucketID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrBucketNotFound, bucketID)
	}
	if b.Status != StatusForming || len(b.Members) >= b.TeamSize {
		return len(b.Members), fmt.Errorf("%w: %s", ErrBucketNotForming, bucketID)
	}
	if b.hasMember(participant.ID) {
		return len(b.Members), nil
	}
	b.Members = append(b.Members, participant)
	p.users.RemoveByID(participant.ID)
	b.AvgScore = averageScore(b.Members)

	if len(b.Members) == b.TeamSize {
		b.Status = StatusFinalized
		p.EnqueueTeam(bucketID)
	}
	return len(b.Members), nil
}

// DiscardBucket requeues every member except the seed at the tail of the
// user queue and removes the bucket from the pool. Disposing of the seed is
// left to the caller. It returns the number of requeued participants.
func (p *TeamPool) DiscardBucket(bucketID string) (int, error) {
	b, ok := p.buckets[bucketID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrBucketNotFound, bucketID)
	}
	b.Status = StatusDeleting
	requeued := 0
	for _, m := range b.Members {
		if m.ID == b.SeedUser.ID {
			continue
		}
		p.users.Enqueue(m, false)
		requeued++
	}
	p.RemoveFromQueue(bucketID)
	delete(p.buckets, bucketID)
	log.Debug("Discarded team bucket", "bucketID", bucketID, "requeued", requeued)
	return requeued, nil
}

// DequeueTeam pops the head of the team queue. Ids whose bucket has left the
// pool are dropped.
func (p *TeamPool) DequeueTeam() (TeamBucket, bool) {
	for len(p.queue) > 0 {
		id := p.queue[0]
		p.queue = slices.Delete(p.queue, 0, 1)
		if b, ok := p.buckets[id]; ok {
			return b.clone(), true
		}
		log.Warn("Dropping team queue entry without a bucket", "bucketID", id)
	}
	return TeamBucket{}, false
}

// EnqueueTeam pushes the bucket to the tail of the team queue, recording the
// first time it was queued. A bucket already in the queue is left in place.
func (p *TeamPool) EnqueueTeam(bucketID string) error {
	b, ok := p.buckets[bucketID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketID)
	}
	if b.EnqueuedAt == nil {
		t := p.now()
		b.EnqueuedAt = &t
	}
	if slices.Contains(p.queue, bucketID) {
		return nil
	}
	p.queue = append(p.queue, bucketID)
	return nil
}

// RemoveFromQueue drops bucketID from the team queue, leaving the pool untouched.
func (p *TeamPool) RemoveFromQueue(bucketID string) bool {
	i := slices.Index(p.queue, bucketID)
	if i < 0 {
		return false
	}
	p.queue = slices.Delete(p.queue, i, i+1)
	return true
}

// Remove deletes a bucket from both the pool and the team queue.
func (p *TeamPool) Remove(bucketID string) bool {
	if _, ok := p.buckets[bucketID]; !ok {
		return false
	}
	p.RemoveFromQueue(bucketID)
	delete(p.buckets, bucketID)
	return true
}

// GetBucket returns a copy of the bucket.
func (p *TeamPool) GetBucket(bucketID string) (TeamBucket, error) {
	b, ok := p.buckets[bucketID]
	if !ok {
		return TeamBucket{}, fmt.Errorf("%w: %s", ErrBucketNotFound, bucketID)
	}
	return b.clone(), nil
}

// AllBuckets returns copies of every bucket, oldest queued first and
// forming buckets last.
func (p *TeamPool) AllBuckets() []TeamBucket {
	out := make([]TeamBucket, 0, len(p.buckets))
	for _, b := range p.buckets {
		out = append(out, b.clone())
	}
	slices.SortStableFunc(out, func(a, b TeamBucket) int {
		switch {
		case a.EnqueuedAt == nil && b.EnqueuedAt == nil:
			return cmp.Compare(a.BucketID, b.BucketID)
		case a.EnqueuedAt == nil:
			return 1
		case b.EnqueuedAt == nil:
			return -1
		}
		if c := a.EnqueuedAt.Compare(*b.EnqueuedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.BucketID, b.BucketID)
	})
	return out
}

// QueueSnapshot returns the team queue in order.
func (p *TeamPool) QueueSnapshot() []string {
	return append(make([]string, 0, len(p.queue)), p.queue...)
}

// HasMember reports whether any bucket in the pool holds participant id.
func (p *TeamPool) HasMember(id string) bool {
	for _, b := range p.buckets {
		if b.hasMember(id) {
			return true
		}
	}
	return false
}

// Len returns the number of buckets in the pool.
func (p *TeamPool) Len() int {
	return len(p.buckets)
}

// QueueLen returns the number of teams waiting for a match.
func (p *TeamPool) QueueLen() int {
	return len(p.queue)
}

// bucket returns the live bucket for in-package readers.
func (p *TeamPool) bucket(bucketID string) (*TeamBucket, bool) {
	b, ok := p.buckets[bucketID]
	return b, ok
}

func validTeamSize(n int) bool {
	return n == 1 || n == 3 || n == 5
}

func averageScore(members []Participant) float64 {
	if len(members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range members {
		sum += m.Score
	}
	return sum / float64(len(members))
}
