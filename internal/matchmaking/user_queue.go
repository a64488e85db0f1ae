package matchmaking

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// UserQueue is the FIFO of participants waiting to be placed into a team.
// It is not safe for concurrent use; the Coordinator serializes access.
type UserQueue struct {
	queue []Participant
	now   func() time.Time
}

// NewUserQueue creates an empty queue stamping entries with now.
func NewUserQueue(now func() time.Time) *UserQueue {
	return &UserQueue{now: now}
}

// Enqueue adds p at the tail, or at the head when atFront is set. Score and
// queue time are only computed when p does not carry them yet, so a
// participant that is requeued keeps its original values.
func (q *UserQueue) Enqueue(p Participant, atFront bool) Participant {
	if p.Score == 0 {
		p.Score, p.Corrupted = ComputeScore(p.Wins, p.Losses)
		if p.Corrupted {
			log.Warn("User has corrupted win/loss stats", "name", p.ID, "wins", p.Wins, "losses", p.Losses)
		}
	}
	if p.QueuedAt.IsZero() {
		p.QueuedAt = q.now()
	}
	if atFront {
		q.queue = slices.Insert(q.queue, 0, p)
	} else {
		q.queue = append(q.queue, p)
	}
	log.Debug("User joined the queue", "name", p.ID, "wins", p.Wins, "losses", p.Losses, "score", p.Score)
	return p
}

// DequeueFront removes and returns the head of the queue.
func (q *UserQueue) DequeueFront() (Participant, bool) {
	if len(q.queue) == 0 {
		return Participant{}, false
	}
	p := q.queue[0]
	q.queue = slices.Delete(q.queue, 0, 1)
	log.Debug("Dequeued user", "name", p.ID, "remaining", len(q.queue))
	return p, true
}

// RemoveByID removes the participant with the given id.
func (q *UserQueue) RemoveByID(id string) (Participant, bool) {
	i := q.indexOf(id)
	if i < 0 {
		return Participant{}, false
	}
	p := q.queue[i]
	q.queue = slices.Delete(q.queue, i, i+1)
	return p, true
}

// Contains reports whether id is queued.
func (q *UserQueue) Contains(id string) bool {
	return q.indexOf(id) >= 0
}

// Snapshot returns a copy of the queue in order.
func (q *UserQueue) Snapshot() []Participant {
	return append(make([]Participant, 0, len(q.queue)), q.queue...)
}

// Len returns the number of queued participants.
func (q *UserQueue) Len() int {
	return len(q.queue)
}

func (q *UserQueue) indexOf(id string) int {
	return slices.IndexFunc(q.queue, func(p Participant) bool { return p.ID == id })
}
