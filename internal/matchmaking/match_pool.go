package matchmaking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// MatchPool holds the matches being formed or already finalized.
// It is not safe for concurrent use; the Coordinator serializes access.
type MatchPool struct {
	matches map[string]*MatchBucket
	teams   *TeamPool
}

// NewMatchPool creates an empty pool reading teams from teams.
func NewMatchPool(teams *TeamPool) *MatchPool {
	return &MatchPool{
		matches: make(map[string]*MatchBucket),
		teams:   teams,
	}
}

// CreateMatch opens a match with homeBucketID as the home team.
func (p *MatchPool) CreateMatch(homeBucketID string) (string, error) {
	home, ok := p.teams.bucket(homeBucketID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBucketNotFound, homeBucketID)
	}
	m := &MatchBucket{
		MatchID:  uuid.New().String(),
		TeamSize: home.TeamSize,
		Teams:    []TeamBucket{home.clone()},
		Status:   StatusForming,
	}
	p.matches[m.MatchID] = m
	log.Debug("Created match", "matchID", m.MatchID, "home", homeBucketID)
	return m.MatchID, nil
}

// AddOpponent completes the match with opponentBucketID, taking it off the
// team queue. Nothing changes when the match is full, the sizes differ or
// the opponent is already in the match.
func (p *MatchPool) AddOpponent(matchID, opponentBucketID string) error {
	m, ok := p.matches[matchID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if len(m.Teams) >= 2 || m.Status == StatusFinalized {
		return fmt.Errorf("%w: %s", ErrMatchFinalized, matchID)
	}
	opp, ok := p.teams.bucket(opponentBucketID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, opponentBucketID)
	}
	if slices.ContainsFunc(m.Teams, func(t TeamBucket) bool { return t.BucketID == opponentBucketID }) {
		return fmt.Errorf("%w: %s", ErrDuplicateTeam, opponentBucketID)
	}
	if opp.TeamSize != m.TeamSize {
		return fmt.Errorf("%w: %d vs %d", ErrTeamSizeMismatch, opp.TeamSize, m.TeamSize)
	}

	p.teams.RemoveFromQueue(opponentBucketID)
	m.Teams = append(m.Teams, opp.clone())
	m.Status = StatusFinalized
	return nil
}

// GetMatch returns a copy of the match.
func (p *MatchPool) GetMatch(matchID string) (MatchBucket, error) {
	m, ok := p.matches[matchID]
	if !ok {
		return MatchBucket{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return m.clone(), nil
}

// AllMatches returns copies of every match ordered by id.
func (p *MatchPool) AllMatches() []MatchBucket {
	out := make([]MatchBucket, 0, len(p.matches))
	for _, m := range p.matches {
		out = append(out, m.clone())
	}
	slices.SortFunc(out, func(a, b MatchBucket) int { return cmp.Compare(a.MatchID, b.MatchID) })
	return out
}

// DiscardMatch removes the match. With requeueTeams every constituent team
// goes back on the team queue. Otherwise the teams are dropped from the team
// pool as well, which frees their members to queue again.
func (p *MatchPool) DiscardMatch(matchID string, requeueTeams bool) (MatchBucket, error) {
	m, ok := p.matches[matchID]
	if !ok {
		return MatchBucket{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	for _, t := range m.Teams {
		if !requeueTeams {
			p.teams.Remove(t.BucketID)
			continue
		}
		if err := p.teams.EnqueueTeam(t.BucketID); err != nil {
			log.Warn("Could not requeue team from discarded match", "matchID", matchID, "bucketID", t.BucketID, "error", err)
		}
	}
	delete(p.matches, matchID)
	return m.clone(), nil
}

// Len returns the number of matches in the pool.
func (p *MatchPool) Len() int {
	return len(p.matches)
}
