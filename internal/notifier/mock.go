package notifier

import (
	"sync"

	"github.com/mauv0809/matchmaker/internal/matchmaking"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchNotificationFunc func(match matchmaking.MatchBucket, dryRun bool) error
	SendTeamNotificationFunc  func(team matchmaking.TeamBucket, dryRun bool) error

	// Call records
	SendMatchNotificationCalls []MatchNotificationCall
	SendTeamNotificationCalls  []TeamNotificationCall
}

type MatchNotificationCall struct {
	Match  matchmaking.MatchBucket
	DryRun bool
}

type TeamNotificationCall struct {
	Team   matchmaking.TeamBucket
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchNotificationCalls = nil
	m.SendTeamNotificationCalls = nil
}

func (m *Mock) SendMatchNotification(match matchmaking.MatchBucket, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchNotificationCalls = append(m.SendMatchNotificationCalls, MatchNotificationCall{Match: match, DryRun: dryRun})
	if m.SendMatchNotificationFunc != nil {
		return m.SendMatchNotificationFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendTeamNotification(team matchmaking.TeamBucket, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamNotificationCalls = append(m.SendTeamNotificationCalls, TeamNotificationCall{Team: team, DryRun: dryRun})
	if m.SendTeamNotificationFunc != nil {
		return m.SendTeamNotificationFunc(team, dryRun)
	}
	return nil
}

// MatchNotifications returns a copy of the recorded match notifications.
func (m *Mock) MatchNotifications() []MatchNotificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MatchNotificationCall(nil), m.SendMatchNotificationCalls...)
}

// TeamNotifications returns a copy of the recorded team notifications.
func (m *Mock) TeamNotifications() []TeamNotificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TeamNotificationCall(nil), m.SendTeamNotificationCalls...)
}
