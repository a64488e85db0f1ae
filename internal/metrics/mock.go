package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	teamBuildRuns    int
	matchBuildRuns   int
	teamsFormed      map[int]int
	matchesFormed    map[int]int
	corruptedRecords int
	cycleDurations   map[string][]float64
	queueDepths      map[string]int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		teamsFormed:    make(map[int]int),
		matchesFormed:  make(map[int]int),
		cycleDurations: make(map[string][]float64),
		queueDepths:    make(map[string]int),
	}
}

func (m *Mock) IncTeamBuildRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamBuildRuns++
}

func (m *Mock) IncMatchBuildRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchBuildRuns++
}

func (m *Mock) IncTeamsFormed(teamSize int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamsFormed[teamSize]++
}

func (m *Mock) IncMatchesFormed(teamSize int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesFormed[teamSize]++
}

func (m *Mock) IncCorruptedRecords() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corruptedRecords++
}

func (m *Mock) ObserveCycleDuration(cycle string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleDurations[cycle] = append(m.cycleDurations[cycle], duration)
}

func (m *Mock) SetQueueDepth(queue string, depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueDepths[queue] = depth
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TeamBuildRuns returns the number of times IncTeamBuildRuns was called.
func (m *Mock) TeamBuildRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamBuildRuns
}

// MatchBuildRuns returns the number of times IncMatchBuildRuns was called.
func (m *Mock) MatchBuildRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchBuildRuns
}

// TeamsFormed returns how many teams of teamSize were recorded.
func (m *Mock) TeamsFormed(teamSize int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamsFormed[teamSize]
}

// MatchesFormed returns how many matches of teamSize were recorded.
func (m *Mock) MatchesFormed(teamSize int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesFormed[teamSize]
}

// CorruptedRecords returns the number of times IncCorruptedRecords was called.
func (m *Mock) CorruptedRecords() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.corruptedRecords
}

// CycleDurations returns the durations observed for cycle.
func (m *Mock) CycleDurations(cycle string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.cycleDurations[cycle]...)
}

// QueueDepth returns the last depth set for queue.
func (m *Mock) QueueDepth(queue string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueDepths[queue]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
