package roster

import "sync"

var _ RosterStore = (*Mock)(nil)

// Mock is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	UpsertPlayersFunc    func(players []Player) error
	GetAllPlayersFunc    func() ([]Player, error)
	GetPlayersByWinsFunc func(low, high *int) ([]Player, error)
	GetPlayerFunc        func(name string) (*Player, error)

	UpsertPlayersCalls    [][]Player
	GetAllPlayersCalls    int
	GetPlayersByWinsCalls []struct{ Low, High *int }
	ClearCalls            int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) UpsertPlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *Mock) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAllPlayersCalls++
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return []Player{}, nil
}

func (m *Mock) GetPlayersByWins(low, high *int) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersByWinsCalls = append(m.GetPlayersByWinsCalls, struct{ Low, High *int }{low, high})
	if m.GetPlayersByWinsFunc != nil {
		return m.GetPlayersByWinsFunc(low, high)
	}
	return []Player{}, nil
}

func (m *Mock) GetPlayer(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(name)
	}
	return nil, ErrPlayerNotFound
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}
