package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/matchmaker/internal/database"
	"github.com/mauv0809/matchmaker/internal/matchmaking"
	"github.com/mauv0809/matchmaker/internal/metrics"
	"github.com/mauv0809/matchmaker/internal/notifier"
	"github.com/mauv0809/matchmaker/internal/pubsub"
	"github.com/mauv0809/matchmaker/internal/roster"
	"github.com/mauv0809/matchmaker/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	engine   *matchmaking.Coordinator
	roster   roster.RosterStore
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
}

// setupTestServer wires a real coordinator, scheduler and in-memory roster
// behind the router, with mocked side effects.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	rosterStore := roster.New(db)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	engine := matchmaking.NewCoordinator(matchmaking.Settings{
		TeamSizes:               []int{3},
		TeamAggressiveness:      100,
		TeamMinScoreTolerance:   50,
		SingleUserTeamThreshold: time.Hour,
		MatchAggressiveness:     100,
		MatchMinScoreTolerance:  50,
	}, metricsSvc)
	notif := notifier.NewMock()
	ps := pubsub.NewMock()
	sched := scheduler.New(engine, notif, metricsSvc, ps, scheduler.Intervals{TeamBuild: time.Second, MatchBuild: time.Second})

	server := NewServer(engine, sched, rosterStore, metrics.NewMetricsHandler(reg))
	return &testServer{Server: server, engine: engine, roster: rosterStore, notifier: notif, pubsub: ps}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func (s *testServer) enqueue(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := s.engine.EnqueueUser(n, 1, 1)
		require.NoError(t, err)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestMetricsHandler(t *testing.T) {
	s := setupTestServer(t)
	s.enqueue(t, "a", "b", "c")
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/matchmaking/team", "").Code)

	rr := s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `matchmaker_teams_formed_total{team_size="3"} 1`)
	assert.Contains(t, rr.Body.String(), "matchmaker_team_build_runs_total 1")
}

func TestListUsersHandler(t *testing.T) {
	s := setupTestServer(t)
	require.NoError(t, s.roster.UpsertPlayers([]roster.Player{
		{Name: "alice", Wins: 10, Losses: 2},
		{Name: "bob", Wins: 3, Losses: 4},
		{Name: "carol", Wins: 6, Losses: 6},
	}))

	tests := []struct {
		name   string
		target string
		want   map[string]roster.Record
	}{
		{"all players", "/users", map[string]roster.Record{
			"alice": {Wins: 10, Losses: 2}, "bob": {Wins: 3, Losses: 4}, "carol": {Wins: 6, Losses: 6},
		}},
		{"both bounds", "/users?winLow=3&winHigh=6", map[string]roster.Record{
			"bob": {Wins: 3, Losses: 4}, "carol": {Wins: 6, Losses: 6},
		}},
		{"low bound only", "/users?winLow=7", map[string]roster.Record{
			"alice": {Wins: 10, Losses: 2},
		}},
		{"empty range", "/users?winLow=20", map[string]roster.Record{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, decode[map[string]roster.Record](t, rr))
		})
	}

	rr := s.do(t, http.MethodGet, "/users?winLow=many", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUserQueueEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/matchmaking/users", `{"name":"alice","wins":3,"losses":1}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	p := decode[matchmaking.Participant](t, rr)
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, 3000.0, p.Score)

	rr = s.do(t, http.MethodPost, "/matchmaking/users", `{"name":"alice","wins":3,"losses":1}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodPost, "/matchmaking/users", `{"wins":3}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, "/matchmaking/users", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/matchmaking/users/queue", "")
	require.Equal(t, http.StatusOK, rr.Code)
	q := decode[userQueueBody](t, rr)
	assert.Equal(t, 1, q.Count)
	require.Len(t, q.Users, 1)
	assert.Equal(t, "alice", q.Users[0].ID)

	rr = s.do(t, http.MethodDelete, "/matchmaking/users/alice", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodDelete, "/matchmaking/users/alice", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodGet, "/matchmaking/users/queue", "")
	q = decode[userQueueBody](t, rr)
	assert.Equal(t, 0, q.Count)
	assert.NotNil(t, q.Users)
}

type userQueueBody struct {
	Count int                       `json:"count"`
	Users []matchmaking.Participant `json:"users"`
}

type teamsBody struct {
	Count int                      `json:"count"`
	Teams []matchmaking.TeamBucket `json:"teams"`
}

type teamQueueBody struct {
	Count int      `json:"count"`
	Teams []string `json:"teams"`
}

type matchesBody struct {
	Count   int                       `json:"count"`
	Matches []matchmaking.MatchBucket `json:"matches"`
}

func TestTeamEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/matchmaking/team", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	s.enqueue(t, "a", "b", "c")
	rr = s.do(t, http.MethodPost, "/matchmaking/team", "")
	require.Equal(t, http.StatusOK, rr.Code)
	team := decode[matchmaking.TeamBucket](t, rr)
	assert.Equal(t, 3, team.TeamSize)
	assert.Equal(t, matchmaking.StatusFinalized, team.Status)

	rr = s.do(t, http.MethodGet, "/matchmaking/team", "")
	teams := decode[teamsBody](t, rr)
	assert.Equal(t, 1, teams.Count)

	rr = s.do(t, http.MethodGet, "/matchmaking/team/queue", "")
	queue := decode[teamQueueBody](t, rr)
	assert.Equal(t, []string{team.BucketID}, queue.Teams)

	rr = s.do(t, http.MethodGet, "/matchmaking/team/"+team.BucketID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, team.BucketID, decode[matchmaking.TeamBucket](t, rr).BucketID)

	rr = s.do(t, http.MethodGet, "/matchmaking/team/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	require.Len(t, s.pubsub.Sent(), 1)
	assert.Equal(t, pubsub.EventTeamFormed, s.pubsub.Sent()[0].Topic)
}

func TestBuildTeam_DryRun(t *testing.T) {
	s := setupTestServer(t)
	s.enqueue(t, "a", "b", "c")

	rr := s.do(t, http.MethodPost, "/matchmaking/team?dry_run=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, s.pubsub.Sent())
	require.Len(t, s.notifier.TeamNotifications(), 1)
	assert.True(t, s.notifier.TeamNotifications()[0].DryRun)
}

func TestMatchEndpoints(t *testing.T) {
	s := setupTestServer(t)
	s.enqueue(t, "a", "b", "c", "d", "e", "f")
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/matchmaking/team", "").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/matchmaking/team", "").Code)

	rr := s.do(t, http.MethodPost, "/matchmaking/matches", "")
	require.Equal(t, http.StatusOK, rr.Code)
	match := decode[matchmaking.MatchBucket](t, rr)
	require.Len(t, match.Teams, 2)
	assert.Equal(t, matchmaking.StatusFinalized, match.Status)

	rr = s.do(t, http.MethodPost, "/matchmaking/matches", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(t, http.MethodGet, "/matchmaking/matches", "")
	matches := decode[matchesBody](t, rr)
	assert.Equal(t, 1, matches.Count)

	rr = s.do(t, http.MethodGet, "/matchmaking/matches/"+match.MatchID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, match.MatchID, decode[matchmaking.MatchBucket](t, rr).MatchID)

	require.Len(t, s.notifier.MatchNotifications(), 1)

	rr = s.do(t, http.MethodDelete, "/matchmaking/matches/"+match.MatchID+"?requeue=true", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/matchmaking/team/queue", "")
	queue := decode[teamQueueBody](t, rr)
	assert.Equal(t, []string{match.Teams[0].BucketID, match.Teams[1].BucketID}, queue.Teams)

	rr = s.do(t, http.MethodGet, "/matchmaking/matches/"+match.MatchID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = s.do(t, http.MethodDelete, "/matchmaking/matches/"+match.MatchID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// failingRoster always fails to read players.
type failingRoster struct{}

func (failingRoster) GetPlayersByWins(low, high *int) ([]roster.Player, error) {
	return nil, errors.New("db down")
}

func (failingRoster) GetPlayer(name string) (*roster.Player, error) {
	return nil, errors.New("db down")
}

func TestListUsersHandler_StoreError(t *testing.T) {
	server := NewServer(nil, nil, failingRoster{}, http.NotFoundHandler())
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/alice", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetUserHandler(t *testing.T) {
	s := setupTestServer(t)
	require.NoError(t, s.roster.UpsertPlayers([]roster.Player{{Name: "alice", Wins: 10, Losses: 2}}))

	rr := s.do(t, http.MethodGet, "/users/alice", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, roster.Player{Name: "alice", Wins: 10, Losses: 2}, decode[roster.Player](t, rr))

	rr = s.do(t, http.MethodGet, "/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
