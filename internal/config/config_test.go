package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"DB_NAME":                                   "matchmaker.db",
		"PORT":                                      "8080",
		"TEAM_BUILD_INTERVAL":                       "500ms",
		"MATCH_BUILD_INTERVAL":                      "2s",
		"TEAM_BUILD_EXPANSION_AGGRESSIVENESS":       "100",
		"TEAM_BUILD_EXPANSION_MIN_SCORE_TOLERANCE":  "50",
		"TEAM_BUILD_SINGLE_USER_TEAM_THRESHOLD":     "1m",
		"MATCH_BUILD_EXPANSION_AGGRESSIVENESS":      "100",
		"MATCH_BUILD_EXPANSION_MIN_SCORE_TOLERANCE": "50",
	}
}

func TestFromLookup_Valid(t *testing.T) {
	env := validEnv()
	env["SLACK_BOT_TOKEN"] = "xoxb-1"
	env["GCP_PROJECT"] = "proj"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)

	assert.Equal(t, "matchmaker.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "xoxb-1", cfg.Slack.Token)
	assert.Equal(t, "proj", cfg.ProjectID)
	assert.Equal(t, 500*time.Millisecond, cfg.Matchmaking.TeamBuild.Interval)
	assert.Equal(t, 2*time.Second, cfg.Matchmaking.MatchBuild.Interval)
	assert.Equal(t, 100.0, cfg.Matchmaking.TeamBuild.Aggressiveness)
	assert.Equal(t, 50.0, cfg.Matchmaking.MatchBuild.MinScoreTolerance)
	assert.Equal(t, time.Minute, cfg.Matchmaking.TeamBuild.SingleUserTeamThreshold)
	assert.Equal(t, []int{5, 3}, cfg.Matchmaking.TeamBuild.Sizes)
}

func TestFromLookup_MissingRequired(t *testing.T) {
	env := validEnv()
	delete(env, "TEAM_BUILD_EXPANSION_AGGRESSIVENESS")
	delete(env, "PORT")

	_, err := FromLookup(lookupFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEAM_BUILD_EXPANSION_AGGRESSIVENESS")
	assert.Contains(t, err.Error(), "PORT")
}

func TestFromLookup_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{"bad duration", "TEAM_BUILD_INTERVAL", "soon", "TEAM_BUILD_INTERVAL"},
		{"bad float", "MATCH_BUILD_EXPANSION_AGGRESSIVENESS", "lots", "MATCH_BUILD_EXPANSION_AGGRESSIVENESS"},
		{"zero aggressiveness", "TEAM_BUILD_EXPANSION_AGGRESSIVENESS", "0", "must be positive"},
		{"negative tolerance", "MATCH_BUILD_EXPANSION_MIN_SCORE_TOLERANCE", "-1", "must not be negative"},
		{"unsupported team size", "TEAM_BUILD_SIZES", "5,4", "must be 1, 3 or 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := validEnv()
			env[tt.key] = tt.value
			_, err := FromLookup(lookupFrom(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestFromLookup_TeamSizes(t *testing.T) {
	env := validEnv()
	env["TEAM_BUILD_SIZES"] = "3, 5"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, cfg.Matchmaking.TeamBuild.Sizes)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}
