package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName      string
	Port        string
	LogLevel    string
	Turso       TursoConfig
	Slack       SlackConfig
	ProjectID   string
	Matchmaking MatchmakingConfig
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}

// MatchmakingConfig holds the tuning values of the team-build and
// match-build cycles.
type MatchmakingConfig struct {
	TeamBuild  TeamBuildConfig
	MatchBuild MatchBuildConfig
}
type TeamBuildConfig struct {
	Interval                time.Duration
	Sizes                   []int
	Aggressiveness          float64
	MinScoreTolerance       float64
	SingleUserTeamThreshold time.Duration
}
type MatchBuildConfig struct {
	Interval          time.Duration
	Aggressiveness    float64
	MinScoreTolerance float64
}
