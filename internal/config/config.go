package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var defaultTeamSizes = []int{5, 3}

// Load reads configuration from environment variables and .env file.
// A missing or invalid required value is fatal.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromLookup builds a Config from lookup, reporting every missing or
// invalid value at once.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var errs []error

	// A helper function to get a required env var. Missing values are collected.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		errs = append(errs, fmt.Errorf("required environment variable %s is not set", key))
		return ""
	}
	optional := func(key string) string {
		value, _ := lookup(key)
		return value
	}
	duration := func(key string) time.Duration {
		raw := getEnv(key)
		if raw == "" {
			return 0
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	float := func(key string) float64 {
		raw := getEnv(key)
		if raw == "" {
			return 0
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return f
	}

	cfg := Config{
		DBName:   getEnv("DB_NAME"),
		Port:     getEnv("PORT"),
		LogLevel: optional("LOG_LEVEL"),
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL"),
			AuthToken:  optional("TURSO_AUTH_TOKEN"),
		},
		Slack: SlackConfig{
			Token:     optional("SLACK_BOT_TOKEN"),
			ChannelID: optional("SLACK_CHANNEL_ID"),
		},
		ProjectID: optional("GCP_PROJECT"),
		Matchmaking: MatchmakingConfig{
			TeamBuild: TeamBuildConfig{
				Interval:                duration("TEAM_BUILD_INTERVAL"),
				Aggressiveness:          float("TEAM_BUILD_EXPANSION_AGGRESSIVENESS"),
				MinScoreTolerance:       float("TEAM_BUILD_EXPANSION_MIN_SCORE_TOLERANCE"),
				SingleUserTeamThreshold: duration("TEAM_BUILD_SINGLE_USER_TEAM_THRESHOLD"),
			},
			MatchBuild: MatchBuildConfig{
				Interval:          duration("MATCH_BUILD_INTERVAL"),
				Aggressiveness:    float("MATCH_BUILD_EXPANSION_AGGRESSIVENESS"),
				MinScoreTolerance: float("MATCH_BUILD_EXPANSION_MIN_SCORE_TOLERANCE"),
			},
		},
	}

	sizes, err := parseTeamSizes(optional("TEAM_BUILD_SIZES"))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Matchmaking.TeamBuild.Sizes = sizes

	if len(errs) == 0 {
		errs = append(errs, cfg.Matchmaking.validate()...)
	}
	return cfg, errors.Join(errs...)
}

func (m MatchmakingConfig) validate() []error {
	var errs []error
	if m.TeamBuild.Interval <= 0 {
		errs = append(errs, errors.New("TEAM_BUILD_INTERVAL must be positive"))
	}
	if m.MatchBuild.Interval <= 0 {
		errs = append(errs, errors.New("MATCH_BUILD_INTERVAL must be positive"))
	}
	if m.TeamBuild.Aggressiveness <= 0 {
		errs = append(errs, errors.New("TEAM_BUILD_EXPANSION_AGGRESSIVENESS must be positive"))
	}
	if m.MatchBuild.Aggressiveness <= 0 {
		errs = append(errs, errors.New("MATCH_BUILD_EXPANSION_AGGRESSIVENESS must be positive"))
	}
	if m.TeamBuild.MinScoreTolerance < 0 {
		errs = append(errs, errors.New("TEAM_BUILD_EXPANSION_MIN_SCORE_TOLERANCE must not be negative"))
	}
	if m.MatchBuild.MinScoreTolerance < 0 {
		errs = append(errs, errors.New("MATCH_BUILD_EXPANSION_MIN_SCORE_TOLERANCE must not be negative"))
	}
	if m.TeamBuild.SingleUserTeamThreshold < 0 {
		errs = append(errs, errors.New("TEAM_BUILD_SINGLE_USER_TEAM_THRESHOLD must not be negative"))
	}
	return errs
}

// parseTeamSizes reads a comma separated list such as "5,3".
func parseTeamSizes(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return append([]int(nil), defaultTeamSizes...), nil
	}
	var sizes []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("TEAM_BUILD_SIZES: %w", err)
		}
		if n != 1 && n != 3 && n != 5 {
			return nil, fmt.Errorf("TEAM_BUILD_SIZES: team size %d must be 1, 3 or 5", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// ParseLevel maps LOG_LEVEL onto a log level, defaulting to info.
func ParseLevel(raw string) log.Level {
	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
