package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	winLow  int
	winHigh int
	wins    int
	losses  int
	requeue bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(teamQueueCmd)
	rootCmd.AddCommand(buildTeamCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(buildMatchCmd)
	rootCmd.AddCommand(discardMatchCmd)

	usersCmd.Flags().IntVar(&winLow, "win-low", -1, "Only list players with at least this many wins")
	usersCmd.Flags().IntVar(&winHigh, "win-high", -1, "Only list players with at most this many wins")
	enqueueCmd.Flags().IntVar(&wins, "wins", 0, "Wins on record")
	enqueueCmd.Flags().IntVar(&losses, "losses", 0, "Losses on record")
	discardMatchCmd.Flags().BoolVar(&requeue, "requeue", false, "Return the match's teams to the team queue")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List roster players, optionally filtered by wins",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if cmd.Flags().Changed("win-low") {
			q.Set("winLow", strconv.Itoa(winLow))
		}
		if cmd.Flags().Changed("win-high") {
			q.Set("winHigh", strconv.Itoa(winHigh))
		}
		endpoint := "/users"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		return performGetRequest(endpoint)
	},
}

var userCmd = &cobra.Command{
	Use:   "user NAME",
	Short: "Show one roster player's record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/users/" + url.PathEscape(args[0]))
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the users waiting for a team",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matchmaking/users/queue")
	},
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue NAME",
	Short: "Add a user to the matchmaking queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]any{"name": args[0], "wins": wins, "losses": losses})
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/matchmaking/users", body)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a user from the matchmaking queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matchmaking/users/"+url.PathEscape(args[0]), nil)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List all team buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matchmaking/team")
	},
}

var teamQueueCmd = &cobra.Command{
	Use:   "team-queue",
	Short: "Show the teams waiting for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matchmaking/team/queue")
	},
}

var buildTeamCmd = &cobra.Command{
	Use:   "build-team",
	Short: "Run one team-build cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matchmaking/team", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matchmaking/matches")
	},
}

var buildMatchCmd = &cobra.Command{
	Use:   "build-match",
	Short: "Run one match-build cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matchmaking/matches", nil)
	},
}

var discardMatchCmd = &cobra.Command{
	Use:   "discard-match ID",
	Short: "Discard a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matchmaking/matches/" + url.PathEscape(args[0])
		if requeue {
			endpoint += "?requeue=true"
		}
		return performRequest(http.MethodDelete, endpoint, nil)
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, body []byte) error {
	target, err := buildURL(endpoint)
	if err != nil {
		return err
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}

// buildURL joins endpoint to host and appends the global query flags.
func buildURL(endpoint string) (string, error) {
	u, err := url.Parse(host + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	q := u.Query()
	if verbose {
		q.Set("verbose", "true")
	}
	if dryRun {
		q.Set("dry_run", "true")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
