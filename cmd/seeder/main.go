package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/matchmaker/internal/database"
	"github.com/mauv0809/matchmaker/internal/roster"
	"github.com/spf13/cobra"
)

var (
	file       string
	count      int
	clearFirst bool
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the roster database",
	Long: `Loads players into the roster database, either from a JSON file of
[{"name","wins","losses"}] records or as randomly generated players.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&file, "file", "", "JSON roster file to load")
	rootCmd.Flags().IntVar(&count, "count", 50, "Number of random players to generate when no file is given")
	rootCmd.Flags().BoolVar(&clearFirst, "clear", false, "Remove all existing players first")
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	for _, key := range []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		config[key] = os.Getenv(key)
	}
	return config
}

func run() error {
	log.Info("Starting roster seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()
	store := roster.New(db)

	if clearFirst {
		store.Clear()
	}

	var players []roster.Player
	if file != "" {
		players, err = readRoster(file)
		if err != nil {
			return err
		}
	} else {
		players = randomPlayers(count, rand.New(rand.NewSource(rand.Int63())))
	}

	if err := store.UpsertPlayers(players); err != nil {
		return fmt.Errorf("failed to upsert players: %w", err)
	}
	log.Info("Seeding complete", "players", len(players))
	return nil
}

func readRoster(path string) ([]roster.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	var players []roster.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	for i, p := range players {
		if p.Name == "" {
			return nil, fmt.Errorf("roster entry %d has no name", i)
		}
	}
	return players, nil
}

func randomPlayers(n int, rng *rand.Rand) []roster.Player {
	players := make([]roster.Player, n)
	for i := range players {
		players[i] = roster.Player{
			Name:   fmt.Sprintf("Seeder Player %03d", i+1),
			Wins:   rng.Intn(100),
			Losses: rng.Intn(100),
		}
	}
	return players
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Seeder failed: %s", err)
	}
}
