package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchmaker/internal/config"
	"github.com/mauv0809/matchmaker/internal/database"
	server "github.com/mauv0809/matchmaker/internal/http"
	"github.com/mauv0809/matchmaker/internal/matchmaking"
	"github.com/mauv0809/matchmaker/internal/metrics"
	"github.com/mauv0809/matchmaker/internal/notifier/slack"
	"github.com/mauv0809/matchmaker/internal/pubsub"
	"github.com/mauv0809/matchmaker/internal/roster"
	"github.com/mauv0809/matchmaker/internal/scheduler"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	log.SetLevel(config.ParseLevel(cfg.LogLevel))

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	rosterStore := roster.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	engine := matchmaking.NewCoordinator(settingsFromConfig(cfg.Matchmaking), metricsSvc)
	if _, err := engine.LoadRoster(rosterStore); err != nil {
		log.Fatalf("Failed to load roster: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var notifier scheduler.Notifier
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured, notifications are disabled")
	}

	var publisher pubsub.PubSubClient
	if cfg.ProjectID != "" {
		publisher, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer publisher.Close()
	} else {
		log.Warn("GCP_PROJECT is not set, event publishing is disabled")
	}

	sched := scheduler.New(engine, notifier, metricsSvc, publisher, scheduler.Intervals{
		TeamBuild:  cfg.Matchmaking.TeamBuild.Interval,
		MatchBuild: cfg.Matchmaking.MatchBuild.Interval,
	})
	s := server.NewServer(engine, sched, rosterStore, metricsHandler)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	sched.Start(ctx)

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	cancel()
	sched.Wait()
	log.Info("Server process shutting down")
}

func settingsFromConfig(cfg config.MatchmakingConfig) matchmaking.Settings {
	return matchmaking.Settings{
		TeamSizes:               cfg.TeamBuild.Sizes,
		TeamAggressiveness:      cfg.TeamBuild.Aggressiveness,
		TeamMinScoreTolerance:   cfg.TeamBuild.MinScoreTolerance,
		SingleUserTeamThreshold: cfg.TeamBuild.SingleUserTeamThreshold,
		MatchAggressiveness:     cfg.MatchBuild.Aggressiveness,
		MatchMinScoreTolerance:  cfg.MatchBuild.MinScoreTolerance,
	}
}
