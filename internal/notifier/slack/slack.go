package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchmaker/internal/matchmaking"
	"github.com/mauv0809/matchmaker/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Metrics is the subset of metrics recorded by the notifier.
type Metrics interface {
	IncSlackNotifSent()
	IncSlackNotifFailed()
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendMatchNotification announces a finalized match.
func (s *Notifier) SendMatchNotification(match matchmaking.MatchBucket, dryRun bool) error {
	msg := s.formatMatchNotification(match)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendTeamNotification announces a finalized team.
func (s *Notifier) SendTeamNotification(team matchmaking.TeamBucket, dryRun bool) error {
	msg := s.formatTeamNotification(team)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatMatchNotification creates the Slack message for a new match using Block Kit.
func (s *Notifier) formatMatchNotification(match matchmaking.MatchBucket) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⚔️ New %dv%d match! ⚔️", match.TeamSize, match.TeamSize), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// One field per team, home first.
	var fields []*slack.TextBlockObject
	for i, team := range match.Teams {
		label := "Home"
		if i > 0 {
			label = "Away"
		}
		fields = append(fields, slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s* (avg %.0f)\n%s", label, team.AvgScore, memberList(team)), false, false))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	if len(match.Teams) == 2 {
		gap := match.Teams[0].AvgScore - match.Teams[1].AvgScore
		if gap < 0 {
			gap = -gap
		}
		contextText := fmt.Sprintf("Score gap: %.0f · Match %s", gap, match.MatchID)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTeamNotification creates the Slack message for a finalized team.
func (s *Notifier) formatTeamNotification(team matchmaking.TeamBucket) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🤝 Team of %d ready", team.TeamSize), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	body := fmt.Sprintf("Players:\n%s", memberList(team))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", body, false, false), nil, nil))

	contextText := fmt.Sprintf("Average score: %.0f · Seed: %s", team.AvgScore, team.SeedUser.ID)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, false, false)))

	return slack.NewBlockMessage(blocks...)
}

func memberList(team matchmaking.TeamBucket) string {
	lines := make([]string, 0, len(team.Members))
	for _, m := range team.Members {
		lines = append(lines, fmt.Sprintf("• %s (%d-%d)", m.ID, m.Wins, m.Losses))
	}
	return strings.Join(lines, "\n")
}
