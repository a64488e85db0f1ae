package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType is the topic a matchmaking event is published to.
type EventType string

const (
	EventTeamFormed  EventType = "team-formed"
	EventMatchFormed EventType = "match-formed"
)
