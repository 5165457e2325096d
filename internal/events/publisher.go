package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/metrics"
)

const (
	// StreamName is the name of the trip events stream.
	StreamName = "TRIPS"

	// SubjectPrefix is the prefix for all trip subjects.
	SubjectPrefix = "trip"
)

// Publisher writes turn events to the TRIPS stream. The engine treats
// it as optional: a nil *Publisher is safe and publishes nothing, so
// the core stays runnable without a broker.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher over a connected client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// EnsureStream ensures the trips stream exists with proper
// configuration.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Dialogue turn events and completed trip specifications",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// TurnSubject returns the subject for a turn event.
func TurnSubject(conversationID string, slot string) string {
	return fmt.Sprintf("%s.%s.turn.%s", SubjectPrefix, conversationID, slot)
}

// CompleteSubject returns the subject signaling a completed trip
// specification.
func CompleteSubject(conversationID string) string {
	return fmt.Sprintf("%s.%s.complete", SubjectPrefix, conversationID)
}

// Publish writes one turn event. Nil receivers are a no-op so callers
// never need to branch on whether events are wired.
func (p *Publisher) Publish(ctx context.Context, event *model.TurnEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := TurnSubject(event.ConversationID, event.Slot)
	if event.Type == model.EventTypeSlotsComplete {
		subject = CompleteSubject(event.ConversationID)
	}

	ack, err := p.client.JetStream().Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	event.Sequence = ack.Sequence

	metrics.EventsPublishedTotal.WithLabelValues(string(event.Type)).Inc()
	return nil
}
