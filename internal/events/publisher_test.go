package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "trip.c-1.turn.destination", TurnSubject("c-1", "destination"))
	assert.Equal(t, "trip.c-1.complete", CompleteSubject("c-1"))
}

func TestPublish_NilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	err := p.Publish(context.Background(), &model.TurnEvent{ConversationID: "c-1"})
	assert.NoError(t, err)

	err = NewPublisher(nil).Publish(context.Background(), &model.TurnEvent{ConversationID: "c-1"})
	assert.NoError(t, err)
}
