package model

import (
	"time"
)

// EventType represents the type of dialogue event published for
// downstream consumers.
type EventType string

const (
	EventTypeTurn          EventType = "turn"
	EventTypeSlotLocked    EventType = "slot_locked"
	EventTypeClarification EventType = "clarification"
	EventTypeSlotsComplete EventType = "slots_complete"
)

// TurnEvent is emitted after every committed turn. The slots_complete
// event is the hand-off signal that itinerary, flight, and hotel search
// consume.
type TurnEvent struct {
	ID             string       `json:"id"`
	ConversationID string       `json:"conversation_id"`
	Type           EventType    `json:"type"`
	Slot           string       `json:"slot,omitempty"`
	ExpectedSlot   ExpectedSlot `json:"expected_slot"`
	State          *TripState   `json:"state,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	Sequence       uint64       `json:"sequence,omitempty"`
}
