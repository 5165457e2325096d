package model

import (
	"time"
)

// CreateConversationRequest is the request to start a new trip
// conversation.
type CreateConversationRequest struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateConversationResponse returns the new conversation and its
// initial state.
type CreateConversationResponse struct {
	ConversationID string       `json:"conversation_id"`
	ExpectedSlot   ExpectedSlot `json:"expected_slot"`
	Prompt         string       `json:"prompt"`
	CreatedAt      time.Time    `json:"created_at"`
}

// TurnRequest is one user utterance applied to a conversation.
type TurnRequest struct {
	Slot           string `json:"slot,omitempty"`
	Value          string `json:"value"`
	ExplicitChange bool   `json:"explicit_change,omitempty"`
}

// TurnResponse is the engine's reply to one processed turn.
type TurnResponse struct {
	ConfirmationText   string       `json:"confirmation_text"`
	NeedsClarification bool         `json:"needs_clarification"`
	Locked             bool         `json:"locked"`
	Rejected           bool         `json:"rejected,omitempty"`
	RejectReason       string       `json:"reject_reason,omitempty"`
	ExpectedSlot       ExpectedSlot `json:"expected_slot"`
	State              *TripState   `json:"state"`
}
