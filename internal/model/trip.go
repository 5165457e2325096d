// Package model defines data structures for the trip dialogue engine.
package model

import (
	"time"
)

// ExpectedSlot identifies which piece of trip information the engine is
// waiting for. Exactly one is active per conversation at any time.
type ExpectedSlot string

const (
	ExpectDestination       ExpectedSlot = "destination"
	ExpectDestinationScope  ExpectedSlot = "destination-scope"
	ExpectRouteConfirmation ExpectedSlot = "route-confirmation"
	ExpectOrigin            ExpectedSlot = "origin"
	ExpectDates             ExpectedSlot = "dates"
	ExpectDatesConfirm      ExpectedSlot = "dates-confirm"
	ExpectTravelers         ExpectedSlot = "travelers"
	ExpectBudget            ExpectedSlot = "budget"
	ExpectPreferences       ExpectedSlot = "preferences-or-create"
	ExpectComplete          ExpectedSlot = "complete"
)

// SlotName identifies one of the five trip input slots.
type SlotName string

const (
	SlotDestination SlotName = "destination"
	SlotOrigin      SlotName = "origin"
	SlotDates       SlotName = "dates"
	SlotTravelers   SlotName = "travelers"
	SlotBudget      SlotName = "budget"
)

// ValidSlotNames lists every addressable slot.
var ValidSlotNames = []SlotName{SlotDestination, SlotOrigin, SlotDates, SlotTravelers, SlotBudget}

// TripState is the single persisted aggregate per conversation. It is
// mutated exclusively by the dialogue engine and stored as one JSON
// document per conversation ID.
type TripState struct {
	ConversationID string       `json:"conversation_id"`
	ExpectedSlot   ExpectedSlot `json:"expected_slot"`

	Destination Slot[DestinationValue] `json:"destination"`
	Origin      Slot[string]           `json:"origin"`
	Dates       Slot[DateRange]        `json:"dates"`
	Travelers   Slot[int]              `json:"travelers"`
	Budget      Slot[Money]            `json:"budget"`

	// MultiCityPlan is present only while the destination scope is
	// multi-city or comprehensive-tour. Collapsing to a single city
	// discards it entirely.
	MultiCityPlan *MultiCityPlan `json:"multi_city_plan,omitempty"`

	// Preferences holds the free-text note captured in the
	// preferences-or-create state.
	Preferences string `json:"preferences,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
}

// NewTripState creates a fresh state for a conversation: all slots
// empty, expecting a destination.
func NewTripState(conversationID string, now time.Time) *TripState {
	return &TripState{
		ConversationID: conversationID,
		ExpectedSlot:   ExpectDestination,
		LastUpdated:    now,
	}
}

// Complete reports whether every essential slot is locked and the flow
// has reached its terminal state.
func (s *TripState) Complete() bool {
	return s.ExpectedSlot == ExpectComplete
}

// Touch records a mutation timestamp. Used for staleness inspection,
// not for concurrency control.
func (s *TripState) Touch(now time.Time) {
	s.LastUpdated = now
}
