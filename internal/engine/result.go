package engine

import (
	"errors"
	"fmt"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// ErrMissingConversationID is a client error: a turn cannot be
// processed without knowing which conversation it belongs to.
var ErrMissingConversationID = errors.New("conversation id is required")

// RejectKind distinguishes why an update was rejected. The distinction
// matters to the user: a validation failure is fixed by different
// input, a lock violation by explicitly requesting a change.
type RejectKind string

const (
	RejectValidation RejectKind = "validation"
	RejectLock       RejectKind = "lock"
)

// TurnResult is the engine's answer to one processed turn. A rejected
// or clarifying result always leaves the previous TripState unchanged
// apart from the clarification sub-state transitions the flow defines.
type TurnResult struct {
	ConfirmationText   string
	NeedsClarification bool
	Locked             bool
	Rejected           bool
	RejectKind         RejectKind
	ExpectedSlot       model.ExpectedSlot
	State              *model.TripState
}

func clarify(state *model.TripState, question string) *TurnResult {
	return &TurnResult{
		ConfirmationText:   question,
		NeedsClarification: true,
		ExpectedSlot:       state.ExpectedSlot,
		State:              state,
	}
}

func rejectValidation(state *model.TripState, message string) *TurnResult {
	return &TurnResult{
		ConfirmationText: message,
		Rejected:         true,
		RejectKind:       RejectValidation,
		ExpectedSlot:     state.ExpectedSlot,
		State:            state,
	}
}

func rejectLock(state *model.TripState, slot model.SlotName, current string) *TurnResult {
	return &TurnResult{
		ConfirmationText: fmt.Sprintf(
			"Your %s is already set to %s. Say \"change %s to ...\" if you'd like to modify it.",
			slot, current, slot,
		),
		Rejected:     true,
		RejectKind:   RejectLock,
		Locked:       true,
		ExpectedSlot: state.ExpectedSlot,
		State:        state,
	}
}
