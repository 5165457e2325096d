// Package engine implements the slot-filling dialogue state machine.
// It owns the per-conversation TripState, dispatches each utterance to
// the analyzer for the expected slot, applies the locking/confirmation
// protocol, and decides what to ask next. Every branch yields either a
// state transition or a clarification request; the engine has no fatal
// states of its own.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/analyzer"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/events"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/lexicon"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/store"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/tour"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/logger"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/metrics"
)

// Engine is the dialogue orchestrator. It holds no per-conversation
// state of its own; everything lives in the injected Store, so engines
// scale horizontally.
type Engine struct {
	store        store.Store
	lookup       lexicon.Lookup
	destinations *analyzer.DestinationAnalyzer
	dates        *analyzer.DateParser
	tours        *tour.Selector
	events       *events.Publisher
	logger       *logger.Logger
	now          func() time.Time
}

// New creates an engine using the real clock. The publisher may be nil
// when no event stream is wired.
func New(st store.Store, lookup lexicon.Lookup, pub *events.Publisher, log *logger.Logger) *Engine {
	return NewAt(st, lookup, pub, log, time.Now)
}

// NewAt creates an engine with an injected clock.
func NewAt(st store.Store, lookup lexicon.Lookup, pub *events.Publisher, log *logger.Logger, now func() time.Time) *Engine {
	return &Engine{
		store:        st,
		lookup:       lookup,
		destinations: analyzer.NewDestinationAnalyzer(lookup),
		dates:        analyzer.NewDateParserAt(now),
		tours:        tour.NewSelector(lookup),
		events:       pub,
		logger:       log,
		now:          now,
	}
}

// StartConversation creates and persists a fresh TripState.
func (e *Engine) StartConversation(ctx context.Context, conversationID string) (*model.TripState, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrMissingConversationID
	}
	state := model.NewTripState(conversationID, e.now())
	if err := e.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save conversation %s: %w", conversationID, err)
	}
	metrics.ConversationsTotal.Inc()
	return state, nil
}

// State loads the current TripState for a conversation.
func (e *Engine) State(ctx context.Context, conversationID string) (*model.TripState, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrMissingConversationID
	}
	return e.store.Load(ctx, conversationID)
}

// ProcessTurn applies one user utterance to a conversation: load state,
// dispatch, persist, respond. Each turn is a single synchronous
// read-modify-write cycle; concurrent turns on the same conversation
// are not serialized and the later save wins.
func (e *Engine) ProcessTurn(ctx context.Context, conversationID, slot, rawValue string, explicitChange bool) (*TurnResult, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrMissingConversationID
	}

	state, err := e.store.Load(ctx, conversationID)
	created := false
	if errors.Is(err, store.ErrNotFound) {
		state = model.NewTripState(conversationID, e.now())
		created = true
	} else if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}

	slotLabel := slot
	if slotLabel == "" {
		slotLabel = string(state.ExpectedSlot)
	}

	result, mutated := e.dispatch(state, slot, rawValue, explicitChange)

	if result.Rejected {
		// Rejected updates never persist: the user can retry without
		// losing prior progress.
		e.recordTurn(slotLabel, result)
		return result, nil
	}

	if mutated || created {
		state.Touch(e.now())
		if err := e.store.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("save conversation %s: %w", conversationID, err)
		}
		e.publish(ctx, slotLabel, result, mutated)
	}

	e.recordTurn(slotLabel, result)
	return result, nil
}

// dispatch routes an utterance to the right handler and returns the
// result plus whether state was mutated.
func (e *Engine) dispatch(state *model.TripState, slotName, raw string, explicitChange bool) (*TurnResult, bool) {
	if explicitChange && slotName != "" {
		return e.handleChange(state, model.SlotName(slotName), raw)
	}

	// Confirmation sub-states always consume the next utterance,
	// whatever slot the caller named.
	switch state.ExpectedSlot {
	case model.ExpectDestinationScope:
		return e.handleDestinationScope(state, raw)
	case model.ExpectRouteConfirmation:
		return e.handleRouteConfirmation(state, raw)
	case model.ExpectDatesConfirm:
		return e.handleDatesConfirm(state, raw)
	case model.ExpectPreferences:
		if slotName == "" || slotName == "preferences" {
			return e.handlePreferences(state, raw)
		}
	case model.ExpectComplete:
		if slotName == "" {
			return &TurnResult{
				ConfirmationText: "Your trip specification is complete and ready for itinerary search. Say \"change <slot> to ...\" if anything needs adjusting.",
				ExpectedSlot:     state.ExpectedSlot,
				State:            state,
			}, false
		}
	}

	target := model.SlotName(slotName)
	if slotName == "" {
		target = slotForExpected(state.ExpectedSlot)
	}
	if !validSlot(target) {
		return rejectValidation(state, fmt.Sprintf("Unknown slot %q — expected one of destination, origin, dates, travelers, budget.", slotName)), false
	}

	if locked, current := e.slotLocked(state, target); locked {
		return rejectLock(state, target, current), false
	}

	return e.handleSlot(state, target, raw)
}

// handleChange services an explicit "change X to ..." request: unlock
// the targeted slot and reprocess the new value through its analyzer.
func (e *Engine) handleChange(state *model.TripState, target model.SlotName, raw string) (*TurnResult, bool) {
	if !validSlot(target) {
		return rejectValidation(state, fmt.Sprintf("Unknown slot %q — expected one of destination, origin, dates, travelers, budget.", target)), false
	}

	switch target {
	case model.SlotDestination:
		state.Destination.Clear()
		state.MultiCityPlan = nil
	case model.SlotOrigin:
		state.Origin.Clear()
	case model.SlotDates:
		state.Dates.Clear()
	case model.SlotTravelers:
		state.Travelers.Clear()
	case model.SlotBudget:
		state.Budget.Clear()
	}

	result, _ := e.handleSlot(state, target, raw)
	if result.Rejected {
		// The cleared slot stays cleared only in memory; rejected turns
		// are never saved, so the stored state is untouched.
		return result, false
	}
	return result, true
}

func (e *Engine) handleSlot(state *model.TripState, target model.SlotName, raw string) (*TurnResult, bool) {
	switch target {
	case model.SlotDestination:
		return e.handleDestination(state, raw)
	case model.SlotOrigin:
		return e.handleOrigin(state, raw)
	case model.SlotDates:
		return e.handleDates(state, raw)
	case model.SlotTravelers:
		return e.handleTravelers(state, raw)
	case model.SlotBudget:
		return e.handleBudget(state, raw)
	}
	return rejectValidation(state, "Nothing left to fill — the trip specification is complete."), false
}

// nextExpected walks the fixed topological slot order and returns the
// first stage still outstanding. Essential slots come before route
// confirmation on multi-city and comprehensive paths, so the user never
// confirms a route without knowing its cost and timing context.
func (e *Engine) nextExpected(state *model.TripState) model.ExpectedSlot {
	switch {
	case !state.Destination.Filled:
		return model.ExpectDestination
	case !state.Origin.Locked:
		return model.ExpectOrigin
	case !state.Dates.Filled:
		return model.ExpectDates
	case !state.Dates.Locked:
		return model.ExpectDatesConfirm
	case !state.Travelers.Locked:
		return model.ExpectTravelers
	case !state.Budget.Locked:
		return model.ExpectBudget
	case state.MultiCityPlan != nil && !state.MultiCityPlan.Confirmed:
		return model.ExpectRouteConfirmation
	case state.ExpectedSlot == model.ExpectComplete:
		return model.ExpectComplete
	default:
		return model.ExpectPreferences
	}
}

func slotForExpected(expected model.ExpectedSlot) model.SlotName {
	switch expected {
	case model.ExpectDestination:
		return model.SlotDestination
	case model.ExpectOrigin:
		return model.SlotOrigin
	case model.ExpectDates:
		return model.SlotDates
	case model.ExpectTravelers:
		return model.SlotTravelers
	case model.ExpectBudget:
		return model.SlotBudget
	}
	return ""
}

func validSlot(name model.SlotName) bool {
	for _, s := range model.ValidSlotNames {
		if s == name {
			return true
		}
	}
	return false
}

// slotLocked reports whether the targeted slot is locked, along with a
// short description of its current value for the rejection message.
func (e *Engine) slotLocked(state *model.TripState, target model.SlotName) (bool, string) {
	switch target {
	case model.SlotDestination:
		return state.Destination.Locked, state.Destination.Normalized
	case model.SlotOrigin:
		return state.Origin.Locked, state.Origin.Normalized
	case model.SlotDates:
		return state.Dates.Locked, state.Dates.Value.Interpretation
	case model.SlotTravelers:
		return state.Travelers.Locked, state.Travelers.Normalized
	case model.SlotBudget:
		return state.Budget.Locked, state.Budget.Normalized
	}
	return false, ""
}

// promptFor renders the question for the current expected slot.
func (e *Engine) promptFor(state *model.TripState) string {
	switch state.ExpectedSlot {
	case model.ExpectDestination:
		return "Where would you like to go?"
	case model.ExpectOrigin:
		return "Where will you be traveling from?"
	case model.ExpectDates:
		return "When would you like to travel?"
	case model.ExpectDatesConfirm:
		return fmt.Sprintf("I understood %s — is that right?", state.Dates.Value.Interpretation)
	case model.ExpectTravelers:
		return "How many people are traveling?"
	case model.ExpectBudget:
		return "What's your total budget for the trip?"
	case model.ExpectRouteConfirmation:
		if state.MultiCityPlan != nil {
			return fmt.Sprintf("Here's the proposed route: %s. Shall we lock it in, or would you rather focus on a single city?", tour.Describe(state.MultiCityPlan))
		}
		return "Shall we lock in the route?"
	case model.ExpectPreferences:
		return "Any preferences — pace, food, museums, nightlife? Or say \"create\" and I'll build the itinerary."
	case model.ExpectComplete:
		return "Your trip specification is complete and ready for itinerary search."
	}
	return ""
}

func (e *Engine) recordTurn(slotLabel string, result *TurnResult) {
	switch {
	case result.Rejected && result.RejectKind == RejectLock:
		metrics.RecordTurn(slotLabel, "rejected_lock")
	case result.Rejected:
		metrics.RecordTurn(slotLabel, "rejected_validation")
	case result.NeedsClarification:
		metrics.RecordTurn(slotLabel, "clarification")
		metrics.RecordClarification(slotLabel)
	default:
		metrics.RecordTurn(slotLabel, "resolved")
	}
}

func (e *Engine) publish(ctx context.Context, slotLabel string, result *TurnResult, mutated bool) {
	eventType := model.EventTypeTurn
	switch {
	case result.State.ExpectedSlot == model.ExpectComplete && mutated:
		eventType = model.EventTypeSlotsComplete
		metrics.TripsCompletedTotal.Inc()
	case result.NeedsClarification:
		eventType = model.EventTypeClarification
	case result.Locked && mutated:
		eventType = model.EventTypeSlotLocked
	}
	if result.Locked && mutated {
		metrics.RecordSlotLocked(slotLabel)
	}

	event := &model.TurnEvent{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: result.State.ConversationID,
		Type:           eventType,
		Slot:           slotLabel,
		ExpectedSlot:   result.State.ExpectedSlot,
		State:          result.State,
		CreatedAt:      e.now(),
	}
	if err := e.events.Publish(ctx, event); err != nil {
		// Event delivery is best effort; the turn has already been
		// persisted.
		e.logger.Warn("failed to publish turn event",
			zap.String("conversation_id", result.State.ConversationID),
			zap.Error(err),
		)
	}
}
