package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/engine"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/lexicon"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/store"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/logger"
)

// frozenNow keeps urgency classification and year-roll behavior
// deterministic across the whole suite.
func frozenNow() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) (*engine.Engine, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return engine.NewAt(st, lexicon.NewStatic(), nil, logger.NewNop(), frozenNow), st
}

func turn(t *testing.T, e *engine.Engine, id, value string) *engine.TurnResult {
	t.Helper()
	result, err := e.ProcessTurn(context.Background(), id, "", value, false)
	require.NoError(t, err)
	return result
}

func slotTurn(t *testing.T, e *engine.Engine, id, slot, value string, change bool) *engine.TurnResult {
	t.Helper()
	result, err := e.ProcessTurn(context.Background(), id, slot, value, change)
	require.NoError(t, err)
	return result
}

func TestStartConversation(t *testing.T) {
	e, st := newTestEngine(t)

	state, err := e.StartConversation(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, model.ExpectDestination, state.ExpectedSlot)

	stored, err := st.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", stored.ConversationID)
}

func TestProcessTurn_MissingConversationID(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.ProcessTurn(context.Background(), "  ", "", "Paris", false)
	assert.ErrorIs(t, err, engine.ErrMissingConversationID)

	_, err = e.StartConversation(context.Background(), "")
	assert.ErrorIs(t, err, engine.ErrMissingConversationID)
}

func TestSingleCityHappyPath(t *testing.T) {
	e, st := newTestEngine(t)
	id := "happy-path"

	// First turn on an unknown conversation creates it implicitly.
	r := turn(t, e, id, "I want to visit Paris")
	assert.True(t, r.Locked)
	assert.Equal(t, model.ExpectOrigin, r.ExpectedSlot)
	assert.Equal(t, "Paris", r.State.Destination.Normalized)

	r = turn(t, e, id, "London")
	assert.True(t, r.Locked)
	assert.Equal(t, model.ExpectDates, r.ExpectedSlot)

	r = turn(t, e, id, "March 15-22")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDatesConfirm, r.ExpectedSlot)
	assert.True(t, r.State.Dates.Filled)
	assert.False(t, r.State.Dates.Locked)

	r = turn(t, e, id, "yes")
	assert.True(t, r.Locked)
	assert.Equal(t, model.ExpectTravelers, r.ExpectedSlot)
	require.NotNil(t, r.State.Dates.Value.BookingTimeline)
	assert.Equal(t, model.BookingLastMinute, r.State.Dates.Value.BookingTimeline.Category)
	assert.Equal(t, 14, r.State.Dates.Value.BookingTimeline.DaysUntilTravel)

	r = turn(t, e, id, "2")
	assert.True(t, r.Locked)
	assert.Equal(t, model.ExpectBudget, r.ExpectedSlot)

	r = turn(t, e, id, "$3,000")
	assert.True(t, r.Locked)
	assert.Equal(t, model.ExpectPreferences, r.ExpectedSlot)
	assert.Equal(t, model.Money{Amount: 3000, Currency: "USD"}, r.State.Budget.Value)

	r = turn(t, e, id, "create")
	assert.Equal(t, model.ExpectComplete, r.ExpectedSlot)
	assert.Contains(t, r.ConfirmationText, "All set")
	assert.True(t, r.State.Complete())

	stored, err := st.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.ExpectComplete, stored.ExpectedSlot)
	assert.True(t, stored.Destination.Locked)
	assert.True(t, stored.Budget.Locked)
}

func TestLockedSlotRejectsCasualOverwrite(t *testing.T) {
	e, st := newTestEngine(t)
	id := "lock-check"

	turn(t, e, id, "Paris")
	before, err := st.Load(context.Background(), id)
	require.NoError(t, err)

	r := slotTurn(t, e, id, "destination", "Rome", false)
	assert.True(t, r.Rejected)
	assert.Equal(t, engine.RejectLock, r.RejectKind)
	assert.Contains(t, r.ConfirmationText, "change destination")

	// Rejected turns never persist.
	after, err := st.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, before.Destination.Normalized, after.Destination.Normalized)
	assert.Equal(t, before.LastUpdated, after.LastUpdated)
}

func TestExplicitChangeUnlocksSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "explicit-change"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")

	r := slotTurn(t, e, id, "destination", "Rome", true)
	assert.True(t, r.Locked)
	assert.Equal(t, "Rome", r.State.Destination.Normalized)
	// Origin survives the destination change; the flow resumes at the
	// first outstanding stage.
	assert.True(t, r.State.Origin.Locked)
	assert.Equal(t, model.ExpectDates, r.ExpectedSlot)
}

func TestExplicitChangeWithBadValueLeavesStateAlone(t *testing.T) {
	e, st := newTestEngine(t)
	id := "change-bad-value"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")
	turn(t, e, id, "yes")

	r := slotTurn(t, e, id, "travelers", "50", true)
	assert.True(t, r.Rejected)
	assert.Equal(t, engine.RejectValidation, r.RejectKind)

	stored, err := st.Load(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Travelers.Filled)
}

func TestBudgetValidationRejection(t *testing.T) {
	e, st := newTestEngine(t)
	id := "budget-reject"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")
	turn(t, e, id, "yes")
	turn(t, e, id, "2")

	r := turn(t, e, id, "-50")
	assert.True(t, r.Rejected)
	assert.Equal(t, engine.RejectValidation, r.RejectKind)
	assert.Equal(t, model.ExpectBudget, r.ExpectedSlot)

	stored, err := st.Load(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Budget.Filled)

	// A corrected value goes through on the next turn.
	r = turn(t, e, id, "$2000")
	assert.True(t, r.Locked)
}

func TestTravelersOutOfRange(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "travelers-range"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")
	turn(t, e, id, "yes")

	r := turn(t, e, id, "we are 25")
	assert.True(t, r.Rejected)
	assert.Equal(t, engine.RejectValidation, r.RejectKind)

	r = turn(t, e, id, "solo")
	assert.True(t, r.Locked)
	assert.Equal(t, "1 traveler", r.State.Travelers.Normalized)
}

func TestCountryAsksForCity(t *testing.T) {
	e, st := newTestEngine(t)
	id := "country-disambiguation"

	r := turn(t, e, id, "Italy")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDestination, r.ExpectedSlot)
	assert.Contains(t, r.ConfirmationText, "Rome")

	// Clarification turns leave no partial destination behind.
	stored, err := st.Load(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Destination.Filled)

	r = turn(t, e, id, "Rome")
	assert.True(t, r.Locked)
	assert.Equal(t, "Rome", r.State.Destination.Normalized)
}

func TestUnparseableDatesAskAgain(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "fuzzy-dates"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")

	r := turn(t, e, id, "whenever works")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDates, r.ExpectedSlot)
	assert.False(t, r.State.Dates.Filled)
}

func TestDatesConfirmRejectionClearsSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "dates-reconfirm"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")

	r := turn(t, e, id, "no, that's wrong")
	assert.Equal(t, model.ExpectDates, r.ExpectedSlot)
	assert.False(t, r.State.Dates.Filled)

	r = turn(t, e, id, "April 10-20")
	assert.Equal(t, model.ExpectDatesConfirm, r.ExpectedSlot)
	r = turn(t, e, id, "yes")
	assert.True(t, r.State.Dates.Locked)
	assert.Equal(t, model.BookingShortNotice, r.State.Dates.Value.BookingTimeline.Category)
}

func TestDatesConfirmAmbiguousReplyReasks(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "dates-ambiguous"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")

	r := turn(t, e, id, "hmm")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDatesConfirm, r.ExpectedSlot)
	assert.True(t, r.State.Dates.Filled)
	assert.False(t, r.State.Dates.Locked)
}

func TestMultiCityTourFlow(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "multi-city"

	r := turn(t, e, id, "London, Paris and Rome")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDestinationScope, r.ExpectedSlot)

	r = turn(t, e, id, "multi-city tour")
	assert.Equal(t, model.ExpectOrigin, r.ExpectedSlot)
	require.NotNil(t, r.State.MultiCityPlan)
	assert.Len(t, r.State.MultiCityPlan.Cities, 3)
	assert.False(t, r.State.MultiCityPlan.Confirmed)
	// Filled but not locked until the route is confirmed.
	assert.True(t, r.State.Destination.Filled)
	assert.False(t, r.State.Destination.Locked)

	turn(t, e, id, "Berlin")
	turn(t, e, id, "April 10-20")
	turn(t, e, id, "yes")
	turn(t, e, id, "3")

	// Route confirmation waits until dates and budget are in.
	r = turn(t, e, id, "5000 euros")
	assert.Equal(t, model.ExpectRouteConfirmation, r.ExpectedSlot)

	r = turn(t, e, id, "yes, lock it in")
	assert.True(t, r.Locked)
	assert.Equal(t, model.ExpectPreferences, r.ExpectedSlot)
	assert.True(t, r.State.MultiCityPlan.Confirmed)
	assert.True(t, r.State.Destination.Locked)

	r = turn(t, e, id, "create")
	assert.Equal(t, model.ExpectComplete, r.ExpectedSlot)
	assert.Contains(t, r.ConfirmationText, "London → Paris → Rome")
}

func TestMultiCityCollapsesToSingleBase(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "collapse-base"

	turn(t, e, id, "London, Paris and Rome")

	r := turn(t, e, id, "base in Paris")
	assert.True(t, r.Locked)
	assert.Equal(t, "Paris", r.State.Destination.Normalized)
	assert.Nil(t, r.State.MultiCityPlan)
	assert.Equal(t, model.ExpectOrigin, r.ExpectedSlot)
}

func TestRouteConfirmationPivotsToOneCity(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "route-pivot"

	turn(t, e, id, "London, Paris and Rome")
	turn(t, e, id, "multi-city tour")
	turn(t, e, id, "Berlin")
	turn(t, e, id, "April 10-20")
	turn(t, e, id, "yes")
	turn(t, e, id, "2")
	r := turn(t, e, id, "$4000")
	require.Equal(t, model.ExpectRouteConfirmation, r.ExpectedSlot)

	r = turn(t, e, id, "actually just Rome")
	assert.True(t, r.Locked)
	assert.Equal(t, "Rome", r.State.Destination.Normalized)
	assert.Nil(t, r.State.MultiCityPlan)
	assert.Equal(t, model.ExpectPreferences, r.ExpectedSlot)
}

func TestComprehensiveTourTierSelection(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "grand-tour"

	r := turn(t, e, id, "the whole of Italy")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDestinationScope, r.ExpectedSlot)
	assert.Contains(t, r.ConfirmationText, "Classic")

	r = turn(t, e, id, "classic sounds right")
	assert.Equal(t, model.ExpectOrigin, r.ExpectedSlot)
	require.NotNil(t, r.State.MultiCityPlan)
	assert.Equal(t, "classic", r.State.MultiCityPlan.TourTier)
	assert.Len(t, r.State.MultiCityPlan.Cities, 4)
}

func TestComprehensiveTourUnrecognizedTierReasks(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "tier-reprompt"

	turn(t, e, id, "the whole of Italy")

	r := turn(t, e, id, "surprise me")
	assert.True(t, r.NeedsClarification)
	assert.Equal(t, model.ExpectDestinationScope, r.ExpectedSlot)
	assert.Contains(t, r.ConfirmationText, "Classic")
	assert.Nil(t, r.State.MultiCityPlan)
}

func TestPreferencesRecordedBeforeCreate(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "preferences"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")
	turn(t, e, id, "yes")
	turn(t, e, id, "2")
	turn(t, e, id, "$3000")

	r := turn(t, e, id, "slow pace and lots of food")
	assert.Equal(t, model.ExpectPreferences, r.ExpectedSlot)
	assert.Equal(t, "slow pace and lots of food", r.State.Preferences)

	r = turn(t, e, id, "build it")
	assert.Equal(t, model.ExpectComplete, r.ExpectedSlot)
}

func TestCompletedConversationStaysComplete(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "terminal"

	turn(t, e, id, "Paris")
	turn(t, e, id, "London")
	turn(t, e, id, "March 15-22")
	turn(t, e, id, "yes")
	turn(t, e, id, "2")
	turn(t, e, id, "$3000")
	turn(t, e, id, "create")

	r := turn(t, e, id, "thanks!")
	assert.Equal(t, model.ExpectComplete, r.ExpectedSlot)
	assert.Contains(t, r.ConfirmationText, "complete")

	// Slots remain locked behind the change protocol.
	r = slotTurn(t, e, id, "budget", "$9000", false)
	assert.True(t, r.Rejected)
	assert.Equal(t, engine.RejectLock, r.RejectKind)

	r = slotTurn(t, e, id, "budget", "$9000", true)
	assert.False(t, r.Rejected)
	assert.Equal(t, model.Money{Amount: 9000, Currency: "USD"}, r.State.Budget.Value)
}

func TestUnknownSlotNameRejected(t *testing.T) {
	e, _ := newTestEngine(t)
	id := "unknown-slot"

	r := slotTurn(t, e, id, "hotel", "five stars", false)
	assert.True(t, r.Rejected)
	assert.Equal(t, engine.RejectValidation, r.RejectKind)
}
