package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/analyzer"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/tour"
)

func (e *Engine) handleDestination(state *model.TripState, raw string) (*TurnResult, bool) {
	analysis := e.destinations.Analyze(raw)

	switch analysis.Type {
	case model.DestinationMultiCity, model.DestinationComprehensive:
		// The single-base-vs-tour (or tour size) decision reshapes the
		// rest of the flow, so it is made before anything locks.
		state.Destination.Fill(model.DestinationValue{
			Raw:       raw,
			Type:      analysis.Type,
			Country:   analysis.Country,
			TripScope: analysis.TripScope,
		}, analysis.Normalized)
		state.MultiCityPlan = nil
		state.ExpectedSlot = model.ExpectDestinationScope
		return clarify(state, analysis.Clarification), true

	case model.DestinationCountry:
		// Disambiguation beats silent guessing: nothing fills or locks
		// until the user picks a city or region.
		return clarify(state, analysis.Clarification), false
	}

	if analysis.NeedsClarification() {
		return clarify(state, analysis.Clarification), false
	}

	state.Destination.Fill(model.DestinationValue{
		Raw:       raw,
		Type:      analysis.Type,
		Country:   analysis.Country,
		TripScope: analysis.TripScope,
	}, analysis.Normalized)
	state.Destination.Lock()
	state.MultiCityPlan = nil
	state.ExpectedSlot = e.nextExpected(state)

	return &TurnResult{
		ConfirmationText: fmt.Sprintf("%s it is. %s", analysis.Normalized, e.promptFor(state)),
		Locked:           true,
		ExpectedSlot:     state.ExpectedSlot,
		State:            state,
	}, true
}

var multiTourPattern = regexp.MustCompile(`(?i)\b(multi|tour|all of them|both|everywhere|2|two)\b`)
var singleBasePattern = regexp.MustCompile(`(?i)\b(single|base|one city|1)\b`)

func (e *Engine) handleDestinationScope(state *model.TripState, raw string) (*TurnResult, bool) {
	dest := state.Destination.Value

	if dest.Type == model.DestinationComprehensive {
		return e.handleTourSize(state, raw)
	}

	var detected []string
	if dest.TripScope != nil {
		detected = dest.TripScope.DetectedCities
	}

	if city, ok := matchCity(raw, detected); ok {
		// The user picked one city from the list: collapse to a
		// single-city trip and discard the multi-city idea entirely.
		e.collapseToCity(state, city)
		return &TurnResult{
			ConfirmationText: fmt.Sprintf("%s as your base — done. %s", state.Destination.Normalized, e.promptFor(state)),
			Locked:           true,
			ExpectedSlot:     state.ExpectedSlot,
			State:            state,
		}, true
	}

	if multiTourPattern.MatchString(raw) {
		state.MultiCityPlan = e.tours.BuildMultiCityPlan(detected)
		state.ExpectedSlot = e.nextExpected(state)
		return &TurnResult{
			ConfirmationText: fmt.Sprintf(
				"Multi-city tour it is: %s. We'll confirm the route once dates and budget are in. %s",
				tour.Describe(state.MultiCityPlan), e.promptFor(state),
			),
			ExpectedSlot: state.ExpectedSlot,
			State:        state,
		}, true
	}

	if singleBasePattern.MatchString(raw) {
		return clarify(state, fmt.Sprintf(
			"Which city would you like as your base? You mentioned %s.",
			strings.Join(detected, ", "),
		)), false
	}

	return clarify(state, fmt.Sprintf(
		"Two ways to do this: a single-city base with day trips, or a multi-city tour. "+
			"Reply \"base in <city>\" or \"multi-city tour\". You mentioned %s.",
		strings.Join(detected, ", "),
	)), false
}

func (e *Engine) handleTourSize(state *model.TripState, raw string) (*TurnResult, bool) {
	tier, ok := e.tours.SelectTier(raw)
	if !ok {
		// Re-prompt with the same three options rather than guessing.
		return clarify(state, tour.OptionsPrompt()), false
	}

	dest := state.Destination.Value
	var plan *model.MultiCityPlan
	if country, found := e.lookup.Country(dest.Country); found {
		plan = e.tours.BuildTourPlan(country, tier)
	} else if dest.TripScope != nil {
		plan = e.tours.BuildMultiCityPlan(dest.TripScope.DetectedCities)
	}

	if dest.TripScope != nil {
		dest.TripScope.EstimatedDuration = model.DurationRange{Min: tier.MinDays, Max: tier.MaxDays}
		dest.TripScope.RouteType = tier.RouteType
		state.Destination.Value = dest
	}
	state.MultiCityPlan = plan
	state.ExpectedSlot = e.nextExpected(state)

	return &TurnResult{
		ConfirmationText: fmt.Sprintf(
			"%s tour planned: %s. We'll confirm the route once dates and budget are in. %s",
			tier.Label, tour.Describe(plan), e.promptFor(state),
		),
		ExpectedSlot: state.ExpectedSlot,
		State:        state,
	}, true
}

func (e *Engine) handleRouteConfirmation(state *model.TripState, raw string) (*TurnResult, bool) {
	plan := state.MultiCityPlan
	if plan == nil {
		// The plan was discarded earlier; nothing left to confirm.
		state.ExpectedSlot = e.nextExpected(state)
		return &TurnResult{
			ConfirmationText: e.promptFor(state),
			ExpectedSlot:     state.ExpectedSlot,
			State:            state,
		}, true
	}

	if isAffirmative(raw) {
		plan.Confirmed = true
		state.Destination.Lock()
		state.ExpectedSlot = e.nextExpected(state)
		return &TurnResult{
			ConfirmationText: fmt.Sprintf("Route confirmed: %s. %s", tour.Describe(plan), e.promptFor(state)),
			Locked:           true,
			ExpectedSlot:     state.ExpectedSlot,
			State:            state,
		}, true
	}

	names := make([]string, len(plan.Cities))
	for i, c := range plan.Cities {
		names[i] = c.Name
	}
	if city, ok := matchCity(raw, names); ok {
		e.collapseToCity(state, city)
		return &TurnResult{
			ConfirmationText: fmt.Sprintf("Focusing on %s — the multi-city route is dropped. %s", state.Destination.Normalized, e.promptFor(state)),
			Locked:           true,
			ExpectedSlot:     state.ExpectedSlot,
			State:            state,
		}, true
	}

	if isNegative(raw) {
		return clarify(state, fmt.Sprintf(
			"No problem — which city should the trip focus on instead? The route had %s.",
			strings.Join(names, ", "),
		)), false
	}

	return clarify(state, fmt.Sprintf(
		"Here's the route again: %s. Reply \"yes\" to confirm it, or name one city to focus the trip there.",
		tour.Describe(plan),
	)), false
}

// collapseToCity replaces a multi-city destination with a single city
// and discards the plan entirely, not merely hiding it.
func (e *Engine) collapseToCity(state *model.TripState, city string) {
	normalized := city
	country := ""
	routeType := model.RouteLinear
	if known, ok := e.lookup.City(city); ok {
		normalized = known.Name
		country = known.Country
		if known.Hub {
			routeType = model.RouteHubAndSpoke
		}
	}
	state.Destination.Fill(model.DestinationValue{
		Raw:     city,
		Type:    model.DestinationCity,
		Country: country,
		TripScope: &model.TripScope{
			Scope:     model.ScopeSingle,
			RouteType: routeType,
		},
	}, normalized)
	state.Destination.Lock()
	state.MultiCityPlan = nil
	state.ExpectedSlot = e.nextExpected(state)
}

func matchCity(raw string, cities []string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, city := range cities {
		if strings.Contains(lower, strings.ToLower(city)) {
			return city, true
		}
	}
	return "", false
}

func (e *Engine) handleOrigin(state *model.TripState, raw string) (*TurnResult, bool) {
	phrase := strings.Trim(strings.TrimSpace(raw), ".!?")
	if phrase == "" {
		return clarify(state, "Where will you be traveling from?"), false
	}

	normalized := phrase
	if known, ok := e.lookup.City(phrase); ok {
		normalized = known.Name
	}

	state.Origin.Fill(normalized, normalized)
	state.Origin.Lock()
	state.ExpectedSlot = e.nextExpected(state)

	return &TurnResult{
		ConfirmationText: fmt.Sprintf("Flying from %s. %s", normalized, e.promptFor(state)),
		Locked:           true,
		ExpectedSlot:     state.ExpectedSlot,
		State:            state,
	}, true
}

func (e *Engine) handleDates(state *model.TripState, raw string) (*TurnResult, bool) {
	result := e.dates.Parse(raw)
	if result.NeedsClarification {
		return clarify(state, result.Clarification), false
	}

	// Dates fill here but lock only after the user affirms the
	// interpretation.
	state.Dates.Fill(model.DateRange{
		Start:          result.Start,
		End:            result.End,
		Interpretation: result.Interpretation,
	}, result.Interpretation)
	state.ExpectedSlot = model.ExpectDatesConfirm

	return &TurnResult{
		ConfirmationText:   fmt.Sprintf("I understood %s — is that right?", result.Interpretation),
		NeedsClarification: true,
		ExpectedSlot:       state.ExpectedSlot,
		State:              state,
	}, true
}

func (e *Engine) handleDatesConfirm(state *model.TripState, raw string) (*TurnResult, bool) {
	if isAffirmative(raw) {
		value := state.Dates.Value
		timeline := analyzer.ClassifyUrgency(value.Start, value.End, model.DateOf(e.now()))
		value.BookingTimeline = &timeline
		state.Dates.Value = value
		state.Dates.Lock()
		state.ExpectedSlot = e.nextExpected(state)

		return &TurnResult{
			ConfirmationText: fmt.Sprintf("Locked in: %s. %s %s", value.Interpretation, timeline.Strategy, e.promptFor(state)),
			Locked:           true,
			ExpectedSlot:     state.ExpectedSlot,
			State:            state,
		}, true
	}

	if isNegative(raw) {
		state.Dates.Clear()
		state.ExpectedSlot = model.ExpectDates
		return &TurnResult{
			ConfirmationText:   "No problem — when would you like to travel?",
			NeedsClarification: true,
			ExpectedSlot:       state.ExpectedSlot,
			State:              state,
		}, true
	}

	return clarify(state, fmt.Sprintf(
		"Just to confirm: %s — yes or no?", state.Dates.Value.Interpretation,
	)), false
}

func (e *Engine) handleTravelers(state *model.TripState, raw string) (*TurnResult, bool) {
	count, ok := parseTravelers(raw)
	if !ok {
		return clarify(state, "How many people are traveling? A number works best — \"2\", or \"solo\"."), false
	}
	if count <= 0 || count > 20 {
		return rejectValidation(state, "Traveler count must be between 1 and 20 — how many people are going?"), false
	}

	noun := "travelers"
	if count == 1 {
		noun = "traveler"
	}
	state.Travelers.Fill(count, fmt.Sprintf("%d %s", count, noun))
	state.Travelers.Lock()
	state.ExpectedSlot = e.nextExpected(state)

	return &TurnResult{
		ConfirmationText: fmt.Sprintf("%s. %s", state.Travelers.Normalized, e.promptFor(state)),
		Locked:           true,
		ExpectedSlot:     state.ExpectedSlot,
		State:            state,
	}, true
}

func (e *Engine) handleBudget(state *model.TripState, raw string) (*TurnResult, bool) {
	amount, currency, ok := parseBudget(raw)
	if !ok {
		return clarify(state, "What's your total budget? Something like \"$3000\" or \"2500 euros\"."), false
	}
	if amount <= 0 {
		return rejectValidation(state, "The budget needs to be a positive amount — what are you planning to spend?"), false
	}

	state.Budget.Fill(model.Money{Amount: amount, Currency: currency}, fmt.Sprintf("%.0f %s", amount, currency))
	state.Budget.Lock()
	state.ExpectedSlot = e.nextExpected(state)

	return &TurnResult{
		ConfirmationText: fmt.Sprintf("Budget set at %s. %s", state.Budget.Normalized, e.promptFor(state)),
		Locked:           true,
		ExpectedSlot:     state.ExpectedSlot,
		State:            state,
	}, true
}

func (e *Engine) handlePreferences(state *model.TripState, raw string) (*TurnResult, bool) {
	if wantsCreate(raw) {
		state.ExpectedSlot = model.ExpectComplete
		return &TurnResult{
			ConfirmationText: e.summarize(state),
			ExpectedSlot:     state.ExpectedSlot,
			State:            state,
		}, true
	}

	state.Preferences = strings.TrimSpace(raw)
	return &TurnResult{
		ConfirmationText: "Noted. Anything else, or say \"create\" and I'll build the itinerary.",
		ExpectedSlot:     state.ExpectedSlot,
		State:            state,
	}, true
}

func (e *Engine) summarize(state *model.TripState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "All set: %s from %s, %s, %s, budget %s.",
		state.Destination.Normalized,
		state.Origin.Normalized,
		state.Dates.Value.Interpretation,
		state.Travelers.Normalized,
		state.Budget.Normalized,
	)
	if state.MultiCityPlan != nil && state.MultiCityPlan.Confirmed {
		fmt.Fprintf(&b, " Route: %s.", strings.Join(state.MultiCityPlan.Route.Sequence, " → "))
	}
	b.WriteString(" Your trip specification is complete — itinerary search is next.")
	return b.String()
}
