package model

// Slot is one captured piece of trip information. The Filled and Locked
// discriminators make a missing or provisional value a type-level fact:
// Normalized is only meaningful once Filled is true, and a slot is only
// authoritative trip input once Locked is true.
type Slot[T any] struct {
	Value      T      `json:"value"`
	Normalized string `json:"normalized,omitempty"`
	Filled     bool   `json:"filled"`
	Locked     bool   `json:"locked"`
}

// Fill captures a resolved value without confirming it.
func (s *Slot[T]) Fill(value T, normalized string) {
	s.Value = value
	s.Normalized = normalized
	s.Filled = true
}

// Lock marks the slot as confirmed, protecting it from casual re-asking.
func (s *Slot[T]) Lock() {
	s.Locked = true
}

// Clear resets the slot to its empty state.
func (s *Slot[T]) Clear() {
	var zero T
	s.Value = zero
	s.Normalized = ""
	s.Filled = false
	s.Locked = false
}

// DestinationType classifies the structural shape of a destination.
type DestinationType string

const (
	DestinationCity          DestinationType = "city"
	DestinationCountry       DestinationType = "country"
	DestinationRegion        DestinationType = "region"
	DestinationMultiCity     DestinationType = "multi-city"
	DestinationComprehensive DestinationType = "comprehensive-tour"
	DestinationUnknown       DestinationType = "unknown"
)

// TripScopeKind is the detected scope of a destination request.
type TripScopeKind string

const (
	ScopeSingle        TripScopeKind = "single"
	ScopeMulti         TripScopeKind = "multi"
	ScopeRegional      TripScopeKind = "regional"
	ScopeComprehensive TripScopeKind = "comprehensive"
)

// RouteType describes how a multi-stop trip is shaped.
type RouteType string

const (
	RouteHubAndSpoke RouteType = "hub-and-spoke"
	RouteLinear      RouteType = "linear"
	RouteCircular    RouteType = "circular"
)

// DurationRange is an estimated trip length in days.
type DurationRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TripScope records what the destination analyzer detected about the
// shape of the request.
type TripScope struct {
	Scope             TripScopeKind `json:"scope"`
	DetectedCities    []string      `json:"detected_cities,omitempty"`
	EstimatedDuration DurationRange `json:"estimated_duration,omitempty"`
	RouteType         RouteType     `json:"route_type,omitempty"`
}

// DestinationValue is the typed payload of the destination slot.
type DestinationValue struct {
	Raw       string          `json:"raw"`
	Type      DestinationType `json:"type"`
	Country   string          `json:"country,omitempty"`
	TripScope *TripScope      `json:"trip_scope,omitempty"`
}

// BookingCategory classifies how soon travel begins.
type BookingCategory string

const (
	BookingLastMinute  BookingCategory = "last-minute"
	BookingShortNotice BookingCategory = "short-notice"
	BookingAdvance     BookingCategory = "advance"
	BookingFarAdvance  BookingCategory = "far-advance"
)

// BookingTimeline is computed once, at the moment dates are confirmed
// and locked, and never re-derived.
type BookingTimeline struct {
	DaysUntilTravel int             `json:"days_until_travel"`
	Category        BookingCategory `json:"category"`
	Strategy        string          `json:"strategy"`
	UrgencyNote     string          `json:"urgency_note,omitempty"`
}

// DateRange is the typed payload of the dates slot. Times of day are
// not modeled.
type DateRange struct {
	Start           Date             `json:"start"`
	End             Date             `json:"end"`
	Interpretation  string           `json:"interpretation,omitempty"`
	BookingTimeline *BookingTimeline `json:"booking_timeline,omitempty"`
}

// Nights returns the number of nights between start and end.
func (r DateRange) Nights() int {
	return r.End.DaysSince(r.Start)
}

// Days returns the inclusive day span of the range.
func (r DateRange) Days() int {
	return r.Nights() + 1
}

// Money is the typed payload of the budget slot.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
