package model

// CityStop is one city in a multi-city route, with its night allocation
// and visit order.
type CityStop struct {
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
	Nights   int    `json:"nights"`
	Priority int    `json:"priority"`
	Position int    `json:"position"`
}

// Route describes the ordered sequence of a multi-city trip.
type Route struct {
	Sequence  []string  `json:"sequence"`
	TotalDays int       `json:"total_days"`
	RouteType RouteType `json:"route_type"`
}

// TransportLeg is a suggested connection between consecutive stops.
type TransportLeg struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
}

// MultiCityPlan is the proposed route for a multi-city or
// comprehensive-tour destination. Confirmed stays false until the user
// explicitly accepts the route; before that the plan may be discarded
// in favor of a single-city destination.
type MultiCityPlan struct {
	Cities    []CityStop     `json:"cities"`
	Route     Route          `json:"route"`
	Transport []TransportLeg `json:"transport,omitempty"`
	TourTier  string         `json:"tour_tier,omitempty"`
	Confirmed bool           `json:"confirmed"`
}

// TotalNights sums the night allocation across all stops.
func (p *MultiCityPlan) TotalNights() int {
	total := 0
	for _, c := range p.Cities {
		total += c.Nights
	}
	return total
}
