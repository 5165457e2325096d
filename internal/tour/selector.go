// Package tour builds and sizes multi-city routes: the fixed
// comprehensive-tour tiers and the per-city night allocation for
// multi-city destinations.
package tour

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/lexicon"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// Tier is one of the three fixed comprehensive-tour sizes.
type Tier struct {
	Key       string
	Label     string
	MinDays   int
	MaxDays   int
	TotalDays int
	// MaxCities caps the route; 0 means every detected city.
	MaxCities int
	RouteType model.RouteType
}

var tiers = []Tier{
	{Key: "classic", Label: "Classic", MinDays: 10, MaxDays: 14, TotalDays: 12, MaxCities: 4, RouteType: model.RouteCircular},
	{Key: "grand", Label: "Grand", MinDays: 15, MaxDays: 21, TotalDays: 18, MaxCities: 0, RouteType: model.RouteCircular},
	{Key: "express", Label: "Express", MinDays: 7, MaxDays: 10, TotalDays: 8, MaxCities: 3, RouteType: model.RouteLinear},
}

// Tiers returns the three tour sizes in presentation order.
func Tiers() []Tier {
	return tiers
}

// Selector builds route plans against the lexicon.
type Selector struct {
	lookup lexicon.Lookup
}

// NewSelector creates a route/tour selector.
func NewSelector(lookup lexicon.Lookup) *Selector {
	return &Selector{lookup: lookup}
}

var numberPattern = regexp.MustCompile(`\b(\d{1,2})\b`)

// SelectTier matches a user reply against the tier keywords. Tier names
// win over numbers; a number selects the tier whose day window contains
// it. An unrecognized reply returns false so the caller re-prompts with
// the same options rather than guessing.
func (s *Selector) SelectTier(reply string) (Tier, bool) {
	lower := strings.ToLower(reply)
	for _, t := range tiers {
		if strings.Contains(lower, t.Key) {
			return t, true
		}
	}
	if m := numberPattern.FindStringSubmatch(lower); m != nil {
		days, _ := strconv.Atoi(m[1])
		for _, t := range tiers {
			if days >= t.MinDays && days <= t.MaxDays {
				return t, true
			}
		}
	}
	switch {
	case strings.Contains(lower, "everything") || strings.Contains(lower, "all of"):
		return tiers[1], true
	case strings.Contains(lower, "quick") || strings.Contains(lower, "short"):
		return tiers[2], true
	}
	return Tier{}, false
}

// OptionsPrompt re-states the three tiers for an unrecognized reply.
func OptionsPrompt() string {
	lines := lo.Map(tiers, func(t Tier, i int) string {
		return fmt.Sprintf("%d. %s (%d–%d days)", i+1, t.Label, t.MinDays, t.MaxDays)
	})
	return "I didn't catch that — pick one of:\n" + strings.Join(lines, "\n")
}

// BuildTourPlan allocates cities and nights for a comprehensive tour of
// a country at the chosen tier. Classic gives the primary city three
// nights and the rest two to three; Grand gives the first two cities
// three nights and every other city two; Express runs a linear route of
// two to three nights per city.
func (s *Selector) BuildTourPlan(country lexicon.Country, tier Tier) *model.MultiCityPlan {
	cities := country.SuggestedCities
	if tier.MaxCities > 0 && len(cities) > tier.MaxCities {
		cities = cities[:tier.MaxCities]
	}

	stops := make([]model.CityStop, len(cities))
	for i, name := range cities {
		nights := 2
		switch tier.Key {
		case "classic":
			if i == 0 {
				nights = 3
			} else if i < len(cities)-1 {
				nights = 3
			}
		case "grand":
			if i < 2 {
				nights = 3
			}
		case "express":
			if i == 0 {
				nights = 3
			}
		}
		stops[i] = model.CityStop{
			Name:     name,
			Country:  country.Name,
			Nights:   nights,
			Priority: i + 1,
			Position: i + 1,
		}
	}

	return &model.MultiCityPlan{
		Cities: stops,
		Route: model.Route{
			Sequence:  cities,
			TotalDays: tier.TotalDays,
			RouteType: tier.RouteType,
		},
		Transport: s.transportLegs(stops),
		TourTier:  tier.Key,
	}
}

// BuildMultiCityPlan proposes a linear route over an explicit city
// list, three nights in the first city and two in each of the rest.
func (s *Selector) BuildMultiCityPlan(cities []string) *model.MultiCityPlan {
	stops := make([]model.CityStop, len(cities))
	for i, name := range cities {
		nights := 2
		if i == 0 {
			nights = 3
		}
		country := ""
		if known, ok := s.lookup.City(name); ok {
			country = known.Country
		}
		stops[i] = model.CityStop{
			Name:     name,
			Country:  country,
			Nights:   nights,
			Priority: i + 1,
			Position: i + 1,
		}
	}

	plan := &model.MultiCityPlan{
		Cities: stops,
		Route: model.Route{
			Sequence:  cities,
			RouteType: model.RouteLinear,
		},
		Transport: s.transportLegs(stops),
	}
	plan.Route.TotalDays = plan.TotalNights() + 1
	return plan
}

// transportLegs suggests a connection mode per consecutive pair: rail
// inside one country, flight across borders or for unknown cities.
func (s *Selector) transportLegs(stops []model.CityStop) []model.TransportLeg {
	if len(stops) < 2 {
		return nil
	}
	legs := make([]model.TransportLeg, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		mode := "flight"
		if stops[i-1].Country != "" && stops[i-1].Country == stops[i].Country {
			mode = "rail"
		}
		legs = append(legs, model.TransportLeg{
			From: stops[i-1].Name,
			To:   stops[i].Name,
			Mode: mode,
		})
	}
	return legs
}

// Describe renders a plan summary for route confirmation.
func Describe(plan *model.MultiCityPlan) string {
	parts := lo.Map(plan.Cities, func(c model.CityStop, _ int) string {
		return fmt.Sprintf("%s (%d nights)", c.Name, c.Nights)
	})
	return fmt.Sprintf("%s — about %d days total", strings.Join(parts, " → "), plan.Route.TotalDays)
}
