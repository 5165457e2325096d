// Package lexicon provides the static destination knowledge the
// analyzers consult: known cities and the countries that need city
// disambiguation. It sits behind a read-only Lookup interface so a real
// geocoding backend can replace it without touching the state machine.
package lexicon

import (
	"strings"
)

// City is one known destination city.
type City struct {
	Name    string
	Country string
	Region  string
	// Hub marks cities commonly used as a base for day trips.
	Hub bool
}

// Country is a destination that needs city-level disambiguation before
// it can drive search. SuggestedCities are ordered by priority; the
// first entry is the primary city for tour building.
type Country struct {
	Name            string
	SuggestedCities []string
	Regions         []string
}

// Lookup is the read-only view the analyzers depend on.
type Lookup interface {
	// City resolves a city name case-insensitively to its canonical
	// record.
	City(name string) (City, bool)
	// Country resolves a country name case-insensitively to its
	// disambiguation record.
	Country(name string) (Country, bool)
}

// Static is the built-in table-backed Lookup.
type Static struct {
	cities    map[string]City
	countries map[string]Country
}

// NewStatic builds the default lexicon from the built-in tables.
func NewStatic() *Static {
	s := &Static{
		cities:    make(map[string]City, len(knownCities)),
		countries: make(map[string]Country, len(knownCountries)),
	}
	for _, c := range knownCities {
		s.cities[strings.ToLower(c.Name)] = c
	}
	for _, c := range knownCountries {
		s.countries[strings.ToLower(c.Name)] = c
	}
	return s
}

// City implements Lookup.
func (s *Static) City(name string) (City, bool) {
	c, ok := s.cities[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Country implements Lookup.
func (s *Static) Country(name string) (Country, bool) {
	c, ok := s.countries[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
