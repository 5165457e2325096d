// Package analyzer provides the natural-language slot analyzers: the
// destination analyzer, the fuzzy date-phrase parser, and the
// booking-urgency classifier. All of them are best-effort heuristic
// extractors with an explicit clarification fallback, never a full NLU
// system.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/lexicon"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// DestinationAnalysis is the result of classifying one destination
// utterance. Exactly one of a resolved value or a clarification
// question is produced.
type DestinationAnalysis struct {
	Type               model.DestinationType
	Normalized         string
	Country            string
	TripScope          *model.TripScope
	NeedsSpecification bool
	Suggestions        []string
	SuggestedRegions   []string
	Clarification      string
}

// NeedsClarification reports whether the caller must ask before the
// destination can be used.
func (a DestinationAnalysis) NeedsClarification() bool {
	return a.Clarification != ""
}

// DestinationAnalyzer classifies raw destination utterances against the
// lexicon.
type DestinationAnalyzer struct {
	lookup lexicon.Lookup
	rules  []destinationRule
	titler cases.Caser
}

// destinationRule pairs a scope predicate with its handler. Rules are
// evaluated in order and the first matching rule wins; later rules
// never see input an earlier rule claimed.
type destinationRule struct {
	name  string
	match func(phrase string) bool
	apply func(phrase string) DestinationAnalysis
}

var fillerPattern = regexp.MustCompile(`(?i)^(?:i(?:'d| would)? (?:want|like|love) to (?:go to|visit|travel to|see)|we(?:'d| would)? (?:want|like|love) to (?:go to|visit|travel to|see)|i(?:'m| am) (?:going to|visiting|thinking (?:of|about))|let'?s go to|planning (?:a trip|to go) to|take me to|how about|going to|travel(?:ing)? to|trip to|visiting|visit|go to)\s+`)

var comprehensivePattern = regexp.MustCompile(`(?i)\b(?:whole of|all of|entire|grand tour of|comprehensive tour of|everything in)\b`)

var regionalKeywords = []string{"coast", "region", "highlands", "riviera", "islands", "countryside", "valley", "alps"}

// NewDestinationAnalyzer builds an analyzer over the given lexicon.
func NewDestinationAnalyzer(lookup lexicon.Lookup) *DestinationAnalyzer {
	a := &DestinationAnalyzer{
		lookup: lookup,
		titler: cases.Title(language.English),
	}
	a.rules = []destinationRule{
		{name: "comprehensive", match: a.isComprehensive, apply: a.applyComprehensive},
		{name: "multi-city", match: a.isMultiCity, apply: a.applyMultiCity},
		{name: "regional", match: isRegional, apply: a.applyRegional},
		{name: "single", match: func(string) bool { return true }, apply: a.applySingle},
	}
	return a
}

// Analyze classifies a raw destination utterance. Ambiguous input
// always prefers disambiguation over silent guessing.
func (a *DestinationAnalyzer) Analyze(raw string) DestinationAnalysis {
	phrase := stripFiller(raw)
	if phrase == "" {
		return DestinationAnalysis{
			Type:          model.DestinationUnknown,
			Clarification: "Where would you like to go? You can name a city (\"Paris\"), a country (\"Japan\"), or several cities (\"London, Paris, and Rome\").",
		}
	}
	for _, rule := range a.rules {
		if rule.match(phrase) {
			return rule.apply(phrase)
		}
	}
	// Unreachable: the single rule always matches.
	return DestinationAnalysis{Type: model.DestinationUnknown}
}

func stripFiller(raw string) string {
	phrase := strings.TrimSpace(raw)
	for {
		stripped := fillerPattern.ReplaceAllString(phrase, "")
		if stripped == phrase {
			break
		}
		phrase = stripped
	}
	return strings.Trim(strings.TrimSpace(phrase), ".!?")
}

func (a *DestinationAnalyzer) isComprehensive(phrase string) bool {
	if !comprehensivePattern.MatchString(phrase) {
		return false
	}
	// The tier question only works for countries we know cities for;
	// otherwise fall through to single-destination handling.
	_, ok := a.lookup.Country(extractCountryPhrase(phrase))
	return ok
}

func extractCountryPhrase(phrase string) string {
	remainder := comprehensivePattern.ReplaceAllString(phrase, "")
	remainder = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(remainder), "the "))
	return strings.Trim(remainder, ".!? ")
}

func (a *DestinationAnalyzer) applyComprehensive(phrase string) DestinationAnalysis {
	country, _ := a.lookup.Country(extractCountryPhrase(phrase))
	top := country.SuggestedCities
	if len(top) > 4 {
		top = top[:4]
	}
	question := fmt.Sprintf(
		"A full tour of %s — great choice. How much time do you have?\n"+
			"1. Classic (10–14 days): %s\n"+
			"2. Grand (15–21 days): %s\n"+
			"3. Express (7–10 days): %s",
		country.Name,
		strings.Join(top, ", "),
		strings.Join(country.SuggestedCities, ", "),
		strings.Join(country.SuggestedCities[:min(3, len(country.SuggestedCities))], ", "),
	)
	return DestinationAnalysis{
		Type:       model.DestinationComprehensive,
		Normalized: country.Name,
		Country:    country.Name,
		TripScope: &model.TripScope{
			Scope:          model.ScopeComprehensive,
			DetectedCities: country.SuggestedCities,
			RouteType:      model.RouteCircular,
		},
		Suggestions:   country.SuggestedCities,
		Clarification: question,
	}
}

func (a *DestinationAnalyzer) isMultiCity(phrase string) bool {
	return len(a.extractCities(phrase)) >= 2
}

// extractCities splits comma-plus-"and" lists and simple "X and Y"
// joins into de-duplicated, trimmed, title-cased city tokens. Only
// plausible city tokens survive: short alphabetic phrases, not
// durations or filler.
func (a *DestinationAnalyzer) extractCities(phrase string) []string {
	if !strings.Contains(phrase, ",") && !strings.Contains(strings.ToLower(phrase), " and ") {
		return nil
	}
	parts := regexp.MustCompile(`(?i)\s*(?:,|\band\b|&)\s*`).Split(phrase, -1)
	cities := lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		if p == "" || !plausibleCityToken(p) {
			return "", false
		}
		if known, ok := a.lookup.City(p); ok {
			return known.Name, true
		}
		return a.titler.String(strings.ToLower(p)), true
	})
	return lo.Uniq(cities)
}

var cityTokenPattern = regexp.MustCompile(`^[\p{L}][\p{L}'\- ]*$`)

func plausibleCityToken(token string) bool {
	if len(strings.Fields(token)) > 3 {
		return false
	}
	return cityTokenPattern.MatchString(token)
}

func (a *DestinationAnalyzer) applyMultiCity(phrase string) DestinationAnalysis {
	cities := a.extractCities(phrase)
	n := len(cities)
	question := fmt.Sprintf(
		"You named %d places: %s. There are two ways to plan this:\n"+
			"1. Single-city base — stay in one city and take day trips\n"+
			"2. Multi-city tour — move between cities with nights in each\n"+
			"Which suits you? (Reply \"base in <city>\" or \"multi-city tour\".)",
		n, strings.Join(cities, ", "),
	)
	return DestinationAnalysis{
		Type:       model.DestinationMultiCity,
		Normalized: strings.Join(cities, ", "),
		TripScope: &model.TripScope{
			Scope:             model.ScopeMulti,
			DetectedCities:    cities,
			EstimatedDuration: model.DurationRange{Min: n * 2, Max: n * 4},
			RouteType:         model.RouteLinear,
		},
		Clarification: question,
	}
}

func isRegional(phrase string) bool {
	lower := strings.ToLower(phrase)
	for _, kw := range regionalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (a *DestinationAnalyzer) applyRegional(phrase string) DestinationAnalysis {
	name := a.titler.String(strings.ToLower(phrase))
	return DestinationAnalysis{
		Type:       model.DestinationRegion,
		Normalized: name,
		TripScope: &model.TripScope{
			Scope:     model.ScopeRegional,
			RouteType: model.RouteHubAndSpoke,
		},
	}
}

func (a *DestinationAnalyzer) applySingle(phrase string) DestinationAnalysis {
	if city, ok := a.lookup.City(phrase); ok {
		routeType := model.RouteLinear
		if city.Hub {
			routeType = model.RouteHubAndSpoke
		}
		return DestinationAnalysis{
			Type:       model.DestinationCity,
			Normalized: city.Name,
			Country:    city.Country,
			TripScope: &model.TripScope{
				Scope:     model.ScopeSingle,
				RouteType: routeType,
			},
		}
	}
	if country, ok := a.lookup.Country(phrase); ok {
		suggestions := country.SuggestedCities
		if len(suggestions) > 3 {
			suggestions = suggestions[:3]
		}
		question := fmt.Sprintf(
			"%s is a country — which part were you thinking of? Popular picks: %s.",
			country.Name, strings.Join(suggestions, ", "),
		)
		if len(country.Regions) > 0 {
			question += fmt.Sprintf(" Or a region like %s.", strings.Join(country.Regions, ", "))
		}
		return DestinationAnalysis{
			Type:               model.DestinationCountry,
			Normalized:         country.Name,
			Country:            country.Name,
			NeedsSpecification: true,
			Suggestions:        suggestions,
			SuggestedRegions:   country.Regions,
			Clarification:      question,
		}
	}
	// Unknown to both tables: assume good faith rather than rejecting.
	name := a.titler.String(strings.ToLower(phrase))
	return DestinationAnalysis{
		Type:       model.DestinationCity,
		Normalized: name,
		TripScope: &model.TripScope{
			Scope:     model.ScopeSingle,
			RouteType: model.RouteLinear,
		},
	}
}
