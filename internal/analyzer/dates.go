package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// DateResult is the outcome of parsing one date phrase. On success the
// Interpretation string is display-ready; the orchestrator echoes it
// back for confirmation before locking.
type DateResult struct {
	Start              model.Date
	End                model.Date
	Success            bool
	Interpretation     string
	NeedsClarification bool
	Clarification      string
}

// DateParser recognizes the supported date-expression patterns. The
// patterns overlap, so they are tried in a fixed order and the first
// match wins.
type DateParser struct {
	now      func() time.Time
	patterns []datePattern
}

// datePattern pairs a recognizer with its resolver, keeping the
// first-match-wins ordering explicit.
type datePattern struct {
	name    string
	re      *regexp.Regexp
	resolve func(p *DateParser, m []string) DateResult
}

const monthAlt = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// defaultLeadDays anchors bare durations ("10 days") a week out from
// now, a deliberate booking-lead default.
const defaultLeadDays = 7

// NewDateParser builds a parser using the real clock.
func NewDateParser() *DateParser {
	return NewDateParserAt(time.Now)
}

// NewDateParserAt builds a parser with an injected clock.
func NewDateParserAt(now func() time.Time) *DateParser {
	p := &DateParser{now: now}
	p.patterns = []datePattern{
		{
			name:    "month-year-only",
			re:      regexp.MustCompile(`(?i)^\s*(?:in\s+)?` + monthAlt + `\s+(\d{4})\s*$`),
			resolve: (*DateParser).resolveMonthYear,
		},
		{
			name:    "day-range-with-year",
			re:      regexp.MustCompile(`(?i)` + monthAlt + `\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:-|–|—|to|through|until)\s*(\d{1,2})(?:st|nd|rd|th)?\s*,?\s*(\d{4})`),
			resolve: (*DateParser).resolveRangeWithYear,
		},
		{
			name:    "day-range-no-year",
			re:      regexp.MustCompile(`(?i)` + monthAlt + `\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:-|–|—|to|through|until)\s*(\d{1,2})(?:st|nd|rd|th)?`),
			resolve: (*DateParser).resolveRangeNoYear,
		},
		{
			name:    "duration-in-month",
			re:      regexp.MustCompile(`(?i)(\d{1,3})\s*(?:days?|nights?)\s+in\s+` + monthAlt),
			resolve: (*DateParser).resolveDurationInMonth,
		},
		{
			name:    "bare-duration",
			re:      regexp.MustCompile(`(?i)(\d{1,3})\s*(day|week|month)s?\b`),
			resolve: (*DateParser).resolveBareDuration,
		},
		{
			name:    "relative-month",
			re:      regexp.MustCompile(`(?i)(early|mid|late)[-\s]*` + monthAlt),
			resolve: (*DateParser).resolveRelativeMonth,
		},
	}
	return p
}

// Parse runs the pattern table over a raw date phrase.
func (p *DateParser) Parse(raw string) DateResult {
	text := strings.TrimSpace(raw)
	for _, pat := range p.patterns {
		if m := pat.re.FindStringSubmatch(text); m != nil {
			return pat.resolve(p, m)
		}
	}
	return DateResult{
		NeedsClarification: true,
		Clarification: "I couldn't work out the dates. Try something like " +
			"\"March 15-22\", \"November 11-22, 2026\", \"10 days in March\", or \"2 weeks\".",
	}
}

func (p *DateParser) today() model.Date {
	return model.DateOf(p.now())
}

func (p *DateParser) resolveMonthYear(m []string) DateResult {
	month := monthFromName(m[1])
	year := mustAtoi(m[2])
	return DateResult{
		NeedsClarification: true,
		Clarification: fmt.Sprintf(
			"%s %d works — which days? For example \"%s 10-20, %d\".",
			month, year, month, year,
		),
	}
}

func (p *DateParser) resolveRangeWithYear(m []string) DateResult {
	month := monthFromName(m[1])
	startDay, endDay := mustAtoi(m[2]), mustAtoi(m[3])
	year := mustAtoi(m[4])
	if !validDayRange(startDay, endDay) {
		return invalidDayRange(month)
	}
	start := model.NewDate(year, month, startDay)
	end := model.NewDate(year, month, endDay)
	return resolved(start, end)
}

func (p *DateParser) resolveRangeNoYear(m []string) DateResult {
	month := monthFromName(m[1])
	startDay, endDay := mustAtoi(m[2]), mustAtoi(m[3])
	if !validDayRange(startDay, endDay) {
		return invalidDayRange(month)
	}
	// Default to the current year; if that start has already passed,
	// roll to next year rather than silently producing a past date.
	today := p.today()
	start := model.NewDate(today.Year, month, startDay)
	end := model.NewDate(today.Year, month, endDay)
	if start.Before(today) {
		start = model.NewDate(today.Year+1, month, startDay)
		end = model.NewDate(today.Year+1, month, endDay)
	}
	return resolved(start, end)
}

func (p *DateParser) resolveDurationInMonth(m []string) DateResult {
	days := mustAtoi(m[1])
	month := monthFromName(m[2])
	return DateResult{
		NeedsClarification: true,
		Clarification: fmt.Sprintf(
			"%d days in %s — which day would you like to start? For example \"%s 5\".",
			days, month, month,
		),
	}
}

func (p *DateParser) resolveBareDuration(m []string) DateResult {
	n := mustAtoi(m[1])
	if n <= 0 {
		return DateResult{
			NeedsClarification: true,
			Clarification:      "That duration doesn't work — how many days or weeks are you planning?",
		}
	}
	start := p.today().AddDays(defaultLeadDays)
	var end model.Date
	switch strings.ToLower(m[2]) {
	case "day":
		end = start.AddDays(n - 1)
	case "week":
		end = start.AddDays(n*7 - 1)
	case "month":
		end = model.DateOf(start.Time().AddDate(0, n, 0)).AddDays(-1)
	}
	return resolved(start, end)
}

func (p *DateParser) resolveRelativeMonth(m []string) DateResult {
	position := strings.ToLower(m[1])
	month := monthFromName(m[2])
	return DateResult{
		NeedsClarification: true,
		Clarification: fmt.Sprintf(
			"%s%s %s — how many days are you thinking? \"%s %s, 7 days\" pins it down.",
			strings.ToUpper(position[:1]), position[1:], month, position, month,
		),
	}
}

func resolved(start, end model.Date) DateResult {
	return DateResult{
		Start:          start,
		End:            end,
		Success:        true,
		Interpretation: FormatDateRange(start, end),
	}
}

// FormatDateRange renders a display string whose day count always
// equals end − start + 1.
func FormatDateRange(start, end model.Date) string {
	days := end.DaysSince(start) + 1
	noun := "days"
	if days == 1 {
		noun = "day"
	}
	switch {
	case start.Year == end.Year && start.Month == end.Month:
		return fmt.Sprintf("%s %d–%d, %d (%d %s)", start.Month, start.Day, end.Day, start.Year, days, noun)
	case start.Year == end.Year:
		return fmt.Sprintf("%s %d – %s %d, %d (%d %s)", start.Month, start.Day, end.Month, end.Day, start.Year, days, noun)
	default:
		return fmt.Sprintf("%s %d, %d – %s %d, %d (%d %s)", start.Month, start.Day, start.Year, end.Month, end.Day, end.Year, days, noun)
	}
}

func validDayRange(startDay, endDay int) bool {
	return startDay >= 1 && startDay <= endDay && endDay <= 31
}

func invalidDayRange(month time.Month) DateResult {
	return DateResult{
		NeedsClarification: true,
		Clarification: fmt.Sprintf(
			"Those days don't look right for %s — the start day must come before the end day, within 1-31.",
			month,
		),
	}
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func monthFromName(name string) time.Month {
	return monthsByPrefix[strings.ToLower(name)[:3]]
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
