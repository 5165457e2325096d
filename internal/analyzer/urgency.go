package analyzer

import (
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// urgencyRule maps a days-until-travel ceiling to a booking category.
// Rules are evaluated in order; the first ceiling the value fits under
// wins.
type urgencyRule struct {
	maxDays  int
	category model.BookingCategory
	strategy string
}

var urgencyRules = []urgencyRule{
	{maxDays: 14, category: model.BookingLastMinute,
		strategy: "Book whatever is still available — stay flexible on flight times and neighborhoods."},
	{maxDays: 60, category: model.BookingShortNotice,
		strategy: "A mixed picture: some deals remain but popular options are thinning out. Book soon."},
	{maxDays: 180, category: model.BookingAdvance,
		strategy: "Good timing — early-bird fares and a wide choice of accommodation."},
}

const farAdvanceStrategy = "Maximum choice: set fare alerts and hold out for sales before committing."

// ClassifyUrgency assigns a booking strategy from how far out travel
// begins. It is computed once, when dates are confirmed and locked, and
// stored rather than re-derived.
func ClassifyUrgency(start, end, today model.Date) model.BookingTimeline {
	days := start.DaysSince(today)

	if days < 0 {
		return model.BookingTimeline{
			DaysUntilTravel: days,
			Category:        model.BookingLastMinute,
			Strategy:        "These dates are already in the past — double-check the year before booking anything.",
			UrgencyNote:     "start date is in the past",
		}
	}
	for _, rule := range urgencyRules {
		if days <= rule.maxDays {
			return model.BookingTimeline{
				DaysUntilTravel: days,
				Category:        rule.category,
				Strategy:        rule.strategy,
			}
		}
	}
	return model.BookingTimeline{
		DaysUntilTravel: days,
		Category:        model.BookingFarAdvance,
		Strategy:        farAdvanceStrategy,
	}
}
