package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var affirmativePattern = regexp.MustCompile(`(?i)\b(yes|yep|yeah|yup|correct|right|sure|confirm|confirmed|sounds good|looks good|perfect|ok|okay)\b`)

var negativePattern = regexp.MustCompile(`(?i)\b(no|nope|nah|wrong|incorrect|not right|change|different)\b`)

func isAffirmative(raw string) bool {
	return affirmativePattern.MatchString(raw) && !negativePattern.MatchString(raw)
}

func isNegative(raw string) bool {
	return negativePattern.MatchString(raw)
}

var createPattern = regexp.MustCompile(`(?i)\b(create|build|generate|go|done|ready|that's it|nothing else)\b`)

func wantsCreate(raw string) bool {
	return createPattern.MatchString(raw) || isAffirmative(raw)
}

var digitsPattern = regexp.MustCompile(`\d+`)

var travelerWords = map[string]int{
	"solo":      1,
	"alone":     1,
	"myself":    1,
	"couple":    2,
	"two of us": 2,
}

// parseTravelers extracts a traveler count from free text. It returns
// ok=false when no count is recognizable at all; range validation is
// the caller's concern.
func parseTravelers(raw string) (int, bool) {
	if m := digitsPattern.FindString(raw); m != "" {
		n, err := strconv.Atoi(m)
		return n, err == nil
	}
	lower := strings.ToLower(raw)
	for word, n := range travelerWords {
		if strings.Contains(lower, word) {
			return n, true
		}
	}
	return 0, false
}

var currencySymbols = map[string]string{
	"$": "USD", "£": "GBP", "€": "EUR",
}

var currencyWords = map[string]string{
	"usd": "USD", "dollar": "USD", "dollars": "USD",
	"gbp": "GBP", "pound": "GBP", "pounds": "GBP",
	"eur": "EUR", "euro": "EUR", "euros": "EUR",
}

var amountPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// parseBudget extracts an amount and currency from phrasings like
// "$3000", "3,000 usd", or "£2000". The currency defaults to USD.
func parseBudget(raw string) (amount float64, currency string, ok bool) {
	currency = "USD"
	for sym, code := range currencySymbols {
		if strings.Contains(raw, sym) {
			currency = code
		}
	}
	lower := strings.ToLower(raw)
	for word, code := range currencyWords {
		if strings.Contains(lower, word) {
			currency = code
		}
	}

	m := amountPattern.FindString(raw)
	if m == "" {
		return 0, currency, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, currency, false
	}
	return amount, currency, true
}
