package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateUtterance validates one user turn value.
func ValidateUtterance(value string) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > 2000 {
		return errors.New("value exceeds maximum length")
	}
	if !utf8.ValidString(value) {
		return errors.New("value must be valid UTF-8")
	}
	return nil
}

// ValidateConversationID validates a conversation ID.
func ValidateConversationID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid conversation ID format")
	}
	return nil
}

// ValidateSlotName validates an optional slot name. Empty means "route
// by the engine's expected slot".
func ValidateSlotName(slot string) error {
	switch slot {
	case "", "destination", "origin", "dates", "travelers", "budget", "preferences":
		return nil
	}
	return errors.New("unknown slot name")
}
