package server

import (
	"errors"
	"regexp"
	"strings"
)

const (
	playerNameMinLength = 3
	playerNameMaxLength = 20
)

var (
	playerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)
	playerNameStrip   = regexp.MustCompile(`[^a-zA-Z0-9_\- ]`)
)

// ValidatePlayerName checks the 3-20 character letters/digits/space/
// underscore/hyphen rule against the trimmed name.
func ValidatePlayerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < playerNameMinLength {
		return errors.New("INVALID_NAME: Player name must be at least 3 characters")
	}
	if len(trimmed) > playerNameMaxLength {
		return errors.New("INVALID_NAME: Player name too long (max 20 characters)")
	}
	if !playerNamePattern.MatchString(trimmed) {
		return errors.New("INVALID_NAME: Player name may only contain letters, numbers, spaces, underscores, and hyphens")
	}
	return nil
}

// SanitizePlayerName trims, caps at 20 characters, and strips anything
// outside the allowed charset. Never call it on unvalidated input alone.
func SanitizePlayerName(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) > playerNameMaxLength {
		trimmed = trimmed[:playerNameMaxLength]
	}
	sanitized := playerNameStrip.ReplaceAllString(trimmed, "")
	if sanitized == "" {
		return "Player"
	}
	return sanitized
}

func ValidateChatMessage(message string, maxLength int) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return errors.New("INVALID_MESSAGE: Chat message cannot be empty")
	}
	if len(trimmed) > maxLength {
		return errors.New("INVALID_MESSAGE: Chat message too long")
	}
	return nil
}

func SanitizeChatMessage(message string, maxLength int) string {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) > maxLength {
		trimmed = trimmed[:maxLength]
	}
	return trimmed
}
