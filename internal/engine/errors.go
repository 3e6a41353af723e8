package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEvent is returned for events that violate the caller contract
	// (zero units, negative rewards). The resolver itself never fails.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidInput is returned when user input fails validation.
	ErrInvalidInput = errors.New("invalid input")

	ErrNotFound = errors.New("not found")

	// ErrAlreadyInitialized is returned when seeding a character that has skills.
	ErrAlreadyInitialized = errors.New("character already initialized")
)

// NotFoundError names the missing entity. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// LootboxLockedError is returned when the lootbox cannot be opened today.
type LootboxLockedError struct {
	CompletedDailies int
	RequiredDailies  int
	OpenedToday      bool
}

func (e LootboxLockedError) Error() string {
	if e.OpenedToday {
		return "lootbox already opened today"
	}
	return fmt.Sprintf("lootbox unlocks after %d daily goals (completed %d)", e.RequiredDailies, e.CompletedDailies)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
