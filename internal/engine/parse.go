package engine

import (
	"fmt"
	"strings"
	"time"
)

// ParseGoalType parses user input to a GoalType.
// Supported: daily, blue (short), yellow (mid), red (long). Empty input is daily.
func ParseGoalType(input string) (GoalType, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "daily", "d":
		return GoalDaily, nil
	case "blue", "short", "b":
		return GoalBlue, nil
	case "yellow", "mid", "y":
		return GoalYellow, nil
	case "red", "long", "r":
		return GoalRed, nil
	default:
		return "", invalidf("unknown goal type %q", input)
	}
}

// ParseRarity parses a loot rarity name, case-insensitively.
func ParseRarity(input string) (Rarity, error) {
	r := Rarity(strings.TrimSpace(strings.ToUpper(input)))
	if r == "" {
		return RarityCommon, nil
	}
	if !r.IsValid() {
		return "", invalidf("unknown rarity %q", input)
	}
	return r, nil
}

// ResetTime is the local wall-clock time at which a new user day starts.
type ResetTime struct {
	Hour   int
	Minute int
}

// DefaultResetTime is 03:00.
var DefaultResetTime = ResetTime{Hour: 3}

func (r ResetTime) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// ParseResetTime parses "HH:MM" (24h).
func ParseResetTime(input string) (ResetTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(input))
	if err != nil {
		return ResetTime{}, invalidf("reset time must be HH:MM, got %q", input)
	}
	return ResetTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}
