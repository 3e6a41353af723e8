package engine

import "fmt"

// EventKind identifies what produced an XP delta.
type EventKind string

const (
	EventProgress      EventKind = "progress"
	EventGoalCompleted EventKind = "goal_completed"
	EventGoalReverted  EventKind = "goal_reverted"
)

// Event is one XP-producing action against a skill.
type Event struct {
	Kind EventKind

	// Progress events.
	Units     int
	XPPerUnit int

	// Goal events.
	Reward int
}

// ProgressEvent logs units of progress on a skill.
func ProgressEvent(units, xpPerUnit int) Event {
	return Event{Kind: EventProgress, Units: units, XPPerUnit: xpPerUnit}
}

// GoalCompleted awards a goal's reward.
func GoalCompleted(reward int) Event {
	return Event{Kind: EventGoalCompleted, Reward: reward}
}

// GoalReverted takes back a goal's reward.
func GoalReverted(reward int) Event {
	return Event{Kind: EventGoalReverted, Reward: reward}
}

// Delta validates the event and returns its signed XP delta.
func (e Event) Delta() (int, error) {
	switch e.Kind {
	case EventProgress:
		if e.Units < 1 {
			return 0, fmt.Errorf("%w: units must be at least 1, got %d", ErrInvalidEvent, e.Units)
		}
		if e.XPPerUnit < 0 {
			return 0, fmt.Errorf("%w: xp per unit must not be negative, got %d", ErrInvalidEvent, e.XPPerUnit)
		}
		return e.Units * e.XPPerUnit, nil
	case EventGoalCompleted, EventGoalReverted:
		if e.Reward < 0 {
			return 0, fmt.Errorf("%w: xp reward must not be negative, got %d", ErrInvalidEvent, e.Reward)
		}
		if e.Kind == EventGoalReverted {
			return -e.Reward, nil
		}
		return e.Reward, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, e.Kind)
	}
}

// Outcome is the result of applying one event to a character and one of its skills.
type Outcome struct {
	Delta     int    `json:"delta"`
	Character Change `json:"character"`
	Skill     Change `json:"skill"`
}

// ApplyEvent resolves the event's delta against both ledgers. The same signed delta
// goes to each ledger and each cascades on its own curve.
func ApplyEvent(character, skill Ledger, ev Event, curves Curves) (Outcome, error) {
	delta, err := ev.Delta()
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Delta:     delta,
		Character: ResolveChange(character, delta, curves.Character),
		Skill:     ResolveChange(skill, delta, curves.Skill),
	}, nil
}
