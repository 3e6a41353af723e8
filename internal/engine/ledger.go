package engine

import "fmt"

// Ledger is the level/XP pair tracked for a character or a skill.
// A resolved ledger satisfies Level >= 1 and 0 <= XP < curve(Level).
type Ledger struct {
	Level int `json:"level"`
	XP    int `json:"current_xp"`
}

// NewLedger returns the starting ledger: level 1 with no XP.
func NewLedger() Ledger {
	return Ledger{Level: 1}
}

// Required returns the XP needed to advance past the ledger's level.
func (l Ledger) Required(curve Curve) int {
	return threshold(curve, l.Level)
}

// Progress returns how far the ledger is into its current level, in [0, 1].
func (l Ledger) Progress(curve Curve) float64 {
	req := l.Required(curve)
	if l.XP <= 0 {
		return 0
	}
	if l.XP >= req {
		return 1
	}
	return float64(l.XP) / float64(req)
}

// Resolve applies a signed XP delta and cascades levels until XP is back in range.
// Level-ups subtract the current threshold and advance; level-downs step back a level
// and add that level's threshold. At level 1 negative XP is clamped to 0.
func Resolve(l Ledger, delta int, curve Curve) Ledger {
	level := l.Level
	if level < 1 {
		level = 1
	}
	xp := l.XP + delta

	for xp >= threshold(curve, level) {
		xp -= threshold(curve, level)
		level++
	}
	for xp < 0 && level > 1 {
		level--
		xp += threshold(curve, level)
	}
	if xp < 0 {
		xp = 0
	}
	return Ledger{Level: level, XP: xp}
}

func threshold(curve Curve, level int) int {
	req := curve(level)
	if req <= 0 {
		panic(fmt.Sprintf("engine: curve returned non-positive threshold %d for level %d", req, level))
	}
	return req
}

// Change records a ledger before and after one resolution.
type Change struct {
	Before Ledger `json:"before"`
	After  Ledger `json:"after"`
}

// ResolveChange is Resolve that also keeps the starting ledger.
func ResolveChange(l Ledger, delta int, curve Curve) Change {
	return Change{Before: l, After: Resolve(l, delta, curve)}
}

// LevelsGained is negative when the change de-leveled.
func (c Change) LevelsGained() int { return c.After.Level - c.Before.Level }

func (c Change) LeveledUp() bool   { return c.After.Level > c.Before.Level }
func (c Change) LeveledDown() bool { return c.After.Level < c.Before.Level }
