package engine

import (
	"testing"
)

func TestResolveMatchesStockCurves(t *testing.T) {
	cases := []struct {
		name  string
		start Ledger
		delta int
		curve Curve
		want  Ledger
		next  int
	}{
		{"character multi level-up", NewLedger(), 1000, CharacterCurve, Ledger{Level: 4, XP: 300}, 800},
		{"skill multi level-up", NewLedger(), 550, SkillCurve, Ledger{Level: 3, XP: 250}, 300},
		{"skill level-down", Ledger{Level: 3, XP: 50}, -100, SkillCurve, Ledger{Level: 2, XP: 150}, 200},
		{"floor clamp", Ledger{Level: 1, XP: 30}, -500, SkillCurve, Ledger{Level: 1, XP: 0}, 100},
		{"exact threshold", NewLedger(), 100, SkillCurve, Ledger{Level: 2, XP: 0}, 200},
		{"one short", NewLedger(), 99, SkillCurve, Ledger{Level: 1, XP: 99}, 100},
		{"zero delta", Ledger{Level: 2, XP: 15}, 0, SkillCurve, Ledger{Level: 2, XP: 15}, 200},
	}
	for _, tc := range cases {
		got := Resolve(tc.start, tc.delta, tc.curve)
		if got != tc.want {
			t.Fatalf("%s: Resolve(%+v, %d)=%+v, want %+v", tc.name, tc.start, tc.delta, got, tc.want)
		}
		if req := got.Required(tc.curve); req != tc.next {
			t.Fatalf("%s: Required=%d, want %d", tc.name, req, tc.next)
		}
	}
}

func TestResolveKeepsLedgerInRange(t *testing.T) {
	curves := []Curve{SkillCurve, CharacterCurve, Linear(7), Table(5, 5, 10)}
	deltas := []int{-10000, -777, -101, -100, -1, 0, 1, 99, 100, 101, 555, 12345}
	for ci, curve := range curves {
		for _, start := range []Ledger{NewLedger(), {Level: 3, XP: 0}, {Level: 5, XP: 4}} {
			start = Resolve(start, 0, curve)
			for _, d := range deltas {
				got := Resolve(start, d, curve)
				if got.Level < 1 {
					t.Fatalf("curve %d: level %d < 1", ci, got.Level)
				}
				if got.XP < 0 || got.XP >= curve(got.Level) {
					t.Fatalf("curve %d: xp %d out of [0,%d) at level %d", ci, got.XP, curve(got.Level), got.Level)
				}
			}
		}
	}
}

func totalXP(l Ledger, curve Curve) int {
	total := l.XP
	for lvl := 1; lvl < l.Level; lvl++ {
		total += curve(lvl)
	}
	return total
}

func TestResolveConservesXPWithoutClamp(t *testing.T) {
	start := Ledger{Level: 3, XP: 120}
	for _, d := range []int{1, 80, 180, 1000, -20, -120, -300, -420} {
		for _, curve := range []Curve{SkillCurve, CharacterCurve} {
			got := Resolve(start, d, curve)
			if want := totalXP(start, curve) + d; totalXP(got, curve) != want {
				t.Fatalf("delta %d: total=%d, want %d", d, totalXP(got, curve), want)
			}
		}
	}
}

func TestResolveInverse(t *testing.T) {
	start := Ledger{Level: 2, XP: 15}
	for _, d := range []int{5, 25, 185, 186, 900} {
		up := Resolve(start, d, SkillCurve)
		if back := Resolve(up, -d, SkillCurve); back != start {
			t.Fatalf("+%d then -%d: got %+v, want %+v", d, d, back, start)
		}
	}
	// Negative first only round-trips while cumulative XP stays non-negative.
	for _, d := range []int{10, 115} {
		down := Resolve(start, -d, SkillCurve)
		if back := Resolve(down, d, SkillCurve); back != start {
			t.Fatalf("-%d then +%d: got %+v, want %+v", d, d, back, start)
		}
	}
	clamped := Resolve(start, -500, SkillCurve)
	if back := Resolve(clamped, 500, SkillCurve); back == start {
		t.Fatalf("expected clamp to lose XP, got %+v back", back)
	}
}

func TestResolveMonotonic(t *testing.T) {
	start := Ledger{Level: 2, XP: 50}
	prev := Resolve(start, -1000, CharacterCurve)
	for d := -999; d <= 3000; d += 37 {
		got := Resolve(start, d, CharacterCurve)
		if got.Level < prev.Level || (got.Level == prev.Level && got.XP < prev.XP) {
			t.Fatalf("delta %d: %+v below previous %+v", d, got, prev)
		}
		prev = got
	}
}

func TestResolveNormalizesLevelZero(t *testing.T) {
	if got := Resolve(Ledger{}, 0, SkillCurve); got != NewLedger() {
		t.Fatalf("Resolve(zero ledger)=%+v, want %+v", got, NewLedger())
	}
}

func TestResolvePanicsOnNonPositiveCurve(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for zero threshold")
		}
	}()
	Resolve(NewLedger(), 10, func(int) int { return 0 })
}

func TestChangeDirection(t *testing.T) {
	up := ResolveChange(Ledger{Level: 1, XP: 90}, 25, SkillCurve)
	if !up.LeveledUp() || up.LeveledDown() || up.LevelsGained() != 1 {
		t.Fatalf("unexpected up change %+v", up)
	}
	down := ResolveChange(up.After, -25, SkillCurve)
	if !down.LeveledDown() || down.LevelsGained() != -1 {
		t.Fatalf("unexpected down change %+v", down)
	}
	if down.After != up.Before {
		t.Fatalf("down.After=%+v, want %+v", down.After, up.Before)
	}
}

func TestProgress(t *testing.T) {
	if got := (Ledger{Level: 1, XP: 50}).Progress(SkillCurve); got != 0.5 {
		t.Fatalf("Progress=%v, want 0.5", got)
	}
	if got := NewLedger().Progress(SkillCurve); got != 0 {
		t.Fatalf("Progress=%v, want 0", got)
	}
}
