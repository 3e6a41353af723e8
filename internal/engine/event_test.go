package engine

import (
	"errors"
	"testing"
)

func TestEventDelta(t *testing.T) {
	cases := []struct {
		ev   Event
		want int
	}{
		{ProgressEvent(3, 15), 45},
		{ProgressEvent(1, 0), 0},
		{GoalCompleted(25), 25},
		{GoalReverted(25), -25},
		{GoalCompleted(0), 0},
	}
	for _, tc := range cases {
		got, err := tc.ev.Delta()
		if err != nil {
			t.Fatalf("%+v: %v", tc.ev, err)
		}
		if got != tc.want {
			t.Fatalf("%+v: delta=%d, want %d", tc.ev, got, tc.want)
		}
	}
}

func TestEventDeltaRejectsInvalid(t *testing.T) {
	for _, ev := range []Event{
		ProgressEvent(0, 10),
		ProgressEvent(-2, 10),
		ProgressEvent(1, -5),
		GoalCompleted(-1),
		GoalReverted(-1),
		{Kind: "bonus"},
	} {
		if _, err := ev.Delta(); !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("%+v: err=%v, want ErrInvalidEvent", ev, err)
		}
	}
}

func TestApplyEventUsesEachCurve(t *testing.T) {
	char := Ledger{Level: 1, XP: 90}
	skill := Ledger{Level: 1, XP: 90}
	out, err := ApplyEvent(char, skill, GoalCompleted(25), DefaultCurves())
	if err != nil {
		t.Fatalf("ApplyEvent: %v", err)
	}
	if out.Skill.After != (Ledger{Level: 2, XP: 15}) || out.Skill.After.Required(SkillCurve) != 200 {
		t.Fatalf("skill=%+v", out.Skill.After)
	}
	if out.Character.After != (Ledger{Level: 2, XP: 15}) || out.Character.After.Required(CharacterCurve) != 240 {
		t.Fatalf("character=%+v", out.Character.After)
	}

	back, err := ApplyEvent(out.Character.After, out.Skill.After, GoalReverted(25), DefaultCurves())
	if err != nil {
		t.Fatalf("ApplyEvent revert: %v", err)
	}
	if back.Skill.After != skill || back.Character.After != char {
		t.Fatalf("revert: skill=%+v character=%+v", back.Skill.After, back.Character.After)
	}
	if back.Delta != -25 {
		t.Fatalf("delta=%d, want -25", back.Delta)
	}
}

func TestApplyEventInvalidLeavesNothing(t *testing.T) {
	out, err := ApplyEvent(NewLedger(), NewLedger(), ProgressEvent(0, 10), DefaultCurves())
	if err == nil {
		t.Fatalf("expected error")
	}
	if out != (Outcome{}) {
		t.Fatalf("outcome=%+v, want zero", out)
	}
}
