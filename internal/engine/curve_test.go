package engine

import (
	"errors"
	"testing"
)

func TestStockCurves(t *testing.T) {
	skill := map[int]int{1: 100, 2: 200, 3: 300, 10: 1000}
	for lvl, want := range skill {
		if got := SkillCurve(lvl); got != want {
			t.Fatalf("SkillCurve(%d)=%d, want %d", lvl, got, want)
		}
	}
	character := map[int]int{1: 100, 2: 240, 3: 360, 4: 800, 5: 1118, 9: 2700}
	for lvl, want := range character {
		if got := CharacterCurve(lvl); got != want {
			t.Fatalf("CharacterCurve(%d)=%d, want %d", lvl, got, want)
		}
	}
	for lvl := 1; lvl < 50; lvl++ {
		if CharacterCurve(lvl+1) < CharacterCurve(lvl) {
			t.Fatalf("CharacterCurve decreases at level %d", lvl)
		}
	}
}

func TestTableCurveExtends(t *testing.T) {
	c := Table(10, 20, 50)
	want := []int{10, 20, 50, 80, 110}
	for i, w := range want {
		if got := c(i + 1); got != w {
			t.Fatalf("Table(%d)=%d, want %d", i+1, got, w)
		}
	}
	single := Table(40)
	if got := single(3); got != 120 {
		t.Fatalf("Table(40)(3)=%d, want 120", got)
	}
}

func TestParseCurve(t *testing.T) {
	c, err := ParseCurve("")
	if err != nil || c(2) != 240 {
		t.Fatalf("ParseCurve(\"\") should be the character curve, err=%v", err)
	}
	c, err = ParseCurve(" Skill ")
	if err != nil || c(3) != 300 {
		t.Fatalf("ParseCurve(skill) err=%v", err)
	}
	c, err = ParseCurve("linear:50")
	if err != nil || c(4) != 200 {
		t.Fatalf("ParseCurve(linear:50) err=%v", err)
	}
	c, err = ParseCurve("table:100, 150,300")
	if err != nil || c(2) != 150 {
		t.Fatalf("ParseCurve(table) err=%v", err)
	}

	for _, bad := range []string{"linear:0", "linear:x", "table:100,50", "table:0", "cubic"} {
		if _, err := ParseCurve(bad); err == nil {
			t.Fatalf("ParseCurve(%q): expected error", bad)
		}
	}
}

func TestParseGoalTypeAndRarity(t *testing.T) {
	cases := map[string]GoalType{"": GoalDaily, "Daily": GoalDaily, "short": GoalBlue, "y": GoalYellow, "RED": GoalRed}
	for in, want := range cases {
		got, err := ParseGoalType(in)
		if err != nil || got != want {
			t.Fatalf("ParseGoalType(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseGoalType("weekly"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ParseGoalType(weekly) err=%v, want ErrInvalidInput", err)
	}
	if r, err := ParseRarity("legendary"); err != nil || r != RarityLegendary {
		t.Fatalf("ParseRarity(legendary)=%q,%v", r, err)
	}
	if r, _ := ParseRarity(""); r != RarityCommon {
		t.Fatalf("ParseRarity(\"\")=%q, want COMMON", r)
	}
	if _, err := ParseRarity("mythic"); err == nil {
		t.Fatalf("ParseRarity(mythic): expected error")
	}
}

func TestParseResetTime(t *testing.T) {
	rt, err := ParseResetTime("04:30")
	if err != nil {
		t.Fatalf("ParseResetTime: %v", err)
	}
	if rt.Hour != 4 || rt.Minute != 30 || rt.String() != "04:30" {
		t.Fatalf("rt=%+v", rt)
	}
	for _, bad := range []string{"25:00", "4pm", ""} {
		if _, err := ParseResetTime(bad); err == nil {
			t.Fatalf("ParseResetTime(%q): expected error", bad)
		}
	}
}
