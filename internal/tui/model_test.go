package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rpglife/internal/engine"
)

type fakeService struct {
	snap      engine.FullSnapshot
	progress  engine.ProgressResult
	toggle    engine.ToggleResult
	toggleErr error
}

func (f *fakeService) Character(context.Context) (engine.FullSnapshot, error) {
	return f.snap, nil
}

func (f *fakeService) AddProgress(context.Context, int64, int) (engine.ProgressResult, error) {
	return f.progress, nil
}

func (f *fakeService) ToggleGoal(context.Context, int64) (engine.ToggleResult, error) {
	return f.toggle, f.toggleErr
}

func testSnapshot() engine.FullSnapshot {
	return engine.FullSnapshot{Character: engine.CharacterSnapshot{
		ID: 1, Name: "Hero", Level: 1, CurrentXP: 90, XPToNextLevel: 100,
		Skills: []engine.SkillSnapshot{{
			ID: 7, Name: "Reading", UnitDescription: "page", XPPerUnit: 15,
			Level: 1, CurrentXP: 90, XPToNextLevel: 100,
			Goals: []engine.GoalSnapshot{{ID: 3, SkillID: 7, Description: "Read", GoalType: engine.GoalDaily, XPReward: 25}},
		}},
	}}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, svc *fakeService) boardModel {
	t.Helper()
	m := newBoardModel(context.Background(), svc, engine.DefaultCurves())
	next, _ := m.Update(m.Init()())
	return next.(boardModel)
}

func TestBoardLoadsSnapshot(t *testing.T) {
	m := loaded(t, &fakeService{snap: testSnapshot()})
	lines := m.boardLines()
	if len(lines) != 2 {
		t.Fatalf("expected skill + goal lines, got %d", len(lines))
	}
	if lines[1].goalID != 3 || lines[1].skillID != 7 {
		t.Fatalf("unexpected goal line: %+v", lines[1])
	}
	if v := m.View(); !strings.Contains(v, "Level 1") || !strings.Contains(v, "Reading") {
		t.Fatalf("view missing character or skill:\n%s", v)
	}
}

func TestBoardProgressPredictsThenReconciles(t *testing.T) {
	svc := &fakeService{snap: testSnapshot()}
	m := loaded(t, svc)

	next, cmd := m.Update(key("p"))
	m = next.(boardModel)
	if cmd == nil {
		t.Fatalf("expected progress command")
	}
	snap, _ := m.cache.Snapshot()
	if snap.Level != 2 || snap.CurrentXP != 5 {
		t.Fatalf("expected predicted level 2 / 5 XP, got %d / %d", snap.Level, snap.CurrentXP)
	}
	if !m.cache.Pending() {
		t.Fatalf("expected pending prediction")
	}

	sk := testSnapshot().Character.Skills[0]
	sk.Level, sk.CurrentXP, sk.XPToNextLevel = 2, 5, 200
	svc.progress = engine.ProgressResult{
		Patch: engine.SkillPatch{
			Character: engine.LedgerView{Level: 2, CurrentXP: 5, XPToNextLevel: 240},
			Skill:     sk,
		},
		Outcome: engine.Outcome{
			Delta:     15,
			Character: engine.Change{Before: engine.Ledger{Level: 1, XP: 90}, After: engine.Ledger{Level: 2, XP: 5}},
			Skill:     engine.Change{Before: engine.Ledger{Level: 1, XP: 90}, After: engine.Ledger{Level: 2, XP: 5}},
		},
	}
	next, _ = m.Update(cmd())
	m = next.(boardModel)
	if m.cache.Pending() {
		t.Fatalf("expected reconciled cache")
	}
	if !strings.Contains(m.lastLog, "+15 XP") || !strings.Contains(m.lastLog, "1 → 2") {
		t.Fatalf("unexpected log: %q", m.lastLog)
	}
}

func TestBoardToggleFailureDiscardsPrediction(t *testing.T) {
	svc := &fakeService{snap: testSnapshot(), toggleErr: errors.New("boom")}
	m := loaded(t, svc)

	next, _ := m.Update(key("j"))
	m = next.(boardModel)
	next, cmd := m.Update(key(" "))
	m = next.(boardModel)
	if cmd == nil {
		t.Fatalf("expected toggle command")
	}
	snap, _ := m.cache.Snapshot()
	if !snap.Skills[0].Goals[0].IsCompleted {
		t.Fatalf("expected predicted completion")
	}

	next, _ = m.Update(cmd())
	m = next.(boardModel)
	snap, _ = m.cache.Snapshot()
	if snap.Skills[0].Goals[0].IsCompleted || snap.CurrentXP != 90 {
		t.Fatalf("expected prediction discarded, got %+v", snap.Skills[0].Goals[0])
	}
	if !strings.Contains(m.lastLog, "boom") {
		t.Fatalf("unexpected log: %q", m.lastLog)
	}
}

func TestBoardToggleRequiresGoal(t *testing.T) {
	m := loaded(t, &fakeService{snap: testSnapshot()})
	next, cmd := m.Update(key("c"))
	m = next.(boardModel)
	if cmd != nil {
		t.Fatalf("expected no command on a skill line")
	}
	if m.lastLog != "Select a goal to toggle." {
		t.Fatalf("unexpected log: %q", m.lastLog)
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := progressBar(150, 100, 4); got != "[####]" {
		t.Fatalf("got %q", got)
	}
	if got := progressBar(-5, 100, 4); got != "[----]" {
		t.Fatalf("got %q", got)
	}
}
