package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rpglife/internal/engine"
	"rpglife/internal/state"
	"rpglife/internal/ui"
)

// Service is the part of *engine.Service the board drives.
type Service interface {
	Character(ctx context.Context) (engine.FullSnapshot, error)
	AddProgress(ctx context.Context, skillID int64, units int) (engine.ProgressResult, error)
	ToggleGoal(ctx context.Context, goalID int64) (engine.ToggleResult, error)
}

type boardModel struct {
	ctx   context.Context
	svc   Service
	cache *state.Cache

	width  int
	height int

	collapsed map[int64]bool
	selected  int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap engine.FullSnapshot
	err  error
}

type progressMsg struct {
	skillID int64
	res     engine.ProgressResult
	err     error
}

type toggledMsg struct {
	goalID int64
	res    engine.ToggleResult
	err    error
}

func newBoardModel(ctx context.Context, svc Service, curves engine.Curves) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		cache:     state.New(curves),
		collapsed: map[int64]bool{},
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.svc.Character(m.ctx)
		return loadedMsg{snap: snap, err: err}
	}
}

func (m boardModel) progressCmd(skillID int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AddProgress(m.ctx, skillID, 1)
		return progressMsg{skillID: skillID, res: res, err: err}
	}
}

func (m boardModel) toggleCmd(goalID int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleGoal(m.ctx, goalID)
		return toggledMsg{goalID: goalID, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.cache.Reconcile(msg.snap); err != nil {
			m.err = err
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case progressMsg:
		if msg.err != nil {
			m.cache.Discard()
			m.lastLog = "Progress failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.cache.Reconcile(msg.res.Patch); err != nil {
			m.lastLog = "Sync failed: " + err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = describeOutcome(msg.res.Patch.Skill.Name, msg.res.Outcome, msg.res.Rewards)
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.cache.Discard()
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.cache.Reconcile(msg.res.Patch); err != nil {
			m.lastLog = "Sync failed: " + err.Error()
			return m, m.loadCmd()
		}
		verb := "Reverted"
		if msg.res.Completed {
			verb = "Completed"
		}
		if msg.res.Outcome == nil {
			m.lastLog = fmt.Sprintf("%s goal %d.", verb, msg.goalID)
			return m, nil
		}
		m.lastLog = verb + ": " + describeOutcome(msg.res.Patch.Skill.Name, *msg.res.Outcome, msg.res.Rewards)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			lines := m.boardLines()
			if m.selected < len(lines)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			line, ok := m.current()
			if ok && line.goalID == 0 {
				m.collapsed[line.skillID] = !m.collapsed[line.skillID]
			}
			return m, nil
		case "p", "+":
			line, ok := m.current()
			if !ok {
				return m, nil
			}
			snap, _ := m.cache.Snapshot()
			sk := snap.Skill(line.skillID)
			if sk == nil {
				return m, nil
			}
			if _, err := m.cache.Predict(sk.ID, engine.ProgressEvent(1, sk.XPPerUnit)); err != nil {
				m.lastLog = "Progress failed: " + err.Error()
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Logging 1 %s on %s…", sk.UnitDescription, sk.Name)
			return m, m.progressCmd(sk.ID)
		case "c", " ":
			line, ok := m.current()
			if !ok {
				return m, nil
			}
			if line.goalID == 0 {
				m.lastLog = "Select a goal to toggle."
				return m, nil
			}
			if _, err := m.cache.PredictToggle(line.goalID); err != nil {
				m.lastLog = "Toggle failed: " + err.Error()
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Toggling goal %d…", line.goalID)
			return m, m.toggleCmd(line.goalID)
		}
	}
	return m, nil
}

func describeOutcome(skill string, out engine.Outcome, rewards []engine.RewardSnapshot) string {
	s := fmt.Sprintf("%s %+d XP", skill, out.Delta)
	if out.Skill.LeveledUp() || out.Skill.LeveledDown() {
		s += fmt.Sprintf(" (skill level %d → %d)", out.Skill.Before.Level, out.Skill.After.Level)
	}
	if out.Character.LeveledUp() || out.Character.LeveledDown() {
		s += fmt.Sprintf(" (character level %d → %d)", out.Character.Before.Level, out.Character.After.Level)
	}
	for _, rw := range rewards {
		s += " " + ui.IconTrophy + " " + rw.Description
	}
	return s
}

// boardLine is one selectable row: a skill (goalID 0) or one of its goals.
type boardLine struct {
	skillID int64
	goalID  int64
	text    string
}

func (m boardModel) boardLines() []boardLine {
	snap, ok := m.cache.Snapshot()
	if !ok {
		return nil
	}
	var out []boardLine
	for _, sk := range snap.Skills {
		fold := "▾ "
		if m.collapsed[sk.ID] {
			fold = "▸ "
		}
		if len(sk.Goals) == 0 {
			fold = "  "
		}
		out = append(out, boardLine{
			skillID: sk.ID,
			text: fmt.Sprintf("%s%s lvl %d %s %d/%d",
				fold, sk.Name, sk.Level,
				progressBar(sk.CurrentXP, sk.XPToNextLevel, 12),
				sk.CurrentXP, sk.XPToNextLevel),
		})
		if m.collapsed[sk.ID] {
			continue
		}
		for _, g := range sk.Goals {
			mark := "[ ]"
			if g.IsCompleted {
				mark = "[x]"
			}
			out = append(out, boardLine{
				skillID: sk.ID,
				goalID:  g.ID,
				text:    fmt.Sprintf("    %s %s (%s, %d XP)", mark, g.Description, strings.ToLower(string(g.GoalType)), g.XPReward),
			})
		}
	}
	return out
}

func (m boardModel) current() (boardLine, bool) {
	lines := m.boardLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return boardLine{}, false
	}
	return lines[m.selected], true
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	snap, ok := m.cache.Snapshot()
	if !ok {
		return "RPG-Life | loading…"
	}
	bar := progressBar(snap.CurrentXP, snap.XPToNextLevel, 30)
	sync := ""
	if m.cache.Pending() {
		sync = " (syncing)"
	}
	return fmt.Sprintf("RPG-Life | %s | Level %d | XP %d/%d %s%s", snap.Name, snap.Level, snap.CurrentXP, snap.XPToNextLevel, bar, sync)
}

func (m boardModel) renderSidebar() string {
	snap, ok := m.cache.Snapshot()
	if !ok {
		return "Character\n\nLoading…"
	}
	lines := []string{"Achievements"}
	claimed := 0
	for _, a := range snap.Achievements {
		if a.ClaimedDate != nil {
			claimed++
		}
	}
	lines = append(lines, fmt.Sprintf("- character: %d/%d", claimed, len(snap.Achievements)))
	lines = append(lines, fmt.Sprintf("- skills: %d", len(snap.Skills)))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: expand/collapse")
	lines = append(lines, "- p: +1 unit")
	lines = append(lines, "- c/space: toggle goal")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Skills"}
	lines := m.boardLines()
	if len(lines) == 0 {
		out = append(out, "(no skills yet, try `rpgl init`)")
		return strings.Join(out, "\n")
	}
	for i, bl := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, cursor+bl.text)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}
