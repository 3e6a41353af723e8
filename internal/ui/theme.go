package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RPG-Life theme (CLI + TUI).
// Small on purpose: reusable styles and a few emojis.

const (
	IconHero    = "🧙"
	IconSkill   = "🎯"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "🎁"
	IconUndo    = "↩️"
	IconScroll  = "📜"
	IconNote    = "📝"
	IconClock   = "⏰"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cSky     = lipgloss.Color("39")  // light blue
	cPurple  = lipgloss.Color("141") // purple
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("LEVEL DOWN")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// GoalTypeText colors a goal type the way the tiers are named.
func GoalTypeText(goalType string) string {
	switch strings.ToUpper(strings.TrimSpace(goalType)) {
	case "DAILY":
		return Good.Render("daily")
	case "BLUE":
		return lipgloss.NewStyle().Bold(true).Foreground(cSky).Render("blue")
	case "YELLOW":
		return Gold.Render("yellow")
	case "RED":
		return Bad.Render("red")
	default:
		return Muted.Render(goalType)
	}
}

func RarityText(rarity string) string {
	r := strings.ToUpper(strings.TrimSpace(rarity))
	switch r {
	case "COMMON":
		return Muted.Render("common")
	case "UNCOMMON":
		return Good.Render("uncommon")
	case "RARE":
		return lipgloss.NewStyle().Bold(true).Foreground(cSky).Render("rare")
	case "UNIQUE":
		return lipgloss.NewStyle().Bold(true).Foreground(cPurple).Render("unique")
	case "LEGENDARY":
		return Gold.Render("legendary")
	default:
		return Muted.Render(strings.ToLower(r))
	}
}

func Checkbox(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// LevelChange renders a level transition badge, or "" when the level is unchanged.
func LevelChange(before, after int) string {
	switch {
	case after > before:
		return fmt.Sprintf("%s %d → %d", BadgeLevelUp, before, after)
	case after < before:
		return fmt.Sprintf("%s %d → %d", BadgeLevelDown, before, after)
	default:
		return ""
	}
}

// ProgressBar draws current/max as a bar of the given width.
func ProgressBar(current, max, width int) string {
	if width <= 0 {
		width = 20
	}
	if max <= 0 {
		max = 1
	}
	filled := current * width / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}
