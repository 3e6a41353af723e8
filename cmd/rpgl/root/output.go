package root

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"rpglife/internal/engine"
	"rpglife/internal/ui"
)

// idArgs requires exactly one integer argument named what.
func idArgs(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%s id is required", what)
		}
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return fmt.Errorf("%s id must be an integer", what)
		}
		return nil
	}
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

func textArg(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ledgerLine(level, xp, next int) string {
	return fmt.Sprintf("lvl %d %s %d/%d XP", level, ui.ProgressBar(xp, next, 20), xp, next)
}

// printOutcome reports the XP delta, level changes and rewards of one event.
func printOutcome(w io.Writer, out engine.Outcome, rewards []engine.RewardSnapshot) {
	sign := ui.Good
	if out.Delta < 0 {
		sign = ui.Warn
	}
	fmt.Fprintln(w, ui.LabelValue("XP", sign.Render(fmt.Sprintf("%+d", out.Delta))))
	if s := ui.LevelChange(out.Skill.Before.Level, out.Skill.After.Level); s != "" {
		fmt.Fprintln(w, ui.LabelValue("Skill", s))
	}
	if s := ui.LevelChange(out.Character.Before.Level, out.Character.After.Level); s != "" {
		fmt.Fprintln(w, ui.LabelValue("Character", s))
	}
	for _, rw := range rewards {
		fmt.Fprintf(w, "%s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement"), rw.Description, ui.Muted.Render("("+rw.SourceName+")"))
	}
}

func printSkill(w io.Writer, sk engine.SkillSnapshot) {
	fmt.Fprintf(w, "%s %s %s\n", ui.H2.Render(fmt.Sprintf("%s #%d %s", ui.IconSkill, sk.ID, sk.Name)),
		ledgerLine(sk.Level, sk.CurrentXP, sk.XPToNextLevel),
		ui.Muted.Render(fmt.Sprintf("(%d XP per %s)", sk.XPPerUnit, sk.UnitDescription)))
	for _, g := range sk.Goals {
		fmt.Fprintf(w, "  %s #%d %s %s %s\n", ui.Checkbox(g.IsCompleted), g.ID, g.Description,
			ui.GoalTypeText(string(g.GoalType)), ui.Muted.Render(fmt.Sprintf("%d XP", g.XPReward)))
	}
}
