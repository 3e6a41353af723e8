package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/engine"
	"rpglife/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var skillID int64
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent progress and goal history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var filter *int64
			if cmd.Flags().Changed("skill") {
				filter = &skillID
			}
			entries, err := svc.GoalHistory(ctx, filter, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no history)"))
				return nil
			}
			for _, e := range entries {
				icon := ui.IconBolt
				switch e.Action {
				case engine.ActionCompleted:
					icon = ui.IconDone
				case engine.ActionReverted:
					icon = ui.IconUndo
				}
				amount := ui.Good.Render(fmt.Sprintf("+%d XP", e.XPAmount))
				if e.Action == engine.ActionReverted {
					amount = ui.Warn.Render(fmt.Sprintf("-%d XP", e.XPAmount))
				}
				kind := ""
				if e.GoalType != nil {
					kind = " " + ui.GoalTypeText(string(*e.GoalType))
				}
				fmt.Fprintf(out, "%s %s %s%s %s %s\n",
					ui.Muted.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
					icon, e.GoalDescription, kind, ui.Muted.Render("["+e.SkillName+"]"), amount)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&skillID, "skill", "s", 0, "Only show one skill")
	cmd.Flags().IntVarP(&limit, "limit", "n", engine.DefaultHistoryLimit, "Maximum number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newRewardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rewards",
		Short: "List received rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rewards, err := svc.Rewards(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rewards) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no rewards yet)"))
				return nil
			}
			for _, rw := range rewards {
				rarity := ""
				if rw.Rarity != nil {
					rarity = " " + ui.RarityText(string(*rw.Rarity))
				}
				fmt.Fprintf(out, "%s %s%s %s %s\n", ui.IconTrophy, rw.Description, rarity,
					ui.Muted.Render("("+rw.SourceName+")"),
					ui.Muted.Render(rw.ReceivedDate.Local().Format("2006-01-02")))
			}
			return nil
		},
	}
}
