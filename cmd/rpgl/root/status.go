package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the character, skills and goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Character(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap)
			}

			c := snap.Character
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHero, c.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", ledgerLine(c.Level, c.CurrentXP, c.XPToNextLevel)))
			fmt.Fprintln(out, ui.LabelValue("Daily reset", c.DailyResetTime))
			fmt.Fprintln(out, "")

			if len(c.Skills) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No skills yet. Run `rpgl init` or `rpgl skill add`."))
				return nil
			}
			for _, sk := range c.Skills {
				printSkill(out, sk)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full character snapshot as JSON")
	return cmd
}
