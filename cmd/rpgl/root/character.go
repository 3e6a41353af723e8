package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rpglife/internal/ui"
)

func newCharacterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage the character",
	}
	cmd.AddCommand(newRenameCmd(), newResetTimeCmd())
	return cmd
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the character",
		Args:  textArg("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.RenameCharacter(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" Renamed to "+snap.Character.Name))
			return nil
		},
	}
}

func newResetTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-time <HH:MM>",
		Short: "Set the local time at which daily goals reset",
		Args:  textArg("reset time"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.SetDailyResetTime(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(ui.IconClock+" Daily reset", snap.Character.DailyResetTime))
			return nil
		},
	}
}

func newDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Show the current user day and the next reset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			d, err := svc.CurrentDay(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Day", d.Day))
			fmt.Fprintln(out, ui.LabelValue("Reset time", d.ResetTime))
			fmt.Fprintln(out, ui.LabelValue("Next reset", d.NextReset.Format(time.DateTime)+" "+ui.Muted.Render("(in "+time.Until(d.NextReset).Round(time.Minute).String()+")")))
			return nil
		},
	}
}
