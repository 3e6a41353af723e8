package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/ui"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage skill notes",
	}
	cmd.AddCommand(newNoteAddCmd(), newNoteEditCmd(), newNoteRmCmd())
	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var skillID int64

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a note to a skill",
		Args:  textArg("text"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.AddNote(ctx, skillID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconNote+" Noted on"), p.Skill.Name)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&skillID, "skill", "s", 0, "Skill ID")
	_ = cmd.MarkFlagRequired("skill")
	return cmd
}

func newNoteEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a note's text",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("note id and text are required")
			}
			return idArgs("note")(cmd, args[:1])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.UpdateNote(ctx, parseID(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%s on %s\n", ui.Good.Render(ui.IconNote+" Updated note"), args[0], p.Skill.Name)
			return nil
		},
	}
}

func newNoteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  idArgs("note"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.DeleteNote(ctx, parseID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%s\n", ui.Warn.Render("Deleted note"), args[0])
			return nil
		},
	}
}
