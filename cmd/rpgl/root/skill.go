package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/engine"
	"rpglife/internal/ui"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage skills",
	}
	cmd.AddCommand(newSkillAddCmd(), newSkillEditCmd(), newSkillRmCmd(), newSkillListCmd())
	return cmd
}

func newSkillAddCmd() *cobra.Command {
	var unit string
	var xp int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args:  textArg("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.SkillInput{Name: args[0], UnitDescription: unit}
			if cmd.Flags().Changed("xp") {
				in.XPPerUnit = &xp
			}
			snap, err := svc.CreateSkill(ctx, in)
			if err != nil {
				return err
			}
			sk := snap.Character.Skills[len(snap.Character.Skills)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added skill"), sk.ID, sk.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit of progress, e.g. page (default "+engine.DefaultUnitDescription+")")
	cmd.Flags().IntVarP(&xp, "xp", "x", engine.DefaultXPPerUnit, "XP per unit")
	return cmd
}

func newSkillEditCmd() *cobra.Command {
	var name, unit string
	var xp int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a skill's name, unit or XP per unit",
		Args:  idArgs("skill"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var in engine.SkillUpdate
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("unit") {
				in.UnitDescription = &unit
			}
			if cmd.Flags().Changed("xp") {
				in.XPPerUnit = &xp
			}
			id := parseID(args[0])
			snap, err := svc.UpdateSkill(ctx, id, in)
			if err != nil {
				return err
			}
			if sk := snap.Character.Skill(id); sk != nil {
				printSkill(cmd.OutOrStdout(), *sk)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "New unit description")
	cmd.Flags().IntVarP(&xp, "xp", "x", 0, "New XP per unit")
	return cmd
}

func newSkillRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a skill with its goals, notes and achievements",
		Args:  idArgs("skill"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseID(args[0])
			if _, err := svc.DeleteSkill(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Deleted skill"), id)
			return nil
		},
	}
}

func newSkillListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List skills with their goals and notes",
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
			out := cmd.OutOrStdout()
			if len(snap.Character.Skills) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no skills)"))
				return nil
			}
			for _, sk := range snap.Character.Skills {
				printSkill(out, sk)
				for _, n := range sk.Notes {
					fmt.Fprintf(out, "  %s #%d %s %s\n", ui.IconNote, n.ID, n.Text, ui.Muted.Render(n.Date.Local().Format("2006-01-02")))
				}
			}
			return nil
		},
	}
}

func newProgressCmd() *cobra.Command {
	var units int

	cmd := &cobra.Command{
		Use:   "progress <skill-id>",
		Short: "Log units of progress on a skill",
		Args:  idArgs("skill"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AddProgress(ctx, parseID(args[0]), units)
			if err != nil {
				return err
			}
			sk := res.Patch.Skill
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d %s on %s\n", ui.Good.Render(ui.IconBolt+" Logged"), units, sk.UnitDescription, sk.Name)
			printOutcome(out, res.Outcome, res.Rewards)
			fmt.Fprintln(out, ui.LabelValue("Skill", ledgerLine(sk.Level, sk.CurrentXP, sk.XPToNextLevel)))
			c := res.Patch.Character
			fmt.Fprintln(out, ui.LabelValue("Character", ledgerLine(c.Level, c.CurrentXP, c.XPToNextLevel)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&units, "units", "n", 1, "Units of progress")
	return cmd
}
