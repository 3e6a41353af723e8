package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/engine"
	"rpglife/internal/ui"
)

func newAchievementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievement",
		Aliases: []string{"ach"},
		Short:   "Manage level achievements",
	}
	cmd.AddCommand(newAchievementAddCmd(), newAchievementRmCmd(), newAchievementListCmd())
	return cmd
}

func newAchievementAddCmd() *cobra.Command {
	var skillID int64
	var level int

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add an achievement for the character, or for a skill with --skill",
		Args:  textArg("description"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.AchievementInput{RequiredLevel: level, Description: args[0]}
			if cmd.Flags().Changed("skill") {
				in.SkillID = &skillID
			}
			if _, err := svc.CreateAchievement(ctx, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Lvl %d: %s\n", ui.Good.Render(ui.IconTrophy+" Added achievement"), level, args[0])
			return nil
		},
	}

	cmd.Flags().Int64VarP(&skillID, "skill", "s", 0, "Skill ID (default: the character)")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Required level")
	_ = cmd.MarkFlagRequired("level")
	return cmd
}

func newAchievementRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an achievement",
		Args:  idArgs("achievement"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.DeleteAchievement(ctx, parseID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%s\n", ui.Warn.Render("Deleted achievement"), args[0])
			return nil
		},
	}
}

func newAchievementListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List achievements",
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
			list, err := svc.ListAchievements(ctx)
			if err != nil {
				return err
			}
			names := map[int64]string{}
			for _, sk := range snap.Character.Skills {
				names[sk.ID] = sk.Name
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no achievements)"))
				return nil
			}
			for _, a := range list {
				owner := characterRewardLabel
				if a.OwnerSkill != nil {
					owner = names[*a.OwnerSkill]
				}
				state := ui.Muted.Render("locked")
				if a.ClaimedDate != nil {
					state = ui.Gold.Render("claimed " + a.ClaimedDate.Local().Format("2006-01-02"))
				}
				fmt.Fprintf(out, "%s #%d Lvl %d: %s %s %s\n", ui.IconTrophy, a.ID, a.RequiredLevel, a.Description, ui.Muted.Render("("+owner+")"), state)
			}
			return nil
		},
	}
}

const characterRewardLabel = "character"
