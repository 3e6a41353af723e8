package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/engine"
	"rpglife/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalEditCmd(),
		newGoalToggleCmd(),
		newGoalRmCmd(),
		newGoalDupCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var skillID int64
	var goalType string
	var reward int

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a goal to a skill",
		Args:  textArg("description"),
		RunE: func(cmd *cobra.Command, args []string) error {
			gt, err := engine.ParseGoalType(goalType)
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.GoalInput{SkillID: skillID, Description: args[0], GoalType: gt}
			if cmd.Flags().Changed("xp") {
				in.XPReward = &reward
			}
			snap, err := svc.CreateGoal(ctx, in)
			if err != nil {
				return err
			}
			sk := snap.Character.Skill(skillID)
			if sk == nil || len(sk.Goals) == 0 {
				return nil
			}
			g := sk.Goals[len(sk.Goals)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n", ui.Good.Render(ui.IconPlus+" Added goal"), g.ID, g.Description, ui.GoalTypeText(string(g.GoalType)))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&skillID, "skill", "s", 0, "Skill ID")
	cmd.Flags().StringVarP(&goalType, "type", "t", "daily", "Goal type (daily|blue|yellow|red)")
	cmd.Flags().IntVarP(&reward, "xp", "x", engine.DefaultGoalReward, "XP reward")
	_ = cmd.MarkFlagRequired("skill")
	return cmd
}

func newGoalEditCmd() *cobra.Command {
	var desc, goalType string
	var reward int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a goal's description, type or reward",
		Long: `Change a goal's description, type or reward.

XP already granted by a completed goal is not adjusted when its reward changes.`,
		Args: idArgs("goal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in engine.GoalUpdate
			if cmd.Flags().Changed("description") {
				in.Description = &desc
			}
			if cmd.Flags().Changed("type") {
				gt, err := engine.ParseGoalType(goalType)
				if err != nil {
					return err
				}
				in.GoalType = &gt
			}
			if cmd.Flags().Changed("xp") {
				in.XPReward = &reward
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.UpdateGoal(ctx, parseID(args[0]), in)
			if err != nil {
				return err
			}
			g := p.Goal
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s %s\n", ui.Checkbox(g.IsCompleted), g.ID, g.Description,
				ui.GoalTypeText(string(g.GoalType)), ui.Muted.Render(fmt.Sprintf("%d XP", g.XPReward)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&goalType, "type", "t", "", "New goal type")
	cmd.Flags().IntVarP(&reward, "xp", "x", 0, "New XP reward")
	return cmd
}

func newGoalToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Complete a goal, or revert it if already completed",
		Long: `Complete a goal, or revert it if it is already completed.

Daily goals are completed per user day; other goals stay completed until reverted.
Reverting removes the XP the completion granted and may lower levels.`,
		Args: idArgs("goal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ToggleGoal(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Completed {
				fmt.Fprintf(out, "%s #%s\n", ui.Good.Render(ui.IconDone+" Completed goal"), args[0])
			} else {
				fmt.Fprintf(out, "%s #%s\n", ui.Warn.Render(ui.IconUndo+" Reverted goal"), args[0])
			}
			if res.Outcome != nil {
				printOutcome(out, *res.Outcome, res.Rewards)
			}
			return nil
		},
	}
}

func newGoalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  idArgs("goal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.DeleteGoal(ctx, parseID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%s\n", ui.Warn.Render("Deleted goal"), args[0])
			return nil
		},
	}
}

func newGoalDupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dup <id>",
		Short: "Duplicate a goal (uncompleted)",
		Args:  idArgs("goal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.DuplicateGoal(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			printSkill(cmd.OutOrStdout(), p.Skill)
			return nil
		},
	}
}
