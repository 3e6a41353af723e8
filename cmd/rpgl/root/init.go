package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rpglife/internal/seed"
	"rpglife/internal/ui"
)

func newInitCmd() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create the character with starter skills, achievements and loot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if seedPath == "" {
				seedPath = a.cfg.SeedPath
			}
			var sd seed.Seed
			if seedPath != "" {
				sd, err = seed.Load(seedPath)
			} else {
				sd, err = seed.Default()
			}
			if err != nil {
				return err
			}
			if err := sd.Validate(); err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			name := "Adventurer"
			if len(args) == 1 {
				name = args[0]
			}
			snap, err := a.svc.InitCharacter(ctx, name, sd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHero, "Welcome, "+snap.Character.Name))
			for _, sk := range snap.Character.Skills {
				printSkill(cmd.OutOrStdout(), sk)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML seed file (default $RPGLIFE_SEED_PATH or the built-in seed)")
	return cmd
}
