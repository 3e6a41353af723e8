package root

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rpglife/internal/engine"
	"rpglife/internal/ui"
)

func newLootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loot",
		Short: "Manage lootbox items and chances",
	}
	cmd.AddCommand(
		newLootAddCmd(),
		newLootEditCmd(),
		newLootRmCmd(),
		newLootListCmd(),
		newLootStatusCmd(),
	)
	return cmd
}

func newLootAddCmd() *cobra.Command {
	var rarity, chance string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a loot item; other chances are rescaled around its chance",
		Args:  textArg("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := engine.ParseRarity(rarity)
			if err != nil {
				return err
			}
			c, err := decimal.NewFromString(chance)
			if err != nil {
				return fmt.Errorf("invalid chance %q", chance)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.AddLootItem(ctx, args[0], r, c)
			if err != nil {
				return err
			}
			printLoot(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rarity, "rarity", "r", "common", "Rarity (common|uncommon|rare|unique|legendary)")
	cmd.Flags().StringVarP(&chance, "chance", "c", "0", "Chance in percent, 0-100")
	return cmd
}

func newLootEditCmd() *cobra.Command {
	var name, rarity, chance string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a loot item's name, rarity or chance",
		Args:  idArgs("loot item"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in engine.LootUpdate
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("rarity") {
				r, err := engine.ParseRarity(rarity)
				if err != nil {
					return err
				}
				in.Rarity = &r
			}
			if cmd.Flags().Changed("chance") {
				c, err := decimal.NewFromString(chance)
				if err != nil {
					return fmt.Errorf("invalid chance %q", chance)
				}
				in.Chance = &c
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.UpdateLootItem(ctx, parseID(args[0]), in)
			if err != nil {
				return err
			}
			printLoot(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&rarity, "rarity", "r", "", "New rarity")
	cmd.Flags().StringVarP(&chance, "chance", "c", "", "New chance in percent")
	return cmd
}

func newLootRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a loot item",
		Args:  idArgs("loot item"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.DeleteLootItem(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			printLoot(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newLootListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loot items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.ListLootItems(ctx)
			if err != nil {
				return err
			}
			printLoot(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newLootStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress towards today's lootbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.LootboxStatus(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBox, "Lootbox"))
			fmt.Fprintln(out, ui.LabelValue("Day", st.Day))
			fmt.Fprintln(out, ui.LabelValue("Dailies", fmt.Sprintf("%s %d/%d",
				ui.ProgressBar(st.CompletedDailies, st.RequiredDailies, 10), st.CompletedDailies, st.RequiredDailies)))
			fmt.Fprintln(out, ui.LabelValue("Items left", st.AvailableItems))
			if err := st.Err(); err != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconInfo+" "+err.Error()))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconBox+" Ready to open"))
			return nil
		},
	}
}

func printLoot(w io.Writer, items []engine.LootItemSnapshot) {
	if len(items) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("(no loot items)"))
		return
	}
	for _, it := range items {
		state := fmt.Sprintf("%s%%", it.BaseChance.StringFixed(2))
		if it.ReceivedDate != nil {
			state = ui.Gold.Render("received " + it.ReceivedDate.Local().Format("2006-01-02"))
		}
		fmt.Fprintf(w, "%s #%d %s %s %s\n", ui.IconBox, it.ID, it.Name, ui.RarityText(string(it.Rarity)), state)
	}
}
