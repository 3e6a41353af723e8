package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rpglife/internal/ui"
)

const Version = "0.1.0"

var (
	flagDBPath   string
	flagTimezone string
)

var rootCmd = &cobra.Command{
	Use:           "rpgl",
	Short:         "RPG-Life: level up your skills by logging real progress",
	Long:          "RPG-Life tracks skills, goals and a character that gain XP and levels as you log progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (default $RPGLIFE_DB_PATH or ~/.rpglife.db)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "tz", "", "IANA time zone for user days (default $RPGLIFE_TIMEZONE)")

	rootCmd.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newDayCmd(),
		newCharacterCmd(),
		newSkillCmd(),
		newProgressCmd(),
		newGoalCmd(),
		newNoteCmd(),
		newAchievementCmd(),
		newHistoryCmd(),
		newRewardsCmd(),
		newLootCmd(),
		newBoardCmd(),
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
