package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/commit-diary/internal/config"
	"github.com/Tiliavir/commit-diary/internal/diary"
)

var pathDate string

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the diary file path for a day",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

func init() {
	pathCmd.Flags().StringVar(&pathDate, "date", "", "Day to resolve (YYYY-MM-DD); defaults to today")
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	day, err := parseDay(pathDate, cfg.Location())
	if err != nil {
		return err
	}
	target, err := diary.Resolve(day, cfg.DiaryRoot)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), target.FilePath)
	return nil
}
