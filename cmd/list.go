package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/commit-diary/internal/diary"
	"github.com/Tiliavir/commit-diary/internal/model"
	"github.com/Tiliavir/commit-diary/internal/storage"
	"github.com/Tiliavir/commit-diary/internal/timecalc"
)

var listDate string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the commits logged on a day",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list (YYYY-MM-DD); defaults to today")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	day, err := parseDay(listDate, cfg.Location())
	if err != nil {
		return err
	}
	target, err := diary.Resolve(day, cfg.DiaryRoot)
	if err != nil {
		return err
	}

	lines, err := storage.ReadTableLines(target.FilePath)
	if err != nil {
		return err
	}

	var rows []model.Row
	for _, line := range lines {
		row, err := diary.ParseRow(line)
		if err != nil {
			log.Warn("skipping malformed diary row", "path", target.FilePath, "err", err)
			continue
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		if timecalc.SameDay(day, now().In(cfg.Location())) {
			fmt.Fprintln(out, "No commits logged today.")
		} else {
			fmt.Fprintf(out, "No commits logged on %s.\n", day.Format("2006-01-02"))
		}
		return nil
	}

	fmt.Fprintln(out, day.Format("2006-01-02"))
	printRows(out, rows)
	return nil
}

// printRows prints one line per commit: time, folder, branch, message, hash.
func printRows(w io.Writer, rows []model.Row) {
	for _, r := range rows {
		branch := ""
		if r.Branch != "" {
			branch = " [" + r.Branch + "]"
		}
		fmt.Fprintf(w, "%s  %s%s  %s  (%s)\n", r.Time, orPlaceholder(r.Folder), branch, r.Message, shortHash(r.Hash))
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return diary.Placeholder
	}
	return s
}
