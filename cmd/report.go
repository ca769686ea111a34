package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/commit-diary/internal/diary"
	"github.com/Tiliavir/commit-diary/internal/storage"
	"github.com/Tiliavir/commit-diary/internal/timecalc"
)

var (
	reportFormat string
	reportDate   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show commits per repository for a week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any day of the week to report (YYYY-MM-DD); defaults to today")
}

type weekReport struct {
	Week    string          `json:"week"`
	Folders []folderSummary `json:"folders"`
	Total   int             `json:"total_commits"`
}

type folderSummary struct {
	Folder  string `json:"folder"`
	Commits int    `json:"commits"`
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	day, err := parseDay(reportDate, cfg.Location())
	if err != nil {
		return err
	}
	from, to := timecalc.WeekRange(day)

	// Aggregate by repository folder.
	totals := map[string]int{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		target, err := diary.Resolve(d, cfg.DiaryRoot)
		if err != nil {
			return err
		}
		lines, err := storage.ReadTableLines(target.FilePath)
		if err != nil {
			return err
		}
		for _, line := range lines {
			row, err := diary.ParseRow(line)
			if err != nil {
				log.Warn("skipping malformed diary row", "path", target.FilePath, "err", err)
				continue
			}
			totals[orPlaceholder(row.Folder)]++
		}
	}

	report := buildReport(timecalc.ISOWeekLabel(day), totals)
	return printReport(cmd.OutOrStdout(), report, reportFormat)
}

func buildReport(week string, totals map[string]int) weekReport {
	r := weekReport{Week: week, Folders: []folderSummary{}}
	for folder, n := range totals {
		r.Folders = append(r.Folders, folderSummary{Folder: folder, Commits: n})
		r.Total += n
	}
	sort.Slice(r.Folders, func(i, j int) bool { return r.Folders[i].Folder < r.Folders[j].Folder })
	return r
}

func printReport(w io.Writer, r weekReport, format string) error {
	switch format {
	case "csv":
		fmt.Fprintln(w, "folder,commits")
		for _, f := range r.Folders {
			fmt.Fprintf(w, "%s,%d\n", csvEscape(f.Folder), f.Commits)
		}
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md":
		fmt.Fprintf(w, "Week %s\n", r.Week)
		fmt.Fprintln(w, "--------------------------------")
		for _, f := range r.Folders {
			fmt.Fprintf(w, "%-24s%d\n", f.Folder, f.Commits)
		}
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintf(w, "%-24s%d\n", "Total", r.Total)
	default:
		return fmt.Errorf("unknown --format %q: want md, csv or json", format)
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
