package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/commit-diary/internal/config"
	"github.com/Tiliavir/commit-diary/internal/errors"
	"github.com/Tiliavir/commit-diary/internal/gitrepo"
	"github.com/Tiliavir/commit-diary/internal/logger"
)

var (
	configPath string
	verbose    bool
)

// Replaced in tests.
var (
	now           = time.Now
	openInspector = func(path, remote string) (gitrepo.Inspector, error) {
		return gitrepo.Open(path, remote)
	}
)

var rootCmd = &cobra.Command{
	Use:   "commit-diary",
	Short: "Log every git commit into a dated Markdown diary",
	Long: `commit-diary is meant to run from a git post-commit hook. Each commit
becomes one row in <diary_root>/<YYYY>/<MM>-<Month>/<YYYY-MM-DD>.md, a
Markdown file with YAML frontmatter that any notes app can render.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/commit-diary/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print diagnostic logs to stderr")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
}

// setup loads the configuration and the diagnostic logger shared by all
// commands.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log, closeLog, err := logger.New(cmd.ErrOrStderr(), verbose, cfg.LogFile)
	if err != nil {
		return config.Config{}, nil, nil, errors.NewConfigError("log_file", cfg.LogFile, err)
	}
	return cfg, log, closeLog, nil
}

// parseDay returns the day named by value (YYYY-MM-DD) in loc, or today when
// value is empty.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return now().In(loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date value %q: %w", value, err)
	}
	return d, nil
}
