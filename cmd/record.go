package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/commit-diary/internal/diary"
	"github.com/Tiliavir/commit-diary/internal/errors"
)

var recordCmd = &cobra.Command{
	Use:   "record [repository]",
	Short: "Log the latest commit of a repository (run from post-commit)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) == 1 {
		repoPath = args[0]
	}

	cfg, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	out := cmd.OutOrStdout()
	if !cfg.Enabled {
		fmt.Fprintln(out, "commit-diary is disabled, commit not logged.")
		return nil
	}

	inspector, err := openInspector(repoPath, cfg.Remote)
	if err != nil {
		log.Error("opening repository failed", "path", repoPath, "err", err)
		return err
	}
	rec, err := inspector.LastCommit()
	if errors.Is(err, errors.ErrNoCommits) {
		fmt.Fprintln(out, "No commits yet, nothing to log.")
		return nil
	}
	if err != nil {
		log.Error("reading commit failed", "path", repoPath, "err", err)
		return err
	}

	res, err := diary.RecordCommit(cfg, rec, log)
	if err != nil {
		log.Error("recording commit failed", "hash", rec.Hash, "err", err)
		return err
	}
	if res.Skipped {
		fmt.Fprintf(out, "Commit not logged: %s.\n", res.SkipReason)
		return nil
	}

	fmt.Fprintf(out, "Commit %s logged in %s\n", shortHash(rec.Hash), res.Path)
	return nil
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
