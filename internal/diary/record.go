package diary

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/commit-diary/internal/config"
	"github.com/Tiliavir/commit-diary/internal/logger"
	"github.com/Tiliavir/commit-diary/internal/model"
	"github.com/Tiliavir/commit-diary/internal/storage"
)

// Result describes what RecordCommit did.
type Result struct {
	// Path is the diary file the row went to. Empty when skipped.
	Path string
	// Created is true when this call created the file.
	Created bool
	// Row is the rendered table line.
	Row string
	// Skipped is true when nothing was written; SkipReason says why.
	Skipped    bool
	SkipReason string
}

// RecordCommit writes rec as one row of the diary file for its day.
//
// cfg is validated before any filesystem access. If the day's file does not
// exist it is created with frontmatter, table header and the row in a single
// step; otherwise the row is appended as one line. Running twice for the same
// commit appends two rows. A nil log discards diagnostics.
func RecordCommit(cfg config.Config, rec model.CommitRecord, log *slog.Logger) (Result, error) {
	if log == nil {
		log = logger.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if !cfg.Enabled {
		log.Debug("recording disabled by configuration")
		return Result{Skipped: true, SkipReason: "disabled by configuration"}, nil
	}
	// Commits made inside the diary would log themselves into it.
	if rec.WorkDir != "" && within(cfg.DiaryRoot, rec.WorkDir) {
		log.Info("commit belongs to the diary repository", "work_dir", rec.WorkDir)
		return Result{Skipped: true, SkipReason: "repository lies inside the diary root"}, nil
	}
	if rec.WorkDir != "" && within(rec.WorkDir, cfg.DiaryRoot) {
		log.Warn("repository contains the diary root, its commits are logged into its own tree",
			"work_dir", rec.WorkDir, "diary_root", cfg.DiaryRoot)
	}

	rec.Timestamp = rec.Timestamp.In(cfg.Location())
	target, err := Resolve(rec.Timestamp, cfg.DiaryRoot)
	if err != nil {
		return Result{}, err
	}
	row := FormatRow(rec, cfg.MessageMaxLength)
	log = log.With("path", target.FilePath, "hash", rec.Hash)

	if err := storage.EnsureDir(target.FolderPath); err != nil {
		return Result{}, err
	}

	exists, err := storage.Exists(target.FilePath)
	if err != nil {
		return Result{}, err
	}

	res := Result{Path: target.FilePath, Row: row}
	if exists {
		log.Debug("diary file exists, appending row")
		if err := storage.AppendLine(target.FilePath, row); err != nil {
			return Result{}, err
		}
		return res, nil
	}

	log.Debug("diary file missing, creating it")
	if err := storage.CreateExclusive(target.FilePath, []byte(target.Header()+row+"\n")); err != nil {
		return Result{}, err
	}
	res.Created = true
	return res, nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
