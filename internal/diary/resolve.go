// Package diary turns commits into rows of per-day Markdown diary files.
//
// Resolve maps a date and a root directory to the file for that day. It does
// no I/O. RecordCommit makes sure a commit's row is on disk. The first commit
// of a day creates the file with its frontmatter and table header in one
// step. Every later commit appends exactly one line.
package diary

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/commit-diary/internal/errors"
	"github.com/Tiliavir/commit-diary/internal/timecalc"
)

const (
	fileExt  = ".md"
	category = "diary"
	section  = "commits"
)

// TableHeader is the column header and separator starting every diary table.
const TableHeader = "| FOLDER | TIME | COMMIT MESSAGE | REPOSITORY URL | BRANCH | COMMIT HASH |\n" +
	"|--------|------|----------------|----------------|--------|-------------|\n"

// Target is where a day's commits are written and what the file starts with.
type Target struct {
	FolderPath  string
	FilePath    string
	Frontmatter string
	TableHeader string
}

// Header returns the content written before the first row of a new file.
func (t Target) Header() string {
	return t.Frontmatter + "\n" + t.TableHeader
}

type frontmatter struct {
	Category string   `yaml:"category"`
	Section  string   `yaml:"section"`
	Tags     []string `yaml:"tags"`
	Date     string   `yaml:"date"`
}

// Resolve computes the diary target for the calendar day of date, in date's
// location. root must be an absolute path.
func Resolve(date time.Time, root string) (Target, error) {
	if root == "" {
		return Target{}, errors.NewConfigError("diary_root", nil, errors.New("is required"))
	}
	if !filepath.IsAbs(root) {
		return Target{}, errors.NewConfigError("diary_root", root, errors.New("must be an absolute path"))
	}

	folder := filepath.Join(filepath.Clean(root), strconv.Itoa(date.Year()), timecalc.MonthDirName(date))
	fm, err := renderFrontmatter(date)
	if err != nil {
		return Target{}, err
	}

	return Target{
		FolderPath:  folder,
		FilePath:    filepath.Join(folder, date.Format("2006-01-02")+fileExt),
		Frontmatter: fm,
		TableHeader: TableHeader,
	}, nil
}

// Tags returns the frontmatter tags for date. Week and weekday are both
// derived from the same value.
func Tags(date time.Time) []string {
	return []string{
		fmt.Sprintf("#datetime/week/%d", timecalc.ISOWeek(date)),
		"#datetime/days/" + timecalc.WeekdayName(date),
		"#category/" + category,
		"#section/" + section,
	}
}

func renderFrontmatter(date time.Time) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(frontmatter{
		Category: category,
		Section:  section,
		Tags:     Tags(date),
		Date:     date.Format("02/01/2006"),
	})
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		return "", fmt.Errorf("rendering frontmatter: %w", err)
	}

	buf.WriteString("---\n")
	return buf.String(), nil
}
