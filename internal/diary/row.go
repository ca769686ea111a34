package diary

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/Tiliavir/commit-diary/internal/model"
)

// Placeholder fills cells whose value is absent so columns stay aligned.
const Placeholder = "N/A"

// literalPlaceholder is how a value that really is "N/A" is written, so it
// does not read back as absent.
const literalPlaceholder = `N\/A`

const cellCount = 6

// FormatRow renders rec as a single Markdown table line with six cells:
// folder, time, message, repository URL, branch and hash.
//
// Escaping rules, applied to every cell:
//   - runs of whitespace, newlines included, become one space
//   - "\" becomes "\\" and "|" becomes "\|"
//   - an empty value becomes Placeholder, a value equal to it becomes "N\/A"
//
// The message is cut to maxLen characters (grapheme clusters) before
// escaping, with no truncation marker. maxLen <= 0 disables the cut.
func FormatRow(rec model.CommitRecord, maxLen int) string {
	folder := ""
	if rec.WorkDir != "" {
		folder = filepath.Base(filepath.Clean(rec.WorkDir))
	}

	cells := [cellCount]string{
		folder,
		rec.Timestamp.Format("15:04:05"),
		truncateMessage(collapseSpace(rec.Message), maxLen),
		rec.RepositoryURL,
		rec.Branch,
		rec.Hash,
	}

	var b strings.Builder
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(escapeCell(c))
		b.WriteString(" |")
	}
	return b.String()
}

// Truncate returns s cut to at most n grapheme clusters, so multi-byte
// characters and combined sequences are never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}

// truncateMessage cuts s to n characters not counting a space at the cut,
// which the cell would lose to trimming.
func truncateMessage(s string, n int) string {
	cut := Truncate(s, n)
	if n > 0 && strings.HasSuffix(cut, " ") {
		cut = Truncate(s, n+1)
	}
	return cut
}

// ParseRow decodes a line produced by FormatRow. Placeholder cells decode to
// empty values.
func ParseRow(line string) (model.Row, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
		return model.Row{}, fmt.Errorf("not a table row: %q", line)
	}

	var (
		cells   []string
		cur     strings.Builder
		escaped bool
	)
	for _, r := range line[1:] {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if len(cells) != cellCount {
		return model.Row{}, fmt.Errorf("table row has %d cells, want %d: %q", len(cells), cellCount, line)
	}
	for i, c := range cells {
		cells[i] = decodeCell(c)
	}

	return model.Row{
		Folder:        cells[0],
		Time:          cells[1],
		Message:       cells[2],
		RepositoryURL: cells[3],
		Branch:        cells[4],
		Hash:          cells[5],
	}, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var cellEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`)

func escapeCell(s string) string {
	s = collapseSpace(s)
	switch s {
	case "":
		return Placeholder
	case Placeholder:
		return literalPlaceholder
	}
	return cellEscaper.Replace(s)
}

func decodeCell(raw string) string {
	if raw == Placeholder {
		return ""
	}
	var b strings.Builder
	escaped := false
	for _, r := range raw {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
