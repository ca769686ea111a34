package diary_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/commit-diary/internal/diary"
	"github.com/Tiliavir/commit-diary/internal/model"
)

// splitCells splits a row on unescaped pipes, dropping the empty text before
// the first and after the last separator.
func splitCells(t *testing.T, row string) []string {
	t.Helper()
	require.NotContains(t, row, "\n")
	require.True(t, strings.HasPrefix(row, "| "))
	require.True(t, strings.HasSuffix(row, " |"))

	var (
		cells   []string
		cur     strings.Builder
		escaped bool
	)
	for _, r := range row[1:] {
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
	return cells
}

func sampleRecord() model.CommitRecord {
	return model.CommitRecord{
		Timestamp:     time.Date(2025, 3, 7, 14, 5, 33, 0, time.UTC),
		Message:       "fix: bug",
		RepositoryURL: "git@host:repo.git",
		Branch:        "main",
		Hash:          "abc123",
		WorkDir:       "/src/app",
	}
}

func TestFormatRowScenario(t *testing.T) {
	row := diary.FormatRow(sampleRecord(), 120)
	assert.Equal(t, "| app | 14:05:33 | fix: bug | git@host:repo.git | main | abc123 |", row)
}

func TestFormatRowCellIntegrity(t *testing.T) {
	messages := []string{
		"feat: a | b | c",
		"subject line\n\nbody line one\nbody line two",
		"windows\r\nline endings\tand tabs",
		strings.Repeat("x|", 150),
		`trailing backslash \`,
		`escaped already \| here`,
	}
	for _, msg := range messages {
		rec := sampleRecord()
		rec.Message = msg

		row := diary.FormatRow(rec, 120)
		cells := splitCells(t, row)
		assert.Len(t, cells, 6, "row %q", row)
		assert.NotContains(t, row, "\r")

		parsed, err := diary.ParseRow(row)
		require.NoError(t, err, "row %q", row)
		assert.Equal(t, "abc123", parsed.Hash)
		assert.Equal(t, "main", parsed.Branch)
	}
}

func TestFormatRowEscapesOtherCells(t *testing.T) {
	rec := sampleRecord()
	rec.Branch = "feature|x"
	rec.RepositoryURL = "https://host/a\nb"

	cells := splitCells(t, diary.FormatRow(rec, 120))
	require.Len(t, cells, 6)
	assert.Equal(t, `feature\|x`, cells[4])
	assert.Equal(t, "https://host/a b", cells[3])
}

func TestFormatRowPlaceholders(t *testing.T) {
	rec := sampleRecord()
	rec.Branch = ""
	rec.RepositoryURL = ""
	rec.WorkDir = ""

	row := diary.FormatRow(rec, 120)
	cells := splitCells(t, row)
	require.Len(t, cells, 6)
	assert.Equal(t, diary.Placeholder, cells[0])
	assert.Equal(t, diary.Placeholder, cells[3])
	assert.Equal(t, diary.Placeholder, cells[4])
	assert.Equal(t, "| N/A | 14:05:33 | fix: bug | N/A | N/A | abc123 |", row)
}

func TestFormatRowWhitespaceOnlyIsAbsent(t *testing.T) {
	rec := sampleRecord()
	rec.Branch = " \n "
	rec.Message = "\n\n"

	cells := splitCells(t, diary.FormatRow(rec, 120))
	assert.Equal(t, diary.Placeholder, cells[2])
	assert.Equal(t, diary.Placeholder, cells[4])
}

func TestFormatRowLongMessage(t *testing.T) {
	rec := sampleRecord()
	rec.Message = strings.Repeat("a", 200)

	cells := splitCells(t, diary.FormatRow(rec, 120))
	require.Len(t, cells, 6)
	assert.Equal(t, strings.Repeat("a", 120), cells[2])
}

func TestFormatRowLongMessageCutAtSpace(t *testing.T) {
	rec := sampleRecord()
	rec.Message = strings.Repeat("m", 119) + " " + strings.Repeat("z", 80)

	cells := splitCells(t, diary.FormatRow(rec, 120))
	require.Len(t, cells, 6)
	assert.Equal(t, strings.Repeat("m", 119)+" z", cells[2])
	assert.Equal(t, 120, uniseg.GraphemeClusterCount(cells[2]))
}

func TestFormatRowCustomLimit(t *testing.T) {
	rec := sampleRecord()
	rec.Message = "0123456789"

	cells := splitCells(t, diary.FormatRow(rec, 4))
	assert.Equal(t, "0123", cells[2])
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trunc"},
		{"héllo wörld", 7, "héllo w"},
		{"日本語のテキスト", 3, "日本語"},
		// A flag and a family emoji are single characters each.
		{"\U0001F1E9\U0001F1EA\U0001F1EB\U0001F1F7\U0001F1EE\U0001F1F9", 2, "\U0001F1E9\U0001F1EA\U0001F1EB\U0001F1F7"},
		{"\U0001F468\u200D\U0001F469\u200D\U0001F467ab", 2, "\U0001F468\u200D\U0001F469\u200D\U0001F467a"},
		// e + combining acute stays together.
		{"e\u0301e\u0301e\u0301", 2, "e\u0301e\u0301"},
		{"unlimited", 0, "unlimited"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, diary.Truncate(tt.in, tt.n), "Truncate(%q, %d)", tt.in, tt.n)
	}
}

func TestParseRowRoundTrip(t *testing.T) {
	rec := sampleRecord()
	rec.Message = `pipes | and \ backslashes`

	row, err := diary.ParseRow(diary.FormatRow(rec, 120))
	require.NoError(t, err)

	assert.Equal(t, model.Row{
		Folder:        "app",
		Time:          "14:05:33",
		Message:       `pipes | and \ backslashes`,
		RepositoryURL: "git@host:repo.git",
		Branch:        "main",
		Hash:          "abc123",
	}, row)
}

func TestParseRowPlaceholdersDecodeEmpty(t *testing.T) {
	row, err := diary.ParseRow("| N/A | 10:00:00 | msg | N/A | N/A | abc |")
	require.NoError(t, err)
	assert.Empty(t, row.Folder)
	assert.Empty(t, row.RepositoryURL)
	assert.Empty(t, row.Branch)
}

func TestFormatRowLiteralPlaceholderValue(t *testing.T) {
	rec := sampleRecord()
	rec.Message = "N/A"
	rec.Branch = " N/A "

	row := diary.FormatRow(rec, 120)
	cells := splitCells(t, row)
	require.Len(t, cells, 6)
	assert.Equal(t, `N\/A`, cells[2])
	assert.Equal(t, `N\/A`, cells[4])

	absent := sampleRecord()
	absent.Message = ""
	absent.Branch = ""
	assert.NotEqual(t, diary.FormatRow(absent, 120), row)

	parsed, err := diary.ParseRow(row)
	require.NoError(t, err)
	assert.Equal(t, "N/A", parsed.Message)
	assert.Equal(t, "N/A", parsed.Branch)
}

func TestParseRowRejectsMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"not a row",
		"| only | three | cells |",
		"| a | b | c | d | e | f | g |",
		"| a | b | c | d | e | f",
	} {
		_, err := diary.ParseRow(line)
		assert.Error(t, err, "line %q", line)
	}
}
