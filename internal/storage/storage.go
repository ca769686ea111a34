package storage

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/commit-diary/internal/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// EnsureDir creates dir and all missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.NewFilesystemError("creating directories", dir, err)
	}
	return nil
}

// Exists reports whether a regular file exists at path. A directory at path
// is an error since it can never become a diary file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.NewFilesystemError("checking", path, err)
	}
	if info.IsDir() {
		return false, errors.NewFilesystemError("checking", path, fmt.Errorf("is a directory"))
	}
	return true, nil
}

// CreateExclusive writes data to a new file at path. The content becomes
// visible all at once: it is written to a temp file in the same directory and
// then hard-linked into place. Linking fails if path already exists, so an
// existing file is never replaced.
func CreateExclusive(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewFilesystemError("creating temp file", path, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.NewFilesystemError("writing temp file", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewFilesystemError("closing temp file", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return errors.NewFilesystemError("setting permissions", tmpPath, err)
	}

	if err := os.Link(tmpPath, path); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.NewFilesystemError("creating", path, err)
		}
		// Filesystem without hard links.
		return writeExclusive(path, data)
	}
	return nil
}

// writeExclusive creates path with O_EXCL and writes data in a single call,
// removing the file again if the write fails.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return errors.NewFilesystemError("creating", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return errors.NewFilesystemError("writing", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return errors.NewFilesystemError("closing", path, err)
	}
	return nil
}

// AppendLine appends line plus a newline to the existing file at path in one
// write. The file is never created or truncated here.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return errors.NewFilesystemError("opening for append", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return errors.NewFilesystemError("appending", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewFilesystemError("closing", path, err)
	}
	return nil
}

// ReadTableLines returns the table rows of the diary file at path, skipping
// the frontmatter, the header line and its separator. A missing file yields
// no rows and no error.
func ReadTableLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewFilesystemError("reading", path, err)
	}

	var (
		rows       []string
		seenHeader bool
		seenSep    bool
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "|") {
			continue
		}
		switch {
		case !seenHeader:
			seenHeader = true
		case !seenSep:
			seenSep = true
		default:
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewFilesystemError("reading", path, err)
	}
	return rows, nil
}
