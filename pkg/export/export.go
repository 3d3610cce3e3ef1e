// Package export dumps a log history to text files and reads them back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bonny0285/spmlogger/pkg/logging"
)

// FileNameLayout is the timestamp layout embedded in generated file names.
const FileNameLayout = "2006-01-02_03-04-05"

// Reporter receives export failures. *logging.Logger satisfies it, which is the
// default. Callers may route failures to a separate diagnostic channel instead.
type Reporter interface {
	Errorf(format string, v ...interface{})
}

// Exporter writes history dumps into a single directory.
type Exporter struct {
	dir      string
	prefix   string
	reporter Reporter
	now      func() time.Time
}

// NewExporter creates an Exporter. A nil reporter discards failure reports.
func NewExporter(dir, prefix string, reporter Reporter) *Exporter {
	if prefix == "" {
		prefix = "log"
	}
	return &Exporter{dir: dir, prefix: prefix, reporter: reporter, now: time.Now}
}

// Dir returns the target directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Join concatenates entries with newline separators.
func Join(history []logging.Entry) string {
	lines := make([]string, len(history))
	for i, entry := range history {
		lines[i] = string(entry)
	}
	return strings.Join(lines, "\n")
}

// FileName returns a timestamped file name such as "log_2024-03-05_02-07-09.txt".
func (e *Exporter) FileName(t time.Time) string {
	return fmt.Sprintf("%s_%s.txt", e.prefix, t.Format(FileNameLayout))
}

// Save writes history to fileName inside the export directory and returns the
// full path. An empty fileName is replaced by FileName(now).
func (e *Exporter) Save(history []logging.Entry, fileName string) (string, error) {
	if fileName == "" {
		fileName = e.FileName(e.now())
	}
	path, err := e.write(Join(history), fileName)
	if err != nil {
		e.report("Export: Impossible to save file: %v", err)
		return "", err
	}
	return path, nil
}

// SaveAsync runs Save on a new goroutine and always calls done when it finishes.
func (e *Exporter) SaveAsync(history []logging.Entry, done func(path string, err error)) {
	go func() {
		path, err := e.Save(history, "")
		if done != nil {
			done(path, err)
		}
	}()
}

// Read returns the contents of a previously saved file.
func (e *Exporter) Read(fileName string) (string, error) {
	data, err := os.ReadFile(filepath.Join(e.dir, fileName))
	if err != nil {
		err = fmt.Errorf("reading saved log '%s': %w", fileName, err)
		e.report("Export: Impossible reading saved file: %v", err)
		return "", err
	}
	return string(data), nil
}

// write stores text atomically by writing a temporary file and renaming it.
func (e *Exporter) write(text, fileName string) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory '%s': %w", e.dir, err)
	}

	tmp, err := os.CreateTemp(e.dir, "."+fileName+".*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file in '%s': %w", e.dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op after a successful rename.

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing '%s': %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing '%s': %w", tmpName, err)
	}

	path := filepath.Join(e.dir, fileName)
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("moving export to '%s': %w", path, err)
	}
	return path, nil
}

func (e *Exporter) report(format string, v ...interface{}) {
	if e.reporter != nil {
		e.reporter.Errorf(format, v...)
	}
}
