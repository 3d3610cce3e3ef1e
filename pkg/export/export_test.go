package export_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bonny0285/spmlogger/pkg/export"
	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingReporter) Errorf(format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, v...))
}

func TestJoin(t *testing.T) {
	require.Equal(t, "", export.Join(nil))
	require.Equal(t, "a\nb\nc", export.Join([]logging.Entry{"a", "b", "c"}))
}

func TestFileName(t *testing.T) {
	e := export.NewExporter(t.TempDir(), "", nil)
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	require.Equal(t, "log_2024-03-05_02-07-09.txt", e.FileName(at))

	e = export.NewExporter(t.TempDir(), "app_log", nil)
	require.Equal(t, "app_log_2024-03-05_02-07-09.txt", e.FileName(at))
}

func TestSaveAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	reporter := &recordingReporter{}
	e := export.NewExporter(dir, "log", reporter)

	history := []logging.Entry{"first\n", "second\n"}
	path, err := e.Save(history, "dump.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "dump.txt"), path)

	text, err := e.Read("dump.txt")
	require.NoError(t, err)
	require.Equal(t, "first\n\nsecond\n", text)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	require.Empty(t, reporter.messages)
}

func TestSaveGeneratesName(t *testing.T) {
	e := export.NewExporter(t.TempDir(), "auto", nil)
	path, err := e.Save([]logging.Entry{"x"}, "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(path), "auto_"))
	require.True(t, strings.HasSuffix(path, ".txt"))
}

func TestSaveFailureIsReported(t *testing.T) {
	// A regular file where the directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	reporter := &recordingReporter{}
	e := export.NewExporter(filepath.Join(blocker, "logs"), "log", reporter)
	_, err := e.Save([]logging.Entry{"x"}, "dump.txt")
	require.Error(t, err)
	require.Len(t, reporter.messages, 1)
	require.Contains(t, reporter.messages[0], "Impossible to save file")
}

func TestReadMissingIsReported(t *testing.T) {
	reporter := &recordingReporter{}
	e := export.NewExporter(t.TempDir(), "log", reporter)
	_, err := e.Read("missing.txt")
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Len(t, reporter.messages, 1)
}

func TestSaveFailureLogsIntoStore(t *testing.T) {
	logger := logging.NewLogger()
	logger.SetWriter(nil)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	e := export.NewExporter(filepath.Join(blocker, "logs"), "log", logger)

	_, err := e.Save(logger.Store().History(), "dump.txt")
	require.Error(t, err)

	history := logger.Store().History()
	require.Len(t, history, 1)
	require.Contains(t, string(history[0]), logging.DefaultTag(logging.SeverityError))
}

func TestSaveAsyncCallsDone(t *testing.T) {
	e := export.NewExporter(t.TempDir(), "log", nil)
	done := make(chan error, 1)
	e.SaveAsync([]logging.Entry{"x"}, func(path string, err error) {
		if err == nil {
			_, err = os.Stat(path)
		}
		done <- err
	})

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("SaveAsync did not call done")
	}
}
