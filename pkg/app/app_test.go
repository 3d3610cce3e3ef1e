package app

import (
	"testing"

	"github.com/bonny0285/spmlogger/pkg/export"
	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/bonny0285/spmlogger/pkg/ui"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *logging.Logger) {
	t.Helper()
	logger := logging.NewLogger()
	logger.SetWriter(nil)
	exporter := export.NewExporter(t.TempDir(), "log", logger)
	a := NewApp(logger, exporter, &CLIArgs{})
	t.Cleanup(a.Stop)
	return a, logger
}

func TestAppToggleConsole(t *testing.T) {
	a, _ := newTestApp(t)
	pages := a.Layout().Pages()

	require.False(t, a.IsConsoleVisible())
	name, _ := pages.GetFrontPage()
	require.Equal(t, ui.PageWorkspaceID, name)

	a.ToggleConsole()
	require.True(t, a.IsConsoleVisible())
	name, _ = pages.GetFrontPage()
	require.Equal(t, ui.PageConsoleID, name)

	a.ToggleConsole()
	require.False(t, a.IsConsoleVisible())
	name, _ = pages.GetFrontPage()
	require.Equal(t, ui.PageWorkspaceID, name)
}

func TestAppOwnsStoreObserver(t *testing.T) {
	a, logger := newTestApp(t)
	require.Same(t, logger, a.GetLogger())

	// The console registered itself; emitting must not block without a running event loop.
	logger.Info("App test entry")
	require.Equal(t, 1, logger.Store().Len())
}

func TestAppStopIsIdempotent(t *testing.T) {
	a, _ := newTestApp(t)
	a.Stop()
	a.Stop()
}
