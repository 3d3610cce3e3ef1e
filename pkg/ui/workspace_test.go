package ui

import (
	"strings"
	"testing"

	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/gdamore/tcell/v2"
)

func TestWorkspaceSampleKeys(t *testing.T) {
	app := newFakeApp()
	w := NewWorkspace(app, false)

	for _, r := range "eidvws" {
		if ev := w.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); ev != nil {
			t.Errorf("Expected key %q to be consumed", r)
		}
	}
	history := app.logger.Store().History()
	if len(history) != len(logging.Severities) {
		t.Fatalf("Expected one entry per severity, got %d", len(history))
	}
	for i, s := range []logging.Severity{
		logging.SeverityError, logging.SeverityInfo, logging.SeverityDebug,
		logging.SeverityVerbose, logging.SeverityWarning, logging.SeveritySevere,
	} {
		entry := string(history[i])
		if !strings.Contains(entry, logging.DefaultTag(s)+"[workspace.go]") {
			t.Errorf("Entry %d: expected %s tag and workspace.go location, got %q", i, s, entry)
		}
		if !strings.Contains(entry, "count: 1\nsource: keyboard\n") {
			t.Errorf("Entry %d: expected annotations, got %q", i, entry)
		}
	}

	if ev := w.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ev == nil {
		t.Errorf("Expected unknown keys to pass through")
	}
}

func TestWorkspaceToggleRecording(t *testing.T) {
	app := newFakeApp()
	w := NewWorkspace(app, false)
	toggle := tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)

	w.handleKey(toggle)
	if app.logger.IsEnabled() {
		t.Fatalf("Expected recording to be disabled")
	}
	w.handleKey(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone))
	w.handleKey(toggle)

	history := app.logger.Store().History()
	if len(history) != 2 {
		t.Fatalf("Expected only the two toggle notices, got %d entries", len(history))
	}
	if !strings.Contains(string(history[0]), "Recording disabled") || !strings.Contains(string(history[1]), "Recording enabled") {
		t.Errorf("Unexpected toggle entries %v", history)
	}
}
