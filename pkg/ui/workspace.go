package ui

import (
	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const workspaceText = `[::b]SPMLogger demo workspace[-:-:-]

Every entry you emit is printed to the console writer and kept in the log history.
Identical lines are only stored once.

  [darkcyan::b]e[-:-:-] error   [darkcyan::b]i[-:-:-] info   [darkcyan::b]d[-:-:-] debug
  [darkcyan::b]v[-:-:-] verbose [darkcyan::b]w[-:-:-] warning [darkcyan::b]s[-:-:-] severe
  [darkcyan::b]t[-:-:-] toggle recording

Press [darkcyan::b]Ctrl+L[-:-:-] to show or hide the log console.`

// sampleKeys maps workspace keys to the severity they emit.
var sampleKeys = map[rune]logging.Severity{
	'e': logging.SeverityError,
	'i': logging.SeverityInfo,
	'd': logging.SeverityDebug,
	'v': logging.SeverityVerbose,
	'w': logging.SeverityWarning,
	's': logging.SeveritySevere,
}

// Workspace is the background page under the console overlay. Its keys emit
// sample entries.
type Workspace struct {
	*tview.TextView
	app     AppInterface
	verbose bool
	counts  map[logging.Severity]int

	// OnRecordingToggled, if set, is called after 't' flips the enabled flag.
	OnRecordingToggled func(enabled bool)
}

// NewWorkspace creates the workspace page. With verbose set, every key press is
// also logged at verbose level.
func NewWorkspace(app AppInterface, verbose bool) *Workspace {
	w := &Workspace{
		TextView: tview.NewTextView().SetDynamicColors(true).SetText(workspaceText),
		app:      app,
		verbose:  verbose,
		counts:   make(map[logging.Severity]int),
	}
	w.SetBorderPadding(1, 1, 2, 2)
	w.SetInputCapture(w.handleKey)
	return w
}

func (w *Workspace) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	logger := w.app.GetLogger()
	if w.verbose {
		logger.Verbosef("Workspace: Key %q pressed", event.Rune())
	}

	if event.Rune() == 't' {
		enabled := !logger.IsEnabled()
		if !enabled {
			logger.Infof("Workspace: Recording disabled")
		}
		logger.SetEnabled(enabled)
		if enabled {
			logger.Infof("Workspace: Recording enabled")
		}
		if w.OnRecordingToggled != nil {
			w.OnRecordingToggled(enabled)
		}
		return nil
	}

	severity, ok := sampleKeys[event.Rune()]
	if !ok {
		return event
	}
	w.counts[severity]++
	w.emitSample(logger, severity)
	return nil
}

// emitSample logs one entry of the given severity with a few annotations.
func (w *Workspace) emitSample(logger *logging.Logger, severity logging.Severity) {
	logger.With(map[string]any{
		"count":  w.counts[severity],
		"source": "keyboard",
	}).Log(severity, "Sample", severity, "entry")
}

// GetActionPrompts returns the key actions for the workspace.
func (w *Workspace) GetActionPrompts() []ActionPrompt {
	return []ActionPrompt{
		{"e/i/d/v/w/s", "Emit sample"},
		{"t", "Toggle recording"},
	}
}
