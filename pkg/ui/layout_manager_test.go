package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/bonny0285/spmlogger/pkg/logging"
)

func TestCountSeverities(t *testing.T) {
	logger := logging.NewLogger()
	logger.SetWriter(nil)

	logger.Warning("w1")
	logger.Warning("w2")
	logger.Error("e1")
	logger.Severe("s1")
	logger.Info("i1")

	warnings, errors := CountSeverities(logger.Store().History(), logger.Formatter())
	if warnings != 2 || errors != 2 {
		t.Errorf("Expected 2 warnings and 2 errors, got %d and %d", warnings, errors)
	}

	// Tags quoted in a message or an annotation do not count.
	errorTag := logging.DefaultTag(logging.SeverityError)
	logger.Emit(logging.SeverityInfo, "retrying after "+errorTag+" marker", "a.go", 1, "f", nil)
	logger.With(map[string]any{"last": errorTag}).Info("annotated")
	warnings, errors = CountSeverities(logger.Store().History(), logger.Formatter())
	if warnings != 2 || errors != 2 {
		t.Errorf("Expected message tags to be ignored, got %d warnings and %d errors", warnings, errors)
	}

	if err := logger.Formatter().SetTag(logging.SeverityWarning, ""); err != nil {
		t.Fatalf("SetTag returned an unexpected error: %v", err)
	}
	warnings, _ = CountSeverities(logger.Store().History(), logger.Formatter())
	if warnings != 0 {
		t.Errorf("Expected an empty tag to match nothing, got %d warnings", warnings)
	}
}

func TestLayoutFooter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lm := NewLayoutManager(newFakeApp(), ctx)
	lm.SetFooter([]ActionPrompt{{"x", "Do it"}})

	footer := lm.footer.GetText(true)
	for _, want := range []string{"Ctrl+C: Quit", "Ctrl+L: Console", "x: Do it"} {
		if !strings.Contains(footer, want) {
			t.Errorf("Expected footer %q to contain %q", footer, want)
		}
	}
}

func TestLayoutErrorCounters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lm := NewLayoutManager(newFakeApp(), ctx)
	lm.SetErrorCounters(3, 1)
	if got := lm.errorCounters.GetText(true); got != "Warnings: 3 Errors: 1" {
		t.Errorf("Unexpected counter text %q", got)
	}
}
