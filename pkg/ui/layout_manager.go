package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// LayoutManager handles the overall visual structure of the application.
type LayoutManager struct {
	app        AppInterface
	root       *tview.Flex
	header     *tview.Flex
	statusText *tview.TextView
	footer     *tview.TextView
	pages      *tview.Pages

	errorCounters    *tview.TextView
	prevErrorCount   int
	prevWarningCount int
}

// NewLayoutManager creates and initializes the UI layout manager.
func NewLayoutManager(app AppInterface, ctx context.Context) *LayoutManager {
	lm := &LayoutManager{
		app:              app,
		pages:            tview.NewPages(),
		root:             tview.NewFlex().SetDirection(tview.FlexRow),
		header:           tview.NewFlex(),
		statusText:       tview.NewTextView().SetDynamicColors(true),
		footer:           tview.NewTextView().SetDynamicColors(true),
		errorCounters:    tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignRight),
		prevErrorCount:   -1,
		prevWarningCount: -1,
	}
	lm.setupLayout()
	go lm.startErrorCounterPolling(ctx)
	return lm
}

// RootPrimitive returns the main primitive that should be set as the application's root.
func (lm *LayoutManager) RootPrimitive() tview.Primitive {
	return lm.root
}

// Pages returns the tview.Pages container for content.
func (lm *LayoutManager) Pages() *tview.Pages {
	return lm.pages
}

// Bounds returns the area available to pages and overlays.
func (lm *LayoutManager) Bounds() Frame {
	x, y, width, height := lm.pages.GetInnerRect()
	return Frame{X: x, Y: y, Width: width, Height: height}
}

func (lm *LayoutManager) setupLayout() {
	// Use boxes instead of padding to avoid transparent gap
	lm.header.AddItem(tview.NewBox(), 1, 0, false).
		AddItem(lm.statusText, 0, 1, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(lm.errorCounters, 30, 0, false).
		AddItem(tview.NewBox(), 1, 0, false)

	lm.root.SetBorder(true).
		SetTitle(" SPMLogger ").
		SetTitleAlign(tview.AlignLeft)

	lm.root.AddItem(lm.header, 1, 0, false).
		AddItem(lm.pages, 0, 1, true).
		AddItem(lm.footer, 1, 0, false)

	lm.SetErrorCounters(0, 0)
}

// startErrorCounterPolling periodically updates the error and warning counters.
// It stops when the application's context is canceled.
func (lm *LayoutManager) startErrorCounterPolling(ctx context.Context) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	// Only the polling goroutine reads these, so no locking is needed.
	lastWarnings, lastErrors := -1, -1
	for {
		select {
		case <-ticker.C:
			logger := lm.app.GetLogger()
			if logger == nil {
				continue
			}
			warnings, errors := CountSeverities(logger.Store().History(), logger.Formatter())
			if warnings == lastWarnings && errors == lastErrors {
				continue
			}
			lastWarnings, lastErrors = warnings, errors
			go lm.app.QueueUpdateDraw(func() {
				lm.SetErrorCounters(warnings, errors)
			})
		case <-ctx.Done():
			return
		}
	}
}

// CountSeverities counts warning entries and error or severe entries by the tag
// in their header line.
func CountSeverities(history []logging.Entry, f *logging.Formatter) (warnings, errors int) {
	for _, entry := range history {
		severity, ok := f.SeverityOf(entry)
		if !ok {
			continue
		}
		switch severity {
		case logging.SeverityError, logging.SeveritySevere:
			errors++
		case logging.SeverityWarning:
			warnings++
		}
	}
	return warnings, errors
}

// SetErrorCounters updates the error and warning counters.
func (lm *LayoutManager) SetErrorCounters(warnCount, errorCount int) {
	if lm.prevErrorCount == errorCount && lm.prevWarningCount == warnCount {
		return
	}
	lm.prevErrorCount = errorCount
	lm.prevWarningCount = warnCount

	warnBgColor := tcell.ColorYellow
	warnFgColor := tcell.ColorBlack
	errorBgColor := tcell.ColorRed
	errorFgColor := tcell.ColorBlack
	if warnCount == 0 {
		warnBgColor = tcell.ColorBlack
		warnFgColor = tcell.ColorWhite
	}
	if errorCount == 0 {
		errorBgColor = tcell.ColorBlack
		errorFgColor = tcell.ColorWhite
	}
	lm.errorCounters.SetText(fmt.Sprintf("[yellow]Warnings: [%s:%s]%d[-:-:-] [red]Errors: [%s:%s]%d[-:-:-]",
		warnFgColor.Name(), warnBgColor.Name(), warnCount, errorFgColor.Name(), errorBgColor.Name(), errorCount))
}

// SetFooter updates the action hints line.
func (lm *LayoutManager) SetFooter(prompts []ActionPrompt) {
	globalPrompts := []ActionPrompt{{"Ctrl+C", "Quit"}, {"Ctrl+L", "Console"}}
	allPrompts := append(globalPrompts, prompts...)
	lm.footer.SetText(formatPrompts(allPrompts))
}

// SetStatusText updates the status line in the header.
func (lm *LayoutManager) SetStatusText(text string) {
	lm.statusText.SetText(text)
}

func formatPrompts(prompts []ActionPrompt) string {
	var sb strings.Builder
	for i, prompt := range prompts {
		sb.WriteString(fmt.Sprintf("[darkcyan::b]%s[-:-:-]: %s", prompt.Input, prompt.Action))
		if i != len(prompts)-1 {
			sb.WriteString(" | ")
		}
	}
	return sb.String()
}
