package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bonny0285/spmlogger/pkg/export"
	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/bonny0285/spmlogger/pkg/ui/widgets"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const consoleTitle = "Log Console"

type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragResize
)

// Console is a floating overlay that shows the log history live. The title row
// moves it and the bottom-right corner resizes it.
type Console struct {
	*tview.Flex
	app      AppInterface
	store    *logging.LogStore
	exporter *export.Exporter

	status      *tview.TextView
	saveButton  *tview.Button
	clearButton *tview.Button
	body        *tview.TextView

	dirty atomic.Bool

	// Accessed only from the UI goroutine.
	frame          Frame
	bounds         func() Frame
	drag           dragMode
	dragX, dragY   int
	renderedLength int
}

// NewConsole creates the overlay and registers it as the store's observer.
// bounds reports the area the overlay may occupy.
func NewConsole(app AppInterface, exporter *export.Exporter, bounds func() Frame) *Console {
	c := &Console{
		Flex:     tview.NewFlex().SetDirection(tview.FlexRow),
		app:      app,
		store:    app.GetLogger().Store(),
		exporter: exporter,
		bounds:   bounds,
		status:   tview.NewTextView().SetDynamicColors(true),
		body: tview.NewTextView().
			SetScrollable(true).
			SetWrap(true).
			SetTextColor(widgets.ConsoleTextColor),
	}
	c.saveButton = widgets.NewConsoleButton("Save", c.onSave)
	c.clearButton = widgets.NewConsoleButton("Clear", c.onClear)

	topBar := tview.NewFlex().
		AddItem(c.status, 0, 1, false).
		AddItem(c.saveButton, 6, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(c.clearButton, 7, 0, false)

	c.Flex.AddItem(topBar, 1, 0, false).
		AddItem(c.body, 0, 1, true)
	c.Flex.SetBorder(true).
		SetTitle(" " + consoleTitle + " ").
		SetBackgroundColor(widgets.ConsoleBackgroundColor)
	c.body.SetBackgroundColor(widgets.ConsoleBackgroundColor)
	c.SetInputCapture(c.handleKey)

	c.store.SetObserver(c.onHistoryChanged)
	c.dirty.Store(true)
	return c
}

// onHistoryChanged is the store observer. It may run on any goroutine, so it only
// marks the console for the next flush.
func (c *Console) onHistoryChanged([]logging.Entry) {
	c.dirty.Store(true)
}

// Start begins the refresh loop. Updates are batched so a burst of entries
// results in a single redraw.
func (c *Console) Start(ctx context.Context, wg *sync.WaitGroup) {
	ticker := time.NewTicker(100 * time.Millisecond)
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.dirty.Swap(false) {
					go c.app.QueueUpdateDraw(c.render)
				}
			}
		}
	}()
}

// render copies the store's current history into the view. Snapshots handed to
// the observer may arrive out of order across goroutines, so the store is read
// here instead.
func (c *Console) render() {
	history := c.store.History()
	atEnd := c.renderedLength == 0 || c.isScrolledToEnd()

	c.body.SetText(renderHistory(history))
	c.renderedLength = len(history)
	c.Flex.SetTitle(fmt.Sprintf(" %s (%d) ", consoleTitle, len(history)))
	c.clearButton.SetDisabled(len(history) == 0)
	if atEnd {
		c.body.ScrollToEnd()
	}
}

func (c *Console) isScrolledToEnd() bool {
	row, _ := c.body.GetScrollOffset()
	_, _, _, height := c.body.GetInnerRect()
	return row+height >= c.body.GetOriginalLineCount()
}

// renderHistory lays out entries one after another with a blank line between them.
func renderHistory(history []logging.Entry) string {
	return strings.TrimSuffix(export.Join(history), "\n")
}

func (c *Console) onSave() {
	if c.store.Len() == 0 {
		c.setStatus("[yellow]Nothing to save")
		return
	}
	c.saveButton.SetDisabled(true)
	c.setStatus("Saving...")

	history := c.store.History()
	c.exporter.SaveAsync(history, func(path string, err error) {
		go c.app.QueueUpdateDraw(func() {
			c.saveButton.SetDisabled(false)
			if err != nil {
				// The exporter already recorded the failure in the log.
				c.setStatus("[red]Save failed")
				return
			}
			c.setStatus("[green]Saved " + tview.Escape(path))
		})
		if err == nil {
			c.app.GetLogger().Infof("Console: Saved %d entries to %s", len(history), path)
		}
	})
}

func (c *Console) onClear() {
	c.store.Clear()
	c.setStatus("")
	c.renderedLength = 0
	c.render()
}

func (c *Console) setStatus(text string) {
	c.status.SetText(text)
}

// Frame returns the overlay's current position and size.
func (c *Console) Frame() Frame {
	return c.frame
}

// SetFrame moves and resizes the overlay, keeping it on screen.
func (c *Console) SetFrame(f Frame) {
	c.frame = f.Clamp(c.bounds())
	c.SetRect(c.frame.X, c.frame.Y, c.frame.Width, c.frame.Height)
}

// Draw keeps the overlay inside the available area before drawing it, which
// handles terminal resizes.
func (c *Console) Draw(screen tcell.Screen) {
	bounds := c.bounds()
	if bounds.Empty() {
		return
	}
	if c.frame.Empty() {
		c.frame = DefaultConsoleFrame(bounds)
	}
	c.SetFrame(c.frame)
	c.Flex.Draw(screen)
}

// MouseHandler drags the title row and the bottom-right corner and passes every
// other event on to the contents.
func (c *Console) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	inner := c.Flex.MouseHandler()
	return func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()

		if c.drag != dragNone {
			switch action {
			case tview.MouseMove:
				dx, dy := x-c.dragX, y-c.dragY
				c.dragX, c.dragY = x, y
				if c.drag == dragMove {
					c.SetFrame(c.frame.Move(dx, dy, c.bounds()))
				} else {
					c.SetFrame(c.frame.Resize(dx, dy, c.bounds()))
				}
				return true, c
			case tview.MouseLeftUp:
				c.drag = dragNone
				return true, nil
			}
			return true, c
		}

		if !c.frame.Contains(x, y) {
			return false, nil
		}
		if action == tview.MouseLeftDown {
			switch {
			case x == c.frame.X+c.frame.Width-1 && y == c.frame.Y+c.frame.Height-1:
				c.drag = dragResize
			case y == c.frame.Y:
				c.drag = dragMove
			}
			if c.drag != dragNone {
				c.dragX, c.dragY = x, y
				setFocus(c)
				return true, c
			}
		}
		return inner(action, event, setFocus)
	}
}

// handleKey moves the overlay with Alt+arrows, resizes it with Alt+Shift+arrows
// and cycles focus between the buttons and the history with Tab.
func (c *Console) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyTab || event.Key() == tcell.KeyBacktab {
		c.cycleFocus(event.Key() == tcell.KeyTab)
		return nil
	}
	if event.Modifiers()&tcell.ModAlt == 0 {
		return event
	}

	dx, dy := 0, 0
	switch event.Key() {
	case tcell.KeyLeft:
		dx = -1
	case tcell.KeyRight:
		dx = 1
	case tcell.KeyUp:
		dy = -1
	case tcell.KeyDown:
		dy = 1
	default:
		return event
	}
	if event.Modifiers()&tcell.ModShift != 0 {
		c.SetFrame(c.frame.Resize(dx, dy, c.bounds()))
	} else {
		c.SetFrame(c.frame.Move(dx, dy, c.bounds()))
	}
	return nil
}

func (c *Console) cycleFocus(forward bool) {
	chain := []tview.Primitive{c.body, c.saveButton, c.clearButton}
	current := c.app.GetFocus()
	next := 0
	for i, p := range chain {
		if p == current {
			if forward {
				next = (i + 1) % len(chain)
			} else {
				next = (i - 1 + len(chain)) % len(chain)
			}
			break
		}
	}
	c.app.SetFocus(chain[next])
}

// Focus delegates to the history view.
func (c *Console) Focus(delegate func(p tview.Primitive)) {
	delegate(c.body)
}

// GetActionPrompts returns the key actions for the console.
func (c *Console) GetActionPrompts() []ActionPrompt {
	return []ActionPrompt{
		{"Drag title", "Move"},
		{"Drag corner", "Resize"},
		{"Alt+Arrows", "Move"},
		{"Alt+Shift+Arrows", "Resize"},
		{"Tab", "Focus"},
	}
}
