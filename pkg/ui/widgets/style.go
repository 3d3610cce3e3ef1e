package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	DefaultButtonStyle         = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	DefaultButtonActiveStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue).Underline(true)
	DefaultButtonDisabledStyle = tcell.StyleDefault.Foreground(tcell.ColorLightGray).Background(tcell.ColorDarkGray)

	// ConsoleTextColor is the color of log entries in the console overlay.
	ConsoleTextColor = tcell.ColorGreen
	// ConsoleBackgroundColor sets the overlay apart from the page below it.
	ConsoleBackgroundColor = tcell.ColorBlack
)

func DefaultStyleButton(button *tview.Button) {
	button.SetStyle(DefaultButtonStyle)
	button.SetActivatedStyle(DefaultButtonActiveStyle)
	button.SetDisabledStyle(DefaultButtonDisabledStyle)
}

// NewConsoleButton returns a styled button with a fixed label.
func NewConsoleButton(label string, selected func()) *tview.Button {
	button := tview.NewButton(label).SetSelectedFunc(selected)
	DefaultStyleButton(button)
	return button
}
