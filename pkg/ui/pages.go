package ui

import "github.com/rivo/tview"

// Page IDs used in the layout's tview.Pages.
const (
	PageWorkspaceID = "workspace_page"
	PageConsoleID   = "console_page"
)

type ActionPrompt struct {
	Input  string
	Action string
}

// Page is the interface that all UI pages must implement.
type Page interface {
	tview.Primitive
	GetActionPrompts() []ActionPrompt
}
