package ui

import (
	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/rivo/tview"
)

// AppInterface defines methods the UI layer needs to access from the main App struct.
type AppInterface interface {
	QueueUpdateDraw(f func()) *tview.Application
	SetFocus(p tview.Primitive) *tview.Application
	GetFocus() tview.Primitive
	GetLogger() *logging.Logger
}
