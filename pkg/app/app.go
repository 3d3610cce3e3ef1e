package app

import (
	"context"
	"sync"
	"time"

	"github.com/bonny0285/spmlogger/pkg/export"
	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/bonny0285/spmlogger/pkg/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App orchestrates the TUI application: the workspace page, the console overlay
// and the background services that feed them.
type App struct {
	*tview.Application
	layoutManager *ui.LayoutManager
	logger        *logging.Logger
	exporter      *export.Exporter
	args          *CLIArgs

	workspace      *ui.Workspace
	console        *ui.Console
	consoleVisible bool

	appCtx    context.Context
	cancelApp context.CancelFunc

	shutdownWg sync.WaitGroup
	stopOnce   sync.Once
}

// NewApp creates and initializes the TUI application.
func NewApp(logger *logging.Logger, exporter *export.Exporter, args *CLIArgs) *App {
	appCtx, cancelApp := context.WithCancel(context.Background())

	a := &App{
		Application: tview.NewApplication(),
		logger:      logger,
		exporter:    exporter,
		args:        args,
		appCtx:      appCtx,
		cancelApp:   cancelApp,
	}

	a.layoutManager = ui.NewLayoutManager(a, appCtx)
	a.workspace = ui.NewWorkspace(a, args.Verbose)
	a.workspace.OnRecordingToggled = func(bool) { a.updateChrome() }
	a.console = ui.NewConsole(a, exporter, a.layoutManager.Bounds)

	pages := a.layoutManager.Pages()
	pages.AddPage(ui.PageWorkspaceID, a.workspace, true, true)
	// The console keeps its own rect so it can float above the workspace.
	pages.AddPage(ui.PageConsoleID, a.console, false, false)

	a.SetRoot(a.layoutManager.RootPrimitive(), true).EnableMouse(true)
	a.setupGlobalInputCapture()
	a.updateChrome()

	return a
}

// setupGlobalInputCapture defines application-wide keybindings.
func (a *App) setupGlobalInputCapture() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlL:
			a.ToggleConsole()
			return nil
		case tcell.KeyCtrlC:
			a.logger.Info("App: Quitting.")
			a.Stop()
			return nil
		}
		return event
	})
}

// ToggleConsole shows the console overlay or hides it. Must be called on the UI goroutine.
func (a *App) ToggleConsole() {
	pages := a.layoutManager.Pages()
	a.consoleVisible = !a.consoleVisible
	if a.consoleVisible {
		pages.ShowPage(ui.PageConsoleID)
		pages.SendToFront(ui.PageConsoleID)
		a.SetFocus(a.console)
	} else {
		pages.HidePage(ui.PageConsoleID)
		a.SetFocus(a.workspace)
	}
	a.updateChrome()
}

// IsConsoleVisible reports whether the overlay is shown.
func (a *App) IsConsoleVisible() bool {
	return a.consoleVisible
}

func (a *App) updateChrome() {
	var page ui.Page = a.workspace
	if a.consoleVisible {
		page = a.console
	}
	a.layoutManager.SetFooter(page.GetActionPrompts())

	status := "Recording"
	if !a.logger.IsEnabled() {
		status = "[yellow]Recording disabled[-]"
	}
	a.layoutManager.SetStatusText(status + " | saving to " + tview.Escape(a.exporter.Dir()))
}

// startHeartbeat emits an annotated entry at every interval until the app stops.
func (a *App) startHeartbeat(interval time.Duration) {
	if interval <= 0 {
		return
	}
	started := time.Now()
	a.shutdownWg.Add(1)
	go func() {
		defer a.shutdownWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-a.appCtx.Done():
				return
			case now := <-ticker.C:
				a.logger.With(map[string]any{
					"uptime": now.Sub(started).Round(time.Second),
				}).Debug("App: Heartbeat")
			}
		}
	}()
}

// Run starts the tview application event loop.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	screen.SetTitle("SPMLogger") // tview doesn't expose this
	a.EnableMouse(true)
	a.EnablePaste(true)
	a.SetScreen(screen)

	a.console.Start(a.appCtx, &a.shutdownWg)
	a.startHeartbeat(a.args.DemoInterval)
	a.logger.Info("App: Event loop starting.")
	return a.Application.Run()
}

// Stop cancels the background services and stops the event loop. It is safe to call more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.cancelApp()
		a.shutdownWg.Wait()
		a.Application.Stop()
	})
}

// AppInterface methods to be called by UI components

func (a *App) GetLogger() *logging.Logger {
	return a.logger
}

func (a *App) Layout() *ui.LayoutManager {
	return a.layoutManager
}
