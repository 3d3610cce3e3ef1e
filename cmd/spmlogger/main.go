package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/bonny0285/spmlogger/pkg/app"
	"github.com/bonny0285/spmlogger/pkg/export"
	"github.com/bonny0285/spmlogger/pkg/logging"
)

func main() {
	cliArgs := app.ParseCLIArgs()

	// 1. Load settings. Flags win over the file.
	settings := app.DefaultSettings()
	if cliArgs.ConfigPath != "" {
		loaded, err := app.LoadSettings(cliArgs.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings = loaded
	}
	settings.Merge(cliArgs)

	// 2. Setup logging. Stdout belongs to the terminal UI, so the console
	// writer defaults to a log file.
	mainLogger := logging.NewLogger()
	if err := settings.Apply(mainLogger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	console, closer, err := app.OpenConsole(settings.Console, cliArgs.LogDir)
	if err != nil {
		// Can't use logger yet, so print to stderr
		fmt.Fprintf(os.Stderr, "Failed to open console: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	mainLogger.SetWriter(console)

	wd, err := os.Getwd()
	if err != nil {
		mainLogger.Errorf("Main: Failed to get current working directory: %v", err)
	} else {
		mainLogger.Infof("Main: Current Working Directory: %s", wd)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				mainLogger.Infof("Main: Build Revision: %s", setting.Value)
			}
		}
	}

	exporter := export.NewExporter(settings.ExportDir, settings.ExportPrefix, mainLogger)

	// 3. Setup OS signal trapping
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 4. Create the App structure, passing the configured logger
	a := app.NewApp(mainLogger, exporter, cliArgs)

	go func() {
		<-sigChan
		a.QueueUpdateDraw(a.Stop)
	}()

	// 5. Run the application
	mainLogger.Infof("Main: Application starting up.")
	if err := a.Run(); err != nil {
		mainLogger.Errorf("Main: Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mainLogger.Infof("Main: Application exited gracefully with %d entries recorded.", mainLogger.Store().Len())
}
