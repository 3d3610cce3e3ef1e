package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bonny0285/spmlogger/pkg/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/titanous/json5"
)

// ErrUnknownConsole is returned for a console destination that is not recognised.
var ErrUnknownConsole = errors.New("unknown console destination")

// Console destinations.
const (
	ConsoleFile   = "file"
	ConsoleStdout = "stdout"
	ConsoleStderr = "stderr"
	ConsoleNone   = "none"
)

// CLIArgs holds all command-line arguments passed to the application.
type CLIArgs struct {
	ConfigPath   string
	LogDir       string
	ExportDir    string
	Console      string
	Verbose      bool
	Disabled     bool
	DemoInterval time.Duration
}

// ParseCLIArgs parses the command-line flags and returns a populated CLIArgs struct.
func ParseCLIArgs() *CLIArgs {
	return parseCLIArgs(flag.CommandLine, os.Args[1:])
}

func parseCLIArgs(fs *flag.FlagSet, arguments []string) *CLIArgs {
	args := &CLIArgs{}

	fs.StringVar(&args.ConfigPath, "config", "", "Path to a settings file (.json, .json5 or .toml).")
	fs.StringVar(&args.LogDir, "log-dir", ".", "Specifies the directory to store console log files.")
	fs.StringVar(&args.ExportDir, "export-dir", "", "Directory for saved log dumps. Overrides the settings file.")
	fs.StringVar(&args.Console, "console", "", "Console destination: file, stdout, stderr or none.")
	fs.BoolVar(&args.Verbose, "verbose", false, "Emit a verbose entry for every key press.")
	fs.BoolVar(&args.Disabled, "disabled", false, "Start with recording disabled.")
	fs.DurationVar(&args.DemoInterval, "demo-interval", 0, "Emit a heartbeat entry at this interval. 0 disables it.")
	fs.Parse(arguments)

	return args
}

// Settings is the on-disk configuration. Unset fields keep the logger's defaults.
type Settings struct {
	Enabled      *bool             `json:"enabled" toml:"enabled"`
	DateFormat   string            `json:"date_format" toml:"date_format"`
	Timezone     string            `json:"timezone" toml:"timezone"`
	Tags         map[string]string `json:"tags" toml:"tags"`
	ExportDir    string            `json:"export_dir" toml:"export_dir"`
	ExportPrefix string            `json:"export_prefix" toml:"export_prefix"`
	Console      string            `json:"console" toml:"console"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *Settings {
	return &Settings{
		ExportDir:    "logs",
		ExportPrefix: "log",
		Console:      ConsoleFile,
	}
}

// LoadSettings reads a settings file. TOML is used for ".toml" files and JSON5
// for everything else. Missing fields are filled from DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file '%s': %w", path, err)
	}

	s := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing TOML settings '%s': %w", path, err)
		}
	default:
		if err := json5.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing JSON5 settings '%s': %w", path, err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings '%s': %w", path, err)
	}
	return s, nil
}

// Validate checks every field that Apply would otherwise reject.
func (s *Settings) Validate() error {
	if _, err := s.location(); err != nil {
		return err
	}
	overrides, err := s.severityTags()
	if err != nil {
		return err
	}
	tags := make(map[logging.Severity]string, len(logging.Severities))
	for _, severity := range logging.Severities {
		tags[severity] = logging.DefaultTag(severity)
	}
	for severity, tag := range overrides {
		tags[severity] = tag
	}
	if err := logging.ValidateTags(tags); err != nil {
		return err
	}
	switch s.Console {
	case "", ConsoleFile, ConsoleStdout, ConsoleStderr, ConsoleNone:
	default:
		return fmt.Errorf("console '%s': %w", s.Console, ErrUnknownConsole)
	}
	return nil
}

// Apply pushes the settings into logger and its formatter.
func (s *Settings) Apply(logger *logging.Logger) error {
	if err := s.Validate(); err != nil {
		return err
	}
	loc, _ := s.location()

	if s.Enabled != nil {
		logger.SetEnabled(*s.Enabled)
	}
	f := logger.Formatter()
	f.SetLayout(s.DateFormat)
	f.SetLocation(loc)
	overrides, _ := s.severityTags()
	return f.SetTags(overrides)
}

// severityTags resolves the severity names used as keys in Tags.
func (s *Settings) severityTags() (map[logging.Severity]string, error) {
	tags := make(map[logging.Severity]string, len(s.Tags))
	for name, tag := range s.Tags {
		severity, err := logging.ParseSeverity(name)
		if err != nil {
			return nil, fmt.Errorf("tag for '%s': %w", name, err)
		}
		tags[severity] = tag
	}
	return tags, nil
}

// Merge overrides settings with the command-line flags that were set.
func (s *Settings) Merge(args *CLIArgs) {
	if args.ExportDir != "" {
		s.ExportDir = args.ExportDir
	}
	if args.Console != "" {
		s.Console = args.Console
	}
	if args.Disabled {
		disabled := false
		s.Enabled = &disabled
	}
}

func (s *Settings) location() (*time.Location, error) {
	if s.Timezone == "" || strings.EqualFold(s.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone '%s': %w", s.Timezone, err)
	}
	return loc, nil
}

// OpenConsole resolves the console destination to a writer. For ConsoleFile a
// timestamped file is created in logDir. The returned closer is never nil.
func OpenConsole(destination, logDir string) (io.Writer, io.Closer, error) {
	switch destination {
	case ConsoleStdout:
		return os.Stdout, nopCloser{}, nil
	case ConsoleStderr:
		return os.Stderr, nopCloser{}, nil
	case ConsoleNone:
		return io.Discard, nopCloser{}, nil
	case "", ConsoleFile:
	default:
		return nil, nil, fmt.Errorf("console '%s': %w", destination, ErrUnknownConsole)
	}

	// Create the log directory if it doesn't exist.
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory '%s': %w", logDir, err)
	}
	logFileName := fmt.Sprintf("spmlogger-%s.log", time.Now().Format("2006-01-02_15-04-05"))
	logPath := filepath.Join(logDir, logFileName)

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file '%s': %w", logPath, err)
	}
	return logFile, logFile, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
