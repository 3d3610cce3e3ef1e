package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

// Logger formats records, prints them to a console writer and keeps them in a LogStore.
type Logger struct {
	mu      sync.Mutex
	store   *LogStore
	format  *Formatter
	writer  io.Writer
	goLog   *log.Logger
	enabled atomic.Bool
}

// NewLogger creates an enabled Logger that prints to standard output.
func NewLogger() *Logger {
	l := &Logger{
		store:  NewLogStore(),
		format: NewFormatter(),
		writer: os.Stdout,
	}
	l.enabled.Store(true)
	l.goLog = log.New(l, "", 0) // The logger will write through our Write method
	return l
}

// Write implements the io.Writer interface. This lets the standard log package
// write through our logger, which dispatches to the configured console writer.
func (l *Logger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil {
		return len(p), nil
	}
	return l.writer.Write(p)
}

// SetWriter sets the console destination. nil silences the console.
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// GetWriter returns the current console writer.
func (l *Logger) GetWriter() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer
}

// Store returns the backing LogStore.
func (l *Logger) Store() *LogStore {
	return l.store
}

// Formatter returns the shared formatter.
func (l *Logger) Formatter() *Formatter {
	return l.format
}

// SetEnabled toggles recording. While disabled nothing is printed or stored.
func (l *Logger) SetEnabled(enable bool) {
	l.enabled.Store(enable)
}

func (l *Logger) IsEnabled() bool {
	return l.enabled.Load()
}

// Log formats rec, prints it and stores it.
func (l *Logger) Log(rec Record) {
	if !l.enabled.Load() {
		return
	}
	entry := l.format.Format(rec)
	l.goLog.Println(entry)
	l.store.Add(entry)
}

// Emit logs message with an explicit source location and optional annotations.
func (l *Logger) Emit(s Severity, message any, file string, line int, function string, extra map[string]any) {
	l.Log(Record{
		Severity: s,
		Message:  message,
		File:     file,
		Line:     line,
		Function: function,
		Extra:    extra,
	})
}

// With returns a view of the logger that attaches extra to every entry.
func (l *Logger) With(extra map[string]any) *Annotated {
	return &Annotated{logger: l, extra: extra}
}

// logAt logs message at the source location skip frames above it.
func (l *Logger) logAt(skip int, s Severity, extra map[string]any, message any) {
	if !l.enabled.Load() {
		return
	}
	file, line, function := caller(skip)
	l.Emit(s, message, file, line, function, extra)
}

func (l *Logger) Error(v ...interface{})   { l.logAt(2, SeverityError, nil, sprint(v...)) }
func (l *Logger) Info(v ...interface{})    { l.logAt(2, SeverityInfo, nil, sprint(v...)) }
func (l *Logger) Debug(v ...interface{})   { l.logAt(2, SeverityDebug, nil, sprint(v...)) }
func (l *Logger) Verbose(v ...interface{}) { l.logAt(2, SeverityVerbose, nil, sprint(v...)) }
func (l *Logger) Warning(v ...interface{}) { l.logAt(2, SeverityWarning, nil, sprint(v...)) }
func (l *Logger) Severe(v ...interface{})  { l.logAt(2, SeveritySevere, nil, sprint(v...)) }

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logAt(2, SeverityError, nil, fmt.Sprintf(format, v...))
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.logAt(2, SeverityInfo, nil, fmt.Sprintf(format, v...))
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logAt(2, SeverityDebug, nil, fmt.Sprintf(format, v...))
}

// Verbosef logs a formatted verbose message.
func (l *Logger) Verbosef(format string, v ...interface{}) {
	l.logAt(2, SeverityVerbose, nil, fmt.Sprintf(format, v...))
}

// Warningf logs a formatted warning message.
func (l *Logger) Warningf(format string, v ...interface{}) {
	l.logAt(2, SeverityWarning, nil, fmt.Sprintf(format, v...))
}

// Severef logs a formatted severe message.
func (l *Logger) Severef(format string, v ...interface{}) {
	l.logAt(2, SeveritySevere, nil, fmt.Sprintf(format, v...))
}

// Annotated logs through its parent Logger with a fixed set of annotations.
type Annotated struct {
	logger *Logger
	extra  map[string]any
}

// Log logs at the given severity with the caller's source location.
func (a *Annotated) Log(s Severity, v ...interface{}) {
	a.logger.logAt(2, s, a.extra, sprint(v...))
}

func (a *Annotated) Error(v ...interface{}) {
	a.logger.logAt(2, SeverityError, a.extra, sprint(v...))
}

func (a *Annotated) Info(v ...interface{}) {
	a.logger.logAt(2, SeverityInfo, a.extra, sprint(v...))
}

func (a *Annotated) Debug(v ...interface{}) {
	a.logger.logAt(2, SeverityDebug, a.extra, sprint(v...))
}

func (a *Annotated) Warning(v ...interface{}) {
	a.logger.logAt(2, SeverityWarning, a.extra, sprint(v...))
}

func (a *Annotated) Verbose(v ...interface{}) {
	a.logger.logAt(2, SeverityVerbose, a.extra, sprint(v...))
}

func (a *Annotated) Severe(v ...interface{}) {
	a.logger.logAt(2, SeveritySevere, a.extra, sprint(v...))
}

func sprint(v ...interface{}) string {
	// Use fmt.Sprintln to get spaces between all operands.
	return strings.TrimSpace(fmt.Sprintln(v...))
}

// caller returns the file, line and short function name skip frames up.
func caller(skip int) (string, int, string) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0, ""
	}
	name := ""
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return file, line, name
}
