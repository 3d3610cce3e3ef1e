package logging

import (
	"errors"
	"strings"
)

// ErrUnknownSeverity is returned when a severity outside the fixed set is used.
var ErrUnknownSeverity = errors.New("unknown severity")

// ErrDuplicateTag is returned when a display tag is already held by another severity.
var ErrDuplicateTag = errors.New("duplicate severity tag")

// Severity is one of the fixed log levels. The zero value means "unset".
type Severity int

// The set of severities is closed. Only the display tag of each one is configurable.
const (
	SeverityError Severity = iota + 1
	SeverityInfo
	SeverityDebug
	SeverityVerbose
	SeverityWarning
	SeveritySevere
)

// Severities lists every valid severity in declaration order.
var Severities = []Severity{
	SeverityError,
	SeverityInfo,
	SeverityDebug,
	SeverityVerbose,
	SeverityWarning,
	SeveritySevere,
}

// String returns the lower-case name of a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	case SeverityVerbose:
		return "verbose"
	case SeverityWarning:
		return "warning"
	case SeveritySevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Valid reports whether s belongs to the fixed set.
func (s Severity) Valid() bool {
	return s >= SeverityError && s <= SeveritySevere
}

// ParseSeverity maps a severity name, case-insensitively, to its Severity.
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Severities {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, ErrUnknownSeverity
}

// DefaultTag returns the built-in display tag of a severity.
func DefaultTag(s Severity) string {
	switch s {
	case SeverityError:
		return "[‼️]"
	case SeverityInfo:
		return "[ℹ️]"
	case SeverityDebug:
		return "[💬]"
	case SeverityVerbose:
		return "[🔬]"
	case SeverityWarning:
		return "[⚠️]"
	case SeveritySevere:
		return "[🔥]"
	default:
		return ""
	}
}

// Entry is one fully formatted, immutable log line.
type Entry string

// String returns the formatted text of the entry.
func (e Entry) String() string {
	return string(e)
}

// Record describes a single log request before it is formatted.
type Record struct {
	Severity Severity
	// Symbol is printed in place of the tag when Severity is unset.
	Symbol   string
	Message  any
	File     string
	Line     int
	Column   int
	Function string
	Extra    map[string]any
}
