package logging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultLayout renders a 12-hour clock with millisecond precision.
const DefaultLayout = "2006-01-02 03:04:05.000"

// Formatter turns records into entries. The tag mapping and the timestamp
// settings are shared by every entry and may be changed at any time.
type Formatter struct {
	mu       sync.RWMutex
	layout   string
	location *time.Location
	tags     map[Severity]string
	now      func() time.Time
}

// NewFormatter creates a Formatter with the default layout, the local time zone
// and the built-in severity tags.
func NewFormatter() *Formatter {
	f := &Formatter{
		layout:   DefaultLayout,
		location: time.Local,
		tags:     make(map[Severity]string, len(Severities)),
		now:      time.Now,
	}
	for _, s := range Severities {
		f.tags[s] = DefaultTag(s)
	}
	return f
}

// SetLayout sets the Go time layout used for timestamps. An empty layout restores the default.
func (f *Formatter) SetLayout(layout string) {
	if layout == "" {
		layout = DefaultLayout
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layout = layout
}

// Layout returns the current timestamp layout.
func (f *Formatter) Layout() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.layout
}

// SetLocation sets the time zone used for timestamps. nil means time.Local.
func (f *Formatter) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.location = loc
}

// SetClock replaces the time source. It is meant for tests.
func (f *Formatter) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// SetTag changes the display tag of a severity. The tag must not be held by
// another severity.
func (f *Formatter) SetTag(s Severity, tag string) error {
	return f.SetTags(map[Severity]string{s: tag})
}

// SetTags changes several display tags at once. The resulting mapping must keep
// every tag distinct, otherwise nothing is changed.
func (f *Formatter) SetTags(tags map[Severity]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	merged := make(map[Severity]string, len(f.tags))
	for s, tag := range f.tags {
		merged[s] = tag
	}
	for s, tag := range tags {
		if !s.Valid() {
			return fmt.Errorf("setting tag %q: %w", tag, ErrUnknownSeverity)
		}
		merged[s] = tag
	}
	if err := ValidateTags(merged); err != nil {
		return err
	}
	f.tags = merged
	return nil
}

// ValidateTags checks that every severity in tags is known and that no two
// severities share a tag.
func ValidateTags(tags map[Severity]string) error {
	owners := make(map[string]Severity, len(tags))
	for _, s := range Severities {
		tag, ok := tags[s]
		if !ok {
			continue
		}
		if other, dup := owners[tag]; dup {
			return fmt.Errorf("tag %q for %s is used by %s: %w", tag, s, other, ErrDuplicateTag)
		}
		owners[tag] = s
	}
	if len(owners) != len(tags) {
		for s, tag := range tags {
			if !s.Valid() {
				return fmt.Errorf("setting tag %q: %w", tag, ErrUnknownSeverity)
			}
		}
	}
	return nil
}

// Tag returns the display tag of a severity, or "" for an unknown one.
func (f *Formatter) Tag(s Severity) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tags[s]
}

// SeverityOf returns the severity whose tag sits at the tag position of the
// entry's header line. Tags inside the message or the annotations are ignored.
func (f *Formatter) SeverityOf(e Entry) (Severity, bool) {
	header, _, _ := strings.Cut(string(e), "\n")

	f.mu.RLock()
	defer f.mu.RUnlock()
	var (
		found    Severity
		foundAt  = -1
		foundLen int
	)
	for _, s := range Severities {
		tag := f.tags[s]
		if tag == "" {
			continue
		}
		// The tag follows the timestamp and precedes "[<file>]".
		i := strings.Index(header, " "+tag+"[")
		if i < 0 {
			continue
		}
		if foundAt < 0 || i < foundAt || (i == foundAt && len(tag) > foundLen) {
			found, foundAt, foundLen = s, i, len(tag)
		}
	}
	return found, foundAt >= 0
}

// Format renders a record as a single entry.
func (f *Formatter) Format(rec Record) Entry {
	f.mu.RLock()
	timestamp := f.now().In(f.location).Format(f.layout)
	tag, ok := f.tags[rec.Severity]
	f.mu.RUnlock()
	if !ok {
		tag = rec.Symbol
	}

	location := strconv.Itoa(rec.Line)
	if rec.Column > 0 {
		location += "-" + strconv.Itoa(rec.Column)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s[%s]:%s %s ->\n%v\n", timestamp, tag, baseName(rec.File), location, rec.Function, rec.Message)
	writeExtra(&b, rec.Extra)
	return Entry(b.String())
}

// writeExtra renders one "key: value" line per annotation, sorted by key.
func writeExtra(b *strings.Builder, extra map[string]any) {
	if len(extra) == 0 {
		return
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := extra[k]
		if v == nil {
			fmt.Fprintf(b, "%s: nil\n", k)
			continue
		}
		fmt.Fprintf(b, "%s: %v\n", k, v)
	}
}

// baseName strips everything up to the final path separator.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
