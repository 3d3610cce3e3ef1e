package logging

import "sync"

// Observer receives the full history after every new entry.
type Observer func(history []Entry)

// LogStore is an ordered collection of entries without duplicates. It is thread-safe.
//
// The observer is called on the goroutine that added the entry, after the lock
// has been released. It must not wait on work that itself adds to the same store.
type LogStore struct {
	mu       sync.Mutex
	history  []Entry
	seen     map[Entry]struct{}
	observer Observer
}

// NewLogStore creates a new, empty LogStore.
func NewLogStore() *LogStore {
	return &LogStore{
		history: make([]Entry, 0, 1024),
		seen:    make(map[Entry]struct{}, 1024),
	}
}

// Add appends entry unless an identical one is already stored. It reports whether
// the entry was new. The observer is only notified for new entries.
func (s *LogStore) Add(entry Entry) bool {
	s.mu.Lock()
	if _, ok := s.seen[entry]; ok {
		s.mu.Unlock()
		return false
	}
	s.seen[entry] = struct{}{}
	s.history = append(s.history, entry)

	observer := s.observer
	var snapshot []Entry
	if observer != nil {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if observer != nil {
		observer(snapshot)
	}
	return true
}

// History returns a copy of all entries in insertion order.
func (s *LogStore) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of stored entries.
func (s *LogStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Clear removes every entry. Entries seen before the call are accepted again afterwards.
func (s *LogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = make([]Entry, 0, 1024)
	s.seen = make(map[Entry]struct{}, 1024)
}

// SetObserver registers the single observer, replacing any previous one.
// Passing nil removes it.
func (s *LogStore) SetObserver(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = observer
}

func (s *LogStore) snapshotLocked() []Entry {
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}
