package ingestion

import (
	"fmt"
	"sync"
	"time"
)

// maxLogEntries bounds the rolling processing log.
const maxLogEntries = 100

// LogEntry is one timestamped processing event.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// ProcessingLog keeps the most recent ingestion events so callers can show
// a live activity feed. Oldest entries are evicted once the log is full.
// Safe for concurrent use.
type ProcessingLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewProcessingLog creates an empty log.
func NewProcessingLog() *ProcessingLog {
	return &ProcessingLog{}
}

// Append records a formatted event with the current timestamp.
func (l *ProcessingLog) Append(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{
		Timestamp: time.Now().UTC(),
		Message:   fmt.Sprintf(format, args...),
	})
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

// Entries returns a copy of the current log, oldest first.
func (l *ProcessingLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
