// Package potatolog keeps structured log entries in memory so that the
// terminal front end can show them.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter.
var GlobalMemoryLogReaderWriter = MemoryLogReaderWriter{
	log: []LogEntry{},
}

// MemoryLogReaderWriter is a simple in-memory log reader and writer.
// Zerolog writes its JSON lines into it; it is safe for concurrent use, as
// persistence results are logged from background goroutines.
type MemoryLogReaderWriter struct {
	mtx sync.Mutex
	log []LogEntry
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	return len(p), nil
}

// Get returns a copy of the log.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	result := make([]LogEntry, len(w.log))
	copy(result, w.log)
	return result
}

// Tail returns the most recent n entries, oldest first.
func (w *MemoryLogReaderWriter) Tail(n int) []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if n > len(w.log) {
		n = len(w.log)
	}
	if n <= 0 {
		return nil
	}
	result := make([]LogEntry, n)
	copy(result, w.log[len(w.log)-n:])
	return result
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
	Tail(n int) []LogEntry
}

// Message renders the entry's level and message on one line, e.g. for a
// status bar.
func Message(entry LogEntry) string {
	level, _ := entry["level"].(string)
	message, _ := entry["message"].(string)
	if errStr, ok := entry["error"].(string); ok && errStr != "" {
		message += ": " + errStr
	}
	if level == "" {
		return message
	}
	return level + ": " + message
}
