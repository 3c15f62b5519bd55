// Package message provides the process-wide message log shown under every view.
package message

import "sync"

// Sink receives log messages.
type Sink interface {
	Add(message string)
}

// Log is an append-only list of messages in insertion order. Clear is the only removal.
// It is safe for concurrent use; Bubble Tea commands append from their own goroutines.
type Log struct {
	mu       sync.RWMutex
	messages []string
}

// Ensure Log implements Sink.
var _ Sink = (*Log)(nil)

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Add appends message.
func (l *Log) Add(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)
}

// Clear removes all messages.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}

// Messages returns a copy of the messages, oldest first.
func (l *Log) Messages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.messages))
	copy(out, l.messages)
	return out
}

// Tail returns at most n of the newest messages, oldest first.
func (l *Log) Tail(n int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	start := max(len(l.messages)-n, 0)
	out := make([]string, len(l.messages)-start)
	copy(out, l.messages[start:])
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
