// Package history keeps the ordered log of statements a session has
// accepted, verbatim as they were submitted.
package history

import "github.com/google/uuid"

// Entry is one accepted statement.
type Entry struct {
	ID   uuid.UUID
	Text string
}

// Log accumulates entries in acceptance order.
type Log struct {
	entries []Entry
}

func New() *Log {
	return &Log{}
}

// Record appends a statement and returns its entry.
func (l *Log) Record(text string) Entry {
	e := Entry{ID: uuid.New(), Text: text}
	l.entries = append(l.entries, e)
	return e
}

func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of the log in acceptance order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Statements returns just the statement texts in acceptance order.
func (l *Log) Statements() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Text
	}
	return out
}
