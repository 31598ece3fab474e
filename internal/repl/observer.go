package repl

import (
	"log/slog"
	"time"
)

// EventType names a lifecycle phase of statement execution.
type EventType string

const (
	EventParseStart  EventType = "parse_start"
	EventParseEnd    EventType = "parse_end"
	EventExecStart   EventType = "exec_start"
	EventExecEnd     EventType = "exec_end"
	EventScriptStart EventType = "script_start"
	EventScriptEnd   EventType = "script_end"
)

// Event is one lifecycle notification. Err is set on the *End events
// when the phase failed.
type Event struct {
	Type      EventType
	Statement string
	Timestamp time.Time
	Err       error
}

// Observer receives events at major execution phases.
type Observer interface {
	OnEvent(event Event)
}

// AddObserver subscribes an observer to this session's events.
func (s *Session) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// RemoveObserver unsubscribes a previously added observer.
func (s *Session) RemoveObserver(o Observer) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Session) notify(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, o := range s.observers {
		o.OnEvent(event)
	}
}

// LoggingObserver forwards every event to structured logging, one debug
// record per phase.
type LoggingObserver struct {
	logger *slog.Logger
}

func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

func (lo *LoggingObserver) OnEvent(event Event) {
	if event.Err != nil {
		lo.logger.Debug("statement lifecycle",
			"event", event.Type,
			"statement", event.Statement,
			"error", event.Err,
		)
		return
	}
	lo.logger.Debug("statement lifecycle",
		"event", event.Type,
		"statement", event.Statement,
	)
}
