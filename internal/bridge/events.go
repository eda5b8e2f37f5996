package bridge

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event is one plugin-originated notification, e.g. "task:update" or
// "current-task:change".
type Event struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// EventLog retains the most recent plugin events so callers without a
// push channel (the REST surface, diagnostics) can observe what the
// application has been broadcasting. Oldest entries are evicted first.
type EventLog struct {
	mu   sync.Mutex
	buf  []Event
	max  int
	log  *slog.Logger
	now  func() time.Time
	seen uint64
}

func NewEventLog(max int, log *slog.Logger) *EventLog {
	if max <= 0 {
		max = 100
	}
	if log == nil {
		log = slog.Default()
	}
	return &EventLog{max: max, log: log, now: time.Now}
}

// AppEvent implements EventSink.
func (l *EventLog) AppEvent(name string, payload json.RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen++
	l.buf = append(l.buf, Event{Name: name, Payload: payload, At: l.now()})
	if len(l.buf) > l.max {
		l.buf = l.buf[len(l.buf)-l.max:]
	}
	l.log.Debug("plugin event", "event", name)
}

// Recent returns up to limit events, newest last. limit <= 0 means all
// retained events.
func (l *EventLog) Recent(limit int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.buf)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Event, n)
	copy(out, l.buf[len(l.buf)-n:])
	return out
}

// Seen returns the total number of events received since startup,
// including evicted ones.
func (l *EventLog) Seen() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen
}
