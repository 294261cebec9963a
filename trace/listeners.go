package trace

import (
	"sync"

	"github.com/go-logr/logr"
)

// LogrListener forwards events to a logr.Logger.
//
//	LevelDebug   → logger.V(1).Info
//	LevelInfo    → logger.Info
//	LevelWarning → logger.Info with severity="warning"
//
// The rendered message is the log message and the event fields become
// key/value pairs, followed by "seq".
func LogrListener(logger logr.Logger) Listener {
	return func(ev Event) {
		kv := append(ev.KeysAndValues(), "seq", ev.Seq)
		switch ev.Level {
		case LevelDebug:
			logger.V(1).Info(ev.Message(), kv...)
		case LevelWarning:
			logger.Info(ev.Message(), append(kv, "severity", "warning")...)
		default:
			logger.Info(ev.Message(), kv...)
		}
	}
}

// Recorder keeps every event it receives. Its Listen method is a Listener.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Listen records ev.
func (r *Recorder) Listen(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}

// Messages returns the rendered messages of the recorded events.
func (r *Recorder) Messages() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Message()
	}

	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
