package trace

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// registration is one attached listener.
type registration struct {
	id     uint64
	min    Level
	listen Listener
}

// Tracer fans events out to its attached listeners.
//
// All methods are safe for concurrent use. Emit snapshots the listener set
// under a read lock and calls listeners outside of it, so a listener may
// attach or detach others.
type Tracer struct {
	mu        sync.RWMutex
	listeners map[uint64]registration
	nextID    uint64

	seq atomic.Uint64
	now func() time.Time
}

var defaultTracer = New()

// Default returns the process-wide tracer used when a caller does not
// supply one.
func Default() *Tracer { return defaultTracer }

// New returns a tracer with no listeners.
func New() *Tracer {
	return &Tracer{listeners: make(map[uint64]registration), now: time.Now}
}

// Attach registers l for events at level min or above and returns a func
// that detaches it. Calling the detach func more than once is harmless.
// Attaching to a nil Tracer returns a no-op detach.
func (t *Tracer) Attach(l Listener, min Level) (detach func()) {
	if t == nil || l == nil {
		return func() {}
	}
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.listeners[id] = registration{id: id, min: min, listen: l}
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// AttachDefault is Attach at DefaultListenerLevel.
func (t *Tracer) AttachDefault(l Listener) (detach func()) {
	return t.Attach(l, DefaultListenerLevel)
}

// Scope attaches l for the duration of fn and detaches it when fn returns,
// including when fn panics. fn's error is returned unchanged.
func (t *Tracer) Scope(l Listener, min Level, fn func() error) error {
	detach := t.Attach(l, min)
	defer detach()

	return fn()
}

// Enabled reports whether an event at level would reach any listener.
// Algorithms use it to skip building expensive fields.
func (t *Tracer) Enabled(level Level) bool {
	if t == nil {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.listeners {
		if level >= r.min && level < LevelOff {
			return true
		}
	}

	return false
}

// Len returns the number of attached listeners.
func (t *Tracer) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.listeners)
}

// Emit delivers an event to every listener whose minimum level admits it.
// Sequence numbers are assigned only to delivered events.
func (t *Tracer) Emit(level Level, template string, fields ...Field) {
	if t == nil || level >= LevelOff {
		return
	}
	targets := t.snapshot(level)
	if len(targets) == 0 {
		return
	}

	ev := Event{
		Seq:      t.seq.Add(1),
		Time:     t.now(),
		Level:    level,
		Template: template,
		Fields:   fields,
	}
	for _, r := range targets {
		r.listen(ev)
	}
}

// snapshot returns the listeners admitting level, in attach order.
func (t *Tracer) snapshot(level Level) []registration {
	t.mu.RLock()
	out := make([]registration, 0, len(t.listeners))
	for _, r := range t.listeners {
		if level >= r.min {
			out = append(out, r)
		}
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })

	return out
}

// Debug emits at LevelDebug.
func (t *Tracer) Debug(template string, fields ...Field) { t.Emit(LevelDebug, template, fields...) }

// Info emits at LevelInfo.
func (t *Tracer) Info(template string, fields ...Field) { t.Emit(LevelInfo, template, fields...) }

// Warning emits at LevelWarning.
func (t *Tracer) Warning(template string, fields ...Field) { t.Emit(LevelWarning, template, fields...) }
