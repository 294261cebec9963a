package trace

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Level is the severity of an Event.
type Level int

const (
	// LevelDebug carries detail below the per-turn granularity.
	LevelDebug Level = iota
	// LevelInfo carries coarse per-turn / per-round decisions.
	LevelInfo
	// LevelWarning carries unusual outcomes.
	LevelWarning
	// LevelOff is above every emitted level; a listener at LevelOff gets nothing.
	LevelOff
)

// DefaultListenerLevel is the minimum level used by Attach when the caller
// passes no explicit level through AttachDefault.
const DefaultListenerLevel = LevelWarning

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelOff:
		return "off"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps "debug", "info", "warning"/"warn" and "off" (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn", "":
		return LevelWarning, nil
	case "off", "none":
		return LevelOff, nil
	default:
		return LevelOff, fmt.Errorf("trace: unknown level %q", s)
	}
}

// Field is one structured key/value pair of an Event.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Event is a single trace record.
//
// Template holds {key} placeholders that Message fills from Fields, so the
// rendered string is only built when a listener asks for it.
type Event struct {
	Seq      uint64
	Time     time.Time
	Level    Level
	Template string
	Fields   []Field
}

// Field returns the value stored under key.
func (e Event) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Message renders Template with Field values. Unknown placeholders are left
// as they are.
func (e Event) Message() string {
	if len(e.Fields) == 0 || !strings.Contains(e.Template, "{") {
		return e.Template
	}
	pairs := make([]string, 0, 2*len(e.Fields))
	for _, f := range e.Fields {
		pairs = append(pairs, "{"+f.Key+"}", formatValue(f.Value))
	}

	return strings.NewReplacer(pairs...).Replace(e.Template)
}

// KeysAndValues flattens Fields into the alternating form used by logr.
func (e Event) KeysAndValues() []any {
	kv := make([]any, 0, 2*len(e.Fields))
	for _, f := range e.Fields {
		kv = append(kv, f.Key, f.Value)
	}

	return kv
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Listener receives events. Listeners run synchronously on the emitting
// goroutine, in attach order.
type Listener func(Event)
