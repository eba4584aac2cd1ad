package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for chart engine logging.

// ChartKind adds the active chart kind.
func ChartKind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("kind", kind)
	}
}

// FromKind adds a from_kind field for transitions.
func FromKind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("from_kind", kind)
	}
}

// ToKind adds a to_kind field for transitions.
func ToKind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("to_kind", kind)
	}
}

// Rows adds an accepted row count.
func Rows(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("rows", n)
	}
}

// Series adds a series count.
func Series(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("series", n)
	}
}

// Skipped adds a skipped row count.
func Skipped(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("skipped", n)
	}
}

// Restored adds whether data came from the input cache.
func Restored(restored bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("restored", restored)
	}
}

// Param adds a style parameter name and value.
func Param(name, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("param", name).Str("value", value)
	}
}

// IconID adds an icon id.
func IconID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("icon", id)
	}
}

// Generation adds a pictogram frame generation.
func Generation(gen uint64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("generation", int64(gen))
	}
}

// Count adds a generic count under key.
func Count(key string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, n)
	}
}

// Path adds a file path.
func Path(p string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", p)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
