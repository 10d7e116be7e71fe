package event

import (
	"context"
	"reflect"
)

// Sink is an event destination owned by the host tree.
//
// Sinks are compared by identity: the dynamic type of every Sink must be
// comparable, and pointer types are expected.
type Sink interface {
	// Label returns a stable, human-readable name used in traces.
	Label() string
}

// Dispatcher delivers a built event to a sink.
//
// Dispatch is synchronous: listeners triggered by delivery complete before
// it returns.
type Dispatcher interface {
	Dispatch(ctx context.Context, target Sink, ev *Event) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, target Sink, ev *Event) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, target Sink, ev *Event) error {
	return f(ctx, target, ev)
}

// IsNil reports whether s is nil or holds a nil pointer.
func IsNil(s Sink) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// LabelOf returns the sink label, or "" for a nil sink.
func LabelOf(s Sink) string {
	if IsNil(s) {
		return ""
	}
	return s.Label()
}
