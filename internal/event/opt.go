package event

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Opt is an optional field: present with a value, or absent.
// The zero value is absent.
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field is present.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Value returns the value, or the zero value of T when absent.
func (o Opt[T]) Value() T {
	return o.value
}

// Or returns the value when present, def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Over merges o over stored: o wins when present.
func (o Opt[T]) Over(stored Opt[T]) Opt[T] {
	if o.set {
		return o
	}
	return stored
}

// String implements fmt.Stringer.
func (o Opt[T]) String() string {
	if !o.set {
		return "<absent>"
	}
	return fmt.Sprint(o.value)
}

// UnmarshalYAML marks the field present whenever its key appears.
// An explicit null leaves it absent.
func (o *Opt[T]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := value.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
