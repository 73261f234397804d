// Package accessor resolves per-entity visual attributes from either
// constant values or functions of the underlying data record. Attributes are
// evaluated exactly once, at construction, into plain indexed style tables;
// nothing here is re-dispatched during simulation.
package accessor

import "fmt"

// Attribute is a tagged variant: either a constant value applied uniformly
// or a function evaluated per record. The zero Attribute is "unset" and
// callers substitute their default.
type Attribute[R, T any] struct {
	constant T
	fn       func(R) T
	set      bool
}

// Constant builds an attribute that applies the same value to every record.
func Constant[R, T any](v T) Attribute[R, T] {
	return Attribute[R, T]{constant: v, set: true}
}

// Derived builds an attribute computed per record.
func Derived[R, T any](fn func(R) T) Attribute[R, T] {
	return Attribute[R, T]{fn: fn, set: true}
}

// IsSet reports whether the attribute was configured at all.
func (a Attribute[R, T]) IsSet() bool { return a.set }

// IsConstant reports whether the attribute needs no per-record evaluation.
func (a Attribute[R, T]) IsConstant() bool { return a.set && a.fn == nil }

// Eval resolves the attribute for one record. A panic inside a user-supplied
// function is caught and surfaced as an error so construction can fail
// cleanly instead of unwinding through the engine.
func (a Attribute[R, T]) Eval(rec R) (val T, err error) {
	if !a.set {
		return val, fmt.Errorf("attribute not configured")
	}
	if a.fn == nil {
		return a.constant, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("accessor panicked: %v", r)
		}
	}()
	return a.fn(rec), nil
}
