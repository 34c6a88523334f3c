// Package nullable provides Optional, a value type that may be absent.
//
// Optional plays the role of a nullable value type for the operator engine: operators over Optional[T]
// are lifted from T, the null check reports presence, and the zero value (absent) differs from the
// default-constructed underlying value.
package nullable

import (
	"fmt"
	"reflect"
)

var liftedType = reflect.TypeFor[Lifted]()

// Lifted is implemented by every Optional instantiation. It lets type-erased code inspect and build
// optional values without knowing the type argument.
type Lifted interface {
	// HasValue reports whether the value is present.
	HasValue() bool
	// ElemType returns the underlying type.
	ElemType() reflect.Type
	// Unwrap returns the underlying value and whether it is present.
	Unwrap() (reflect.Value, bool)
	// Lift returns a present optional of the receiver's type holding v.
	Lift(v reflect.Value) reflect.Value
}

// Optional holds a value of type T that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	valid bool
}

// Of returns a present optional.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns an absent optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.valid }

// HasValue reports whether the value is present.
func (o Optional[T]) HasValue() bool { return o.valid }

// Value returns the value, or the zero value of T when absent.
func (o Optional[T]) Value() T { return o.value }

// ValueOr returns the value, or def when absent.
func (o Optional[T]) ValueOr(def T) T {
	if !o.valid {
		return def
	}
	return o.value
}

func (o Optional[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

func (o Optional[T]) Unwrap() (reflect.Value, bool) {
	return reflect.ValueOf(&o.value).Elem(), o.valid
}

func (o Optional[T]) Lift(v reflect.Value) reflect.Value {
	ret := Optional[T]{valid: true}
	if v.IsValid() {
		reflect.ValueOf(&ret.value).Elem().Set(v)
	}
	return reflect.ValueOf(ret)
}

// String renders the value or "<absent>".
func (o Optional[T]) String() string {
	if !o.valid {
		return "<absent>"
	}
	return fmt.Sprintf("%v", o.value)
}

// Elem returns the underlying type if t is an Optional instantiation.
func Elem(t reflect.Type) (reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Struct || !t.Implements(liftedType) {
		return nil, false
	}
	return reflect.Zero(t).Interface().(Lifted).ElemType(), true
}

// IsOptional reports whether t is an Optional instantiation.
func IsOptional(t reflect.Type) bool {
	_, ok := Elem(t)
	return ok
}

// Unwrap returns the underlying value of an optional held in v and whether it is present.
func Unwrap(v reflect.Value) (reflect.Value, bool) {
	return v.Interface().(Lifted).Unwrap()
}

// Lift wraps v into a present optional of type t.
func Lift(t reflect.Type, v reflect.Value) reflect.Value {
	return reflect.Zero(t).Interface().(Lifted).Lift(v)
}

// Absent returns the absent optional of type t.
func Absent(t reflect.Type) reflect.Value {
	return reflect.Zero(t)
}
