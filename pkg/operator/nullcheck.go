package operator

import (
	"reflect"

	"github.com/l7mp/opdispatch/pkg/nullable"
)

// Nullability classifies how a type can be null.
type Nullability int

const (
	// NotNullable types are plain values that are never null.
	NotNullable Nullability = iota
	// NullableValue types are optionals, null when absent.
	NullableValue
	// Reference types are pointers, maps, slices, channels, functions and interfaces, null when nil.
	Reference
)

func (n Nullability) String() string {
	switch n {
	case NullableValue:
		return "NullableValue"
	case Reference:
		return "Reference"
	default:
		return "NotNullable"
	}
}

// NullCheck tells whether values of a type are non-null.
type NullCheck struct {
	Nullability Nullability
	check       func(v reflect.Value) bool
}

// NotNull reports whether v is not null.
func (nc NullCheck) NotNull(v reflect.Value) bool { return nc.check(v) }

func newNullCheck(t reflect.Type) NullCheck {
	if nullable.IsOptional(t) {
		return NullCheck{Nullability: NullableValue, check: func(v reflect.Value) bool {
			return v.Interface().(nullable.Lifted).HasValue()
		}}
	}

	switch t.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface,
		reflect.UnsafePointer:
		return NullCheck{Nullability: Reference, check: func(v reflect.Value) bool {
			return v.IsValid() && !v.IsNil()
		}}
	}

	return NullCheck{Nullability: NotNullable, check: func(reflect.Value) bool { return true }}
}
