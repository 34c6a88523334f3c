package graph

import (
	"reflect"

	"github.com/l7mp/opdispatch/pkg/nullable"
)

// IsInteger reports whether k is a signed or unsigned integer kind.
func IsInteger(k reflect.Kind) bool {
	switch k { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsSigned reports whether k is a signed integer kind.
func IsSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

// IsFloat reports whether k is a floating-point kind.
func IsFloat(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

// IsComplex reports whether k is a complex kind.
func IsComplex(k reflect.Kind) bool { return k == reflect.Complex64 || k == reflect.Complex128 }

// IsNumeric reports whether k supports the arithmetic operators.
func IsNumeric(k reflect.Kind) bool { return IsInteger(k) || IsFloat(k) || IsComplex(k) }

// IsOrdered reports whether k supports the ordering operators.
func IsOrdered(k reflect.Kind) bool { return IsInteger(k) || IsFloat(k) || k == reflect.String }

func intrinsicUnary(kind Kind, t reflect.Type) bool {
	k := t.Kind()
	switch kind { //nolint:exhaustive
	case Negate, Increment, Decrement:
		return IsNumeric(k)
	case Not:
		return k == reflect.Bool || IsInteger(k)
	case Complement:
		return IsInteger(k)
	case IsTrue, IsFalse:
		return k == reflect.Bool
	}
	return false
}

func intrinsicBinary(kind Kind, l, r reflect.Type) bool {
	k := l.Kind()
	if kind.IsShift() {
		return IsInteger(k) && IsInteger(r.Kind())
	}
	if l != r {
		return false
	}
	switch kind { //nolint:exhaustive
	case Add:
		return IsNumeric(k) || k == reflect.String
	case Subtract, Multiply, Divide:
		return IsNumeric(k)
	case Modulo:
		return IsInteger(k)
	case And, Or, Xor:
		return IsInteger(k) || k == reflect.Bool
	case Equal, NotEqual:
		return l.Comparable()
	case LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual:
		return IsOrdered(k)
	case AndAlso, OrElse:
		return k == reflect.Bool
	}
	return false
}

// methodOperator looks up the operator method of t taking the given extra argument types.
func methodOperator(kind Kind, t reflect.Type, args ...reflect.Type) (reflect.Method, bool) {
	name := kind.MethodName()
	if name == "" || t.Kind() == reflect.Interface {
		return reflect.Method{}, false
	}
	m, ok := t.MethodByName(name)
	if !ok {
		return reflect.Method{}, false
	}
	mt := m.Type
	if mt.IsVariadic() || mt.NumIn() != len(args)+1 || mt.NumOut() != 1 {
		return reflect.Method{}, false
	}
	for i, a := range args {
		if !a.AssignableTo(mt.In(i + 1)) {
			return reflect.Method{}, false
		}
	}
	return m, true
}

// truthMethod reports whether t has a True() bool method.
func truthMethod(t reflect.Type) bool {
	m, ok := t.MethodByName("True")
	return ok && m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == boolType
}

func resolveUnary(kind Kind, t reflect.Type) (Impl, reflect.Type, error) {
	if m, ok := methodOperator(kind, t); ok {
		out := m.Type.Out(0)
		if kind.IsPredicate() && out != boolType {
			return Impl{}, nil, NewUnsupportedOperatorError(kind, t)
		}
		return Impl{Mode: MethodCall, Method: m}, out, nil
	}

	if intrinsicUnary(kind, t) {
		if kind.IsPredicate() {
			return Impl{Mode: Intrinsic}, boolType, nil
		}
		return Impl{Mode: Intrinsic}, t, nil
	}

	if elem, ok := nullable.Elem(t); ok {
		inner, out, err := resolveUnary(kind, elem)
		if err != nil {
			return Impl{}, nil, NewUnsupportedOperatorError(kind, t)
		}
		impl := Impl{Mode: Lifted, Elem: elem, Inner: &inner}
		switch {
		case kind.IsPredicate():
			return impl, boolType, nil
		case out == elem:
			return impl, t, nil
		}
	}

	return Impl{}, nil, NewUnsupportedOperatorError(kind, t)
}

func resolveBinary(kind Kind, l, r reflect.Type) (Impl, reflect.Type, error) {
	if kind != AndAlso && kind != OrElse {
		if m, ok := methodOperator(kind, l, r); ok {
			out := m.Type.Out(0)
			if !kind.IsComparison() {
				return Impl{Mode: MethodCall, Method: m}, out, nil
			}
			if out == boolType {
				return Impl{Mode: MethodCall, Method: m}, boolType, nil
			}
			if truthMethod(out) {
				return Impl{Mode: MethodCall, Method: m, Truth: true}, boolType, nil
			}
		}
	}

	if intrinsicBinary(kind, l, r) {
		if kind.IsPredicate() {
			return Impl{Mode: Intrinsic}, boolType, nil
		}
		return Impl{Mode: Intrinsic}, l, nil
	}

	if elem, ok := nullable.Elem(l); ok && l == r && kind != AndAlso && kind != OrElse {
		inner, out, err := resolveBinary(kind, elem, elem)
		if err != nil {
			return Impl{}, nil, NewUnsupportedOperatorError(kind, l, r)
		}
		impl := Impl{Mode: Lifted, Elem: elem, Inner: &inner}
		switch {
		case kind.IsComparison():
			return impl, boolType, nil
		case out == elem:
			return impl, l, nil
		}
	}

	return Impl{}, nil, NewUnsupportedOperatorError(kind, l, r)
}

func planConversion(from, to reflect.Type) (ConversionPlan, error) {
	fromElem, fromOpt := nullable.Elem(from)
	toElem, toOpt := nullable.Elem(to)

	switch {
	case fromOpt && toOpt:
		// Optional[A] -> Optional[B]
		if convertible(fromElem, toElem) {
			return ConversionPlan{Unwrap: true, Via: toElem, Wrap: true}, nil
		}
	case toOpt:
		// A -> Optional[B]
		if convertible(from, toElem) {
			return ConversionPlan{Via: toElem, Wrap: true}, nil
		}
	case fromOpt && !convertible(from, to):
		// Optional[A] -> B
		if convertible(fromElem, to) {
			return ConversionPlan{Unwrap: true, Via: to}, nil
		}
	default:
		if convertible(from, to) {
			return ConversionPlan{Via: to}, nil
		}
	}

	return ConversionPlan{}, NewUnsupportedConversionError(from, to)
}

// convertible reports whether Go converts from into to by value. Integer to string conversions yield
// a rune, not the number, and are rejected.
func convertible(from, to reflect.Type) bool {
	if IsInteger(from.Kind()) && to.Kind() == reflect.String {
		return false
	}
	return from.ConvertibleTo(to)
}
