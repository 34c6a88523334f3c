package ops

import (
	"fmt"

	"github.com/l7mp/opdispatch/pkg/graph"
)

// Binary applies the arithmetic or bitwise operator kind to v and a. The result has the type of v.
func Binary[T, A any](kind graph.Kind, v T, a A) (T, error) {
	var zero T
	if !kind.IsBinary() || kind.IsShift() || kind.IsComparison() || kind.IsPredicate() {
		return zero, fmt.Errorf("operator %s is not an arithmetic or bitwise operator", kind)
	}
	p, err := binaryTable.Get(kind, typeOf[T](), typeOf[A]())
	if err != nil {
		return zero, err
	}
	ret, err := p.Call(valueOf(v), valueOf(a))
	if err != nil {
		return zero, err
	}
	return as[T](ret), nil
}

// Add returns v + a.
func Add[T, A any](v T, a A) (T, error) { return Binary(graph.Add, v, a) }

// Subtract returns v - a.
func Subtract[T, A any](v T, a A) (T, error) { return Binary(graph.Subtract, v, a) }

// Multiply returns v * a.
func Multiply[T, A any](v T, a A) (T, error) { return Binary(graph.Multiply, v, a) }

// Divide returns v / a.
func Divide[T, A any](v T, a A) (T, error) { return Binary(graph.Divide, v, a) }

// Modulo returns v % a.
func Modulo[T, A any](v T, a A) (T, error) { return Binary(graph.Modulo, v, a) }

// And returns v & a.
func And[T, A any](v T, a A) (T, error) { return Binary(graph.And, v, a) }

// Or returns v | a.
func Or[T, A any](v T, a A) (T, error) { return Binary(graph.Or, v, a) }

// Xor returns v ^ a.
func Xor[T, A any](v T, a A) (T, error) { return Binary(graph.Xor, v, a) }

// BinaryAssign performs *p = *p <kind> a.
func BinaryAssign[T, A any](kind graph.Kind, p *T, a A) error {
	return assign(p, func(v T) (T, error) { return Binary(kind, v, a) })
}

// AddAssign performs *p += a.
func AddAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Add, p, a) }

// SubtractAssign performs *p -= a.
func SubtractAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Subtract, p, a) }

// MultiplyAssign performs *p *= a.
func MultiplyAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Multiply, p, a) }

// DivideAssign performs *p /= a.
func DivideAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Divide, p, a) }

// ModuloAssign performs *p %= a.
func ModuloAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Modulo, p, a) }

// AndAssign performs *p &= a.
func AndAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.And, p, a) }

// OrAssign performs *p |= a.
func OrAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Or, p, a) }

// XorAssign performs *p ^= a.
func XorAssign[T, A any](p *T, a A) error { return BinaryAssign(graph.Xor, p, a) }

// Shift returns v << amount if left is set and v >> amount otherwise.
func Shift[T any](v T, amount int, left bool) (T, error) {
	var zero T
	kind := graph.ShiftRight
	if left {
		kind = graph.ShiftLeft
	}
	p, err := binaryTable.Get(kind, typeOf[T](), intType)
	if err != nil {
		return zero, err
	}
	ret, err := p.Call(valueOf(v), valueOf(amount))
	if err != nil {
		return zero, err
	}
	return as[T](ret), nil
}

// ShiftAssign performs *p <<= amount or *p >>= amount.
func ShiftAssign[T any](p *T, amount int, left bool) error {
	return assign(p, func(v T) (T, error) { return Shift(v, amount, left) })
}

// Compare applies the comparison kind to v and other. The argument is converted to the type of v
// first.
func Compare[T, A any](kind graph.Kind, v T, other A) (bool, error) {
	if !kind.IsComparison() {
		return false, fmt.Errorf("operator %s is not a comparison", kind)
	}
	p, err := binaryTable.Get(kind, typeOf[T](), typeOf[A]())
	if err != nil {
		return false, err
	}
	ret, err := p.Call(valueOf(v), valueOf(other))
	if err != nil {
		return false, err
	}
	return ret.Bool(), nil
}

// Equal reports whether v == other.
func Equal[T, A any](v T, other A) (bool, error) { return Compare(graph.Equal, v, other) }

// NotEqual reports whether v != other.
func NotEqual[T, A any](v T, other A) (bool, error) { return Compare(graph.NotEqual, v, other) }

// LessThan reports whether v < other.
func LessThan[T, A any](v T, other A) (bool, error) { return Compare(graph.LessThan, v, other) }

// LessThanOrEqual reports whether v <= other.
func LessThanOrEqual[T, A any](v T, other A) (bool, error) {
	return Compare(graph.LessThanOrEqual, v, other)
}

// GreaterThan reports whether v > other.
func GreaterThan[T, A any](v T, other A) (bool, error) { return Compare(graph.GreaterThan, v, other) }

// GreaterThanOrEqual reports whether v >= other.
func GreaterThanOrEqual[T, A any](v T, other A) (bool, error) {
	return Compare(graph.GreaterThanOrEqual, v, other)
}

// Convert converts v to U using Go's conversion rules, wrapping into and unwrapping from optionals.
func Convert[T, U any](v T) (U, error) {
	var zero U
	p, err := binaryTable.Convert(typeOf[T](), typeOf[U]())
	if err != nil {
		return zero, err
	}
	ret, err := p.Call(valueOf(v))
	if err != nil {
		return zero, err
	}
	return as[U](ret), nil
}
