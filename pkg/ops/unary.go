package ops

import (
	"fmt"

	"github.com/l7mp/opdispatch/pkg/graph"
)

// Unary applies the unary operator kind to v.
func Unary[T any](kind graph.Kind, v T) (T, error) {
	var zero T
	if kind.IsPredicate() {
		return zero, fmt.Errorf("operator %s yields a bool, use IsTrue or IsFalse", kind)
	}
	p, err := unaryTable.Get(kind, typeOf[T]())
	if err != nil {
		return zero, err
	}
	ret, err := p.Call(valueOf(v))
	if err != nil {
		return zero, err
	}
	return as[T](ret), nil
}

// Negate returns -v.
func Negate[T any](v T) (T, error) { return Unary(graph.Negate, v) }

// Not returns !v for bools and the bitwise complement for integers.
func Not[T any](v T) (T, error) { return Unary(graph.Not, v) }

// Complement returns ^v. Only integers have a complement.
func Complement[T any](v T) (T, error) { return Unary(graph.Complement, v) }

// Increment returns v+1.
func Increment[T any](v T) (T, error) { return Unary(graph.Increment, v) }

// Decrement returns v-1.
func Decrement[T any](v T) (T, error) { return Unary(graph.Decrement, v) }

// NegateAssign performs *p = -*p.
func NegateAssign[T any](p *T) error { return assign(p, Negate[T]) }

// NotAssign performs *p = !*p.
func NotAssign[T any](p *T) error { return assign(p, Not[T]) }

// ComplementAssign performs *p = ^*p.
func ComplementAssign[T any](p *T) error { return assign(p, Complement[T]) }

// IncrementAssign performs (*p)++.
func IncrementAssign[T any](p *T) error { return assign(p, Increment[T]) }

// DecrementAssign performs (*p)--.
func DecrementAssign[T any](p *T) error { return assign(p, Decrement[T]) }

// IsTrue reports whether v is true. An absent optional is neither true nor false.
func IsTrue[T any](v T) (bool, error) { return truth(graph.IsTrue, v) }

// IsFalse reports whether v is false.
func IsFalse[T any](v T) (bool, error) { return truth(graph.IsFalse, v) }

func truth[T any](kind graph.Kind, v T) (bool, error) {
	p, err := unaryTable.Get(kind, typeOf[T]())
	if err != nil {
		return false, err
	}
	ret, err := p.Call(valueOf(v))
	if err != nil {
		return false, err
	}
	return ret.Bool(), nil
}
