package compiler

import (
	"fmt"
	"reflect"

	"github.com/l7mp/opdispatch/pkg/graph"
)

type unaryFn func(v reflect.Value) (reflect.Value, error)

type binaryFn func(a, b reflect.Value) (reflect.Value, error)

// numeric classes of the operand kinds
type class int

const (
	classNone class = iota
	classSigned
	classUnsigned
	classFloat
	classComplex
	classString
	classBool
)

func classOf(t reflect.Type) class {
	k := t.Kind()
	switch {
	case graph.IsSigned(k):
		return classSigned
	case graph.IsInteger(k):
		return classUnsigned
	case graph.IsFloat(k):
		return classFloat
	case graph.IsComplex(k):
		return classComplex
	case k == reflect.String:
		return classString
	case k == reflect.Bool:
		return classBool
	}
	return classNone
}

// The setters truncate to the width of t, which yields Go's wrap-around semantics for narrow types.

func newInt(t reflect.Type, x int64) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetInt(x)
	return v
}

func newUint(t reflect.Type, x uint64) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetUint(x)
	return v
}

func newFloat(t reflect.Type, x float64) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetFloat(x)
	return v
}

func newComplex(t reflect.Type, x complex128) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetComplex(x)
	return v
}

func newString(t reflect.Type, x string) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetString(x)
	return v
}

func newBool(t reflect.Type, x bool) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetBool(x)
	return v
}

func intrinsicUnary(kind graph.Kind, t reflect.Type) (unaryFn, error) {
	c := classOf(t)
	switch kind { //nolint:exhaustive
	case graph.Negate:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(v reflect.Value) (reflect.Value, error) { return newInt(t, -v.Int()), nil }, nil
		case classUnsigned:
			return func(v reflect.Value) (reflect.Value, error) { return newUint(t, -v.Uint()), nil }, nil
		case classFloat:
			return func(v reflect.Value) (reflect.Value, error) { return newFloat(t, -v.Float()), nil }, nil
		case classComplex:
			return func(v reflect.Value) (reflect.Value, error) { return newComplex(t, -v.Complex()), nil }, nil
		}

	case graph.Not, graph.Complement:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(v reflect.Value) (reflect.Value, error) { return newInt(t, ^v.Int()), nil }, nil
		case classUnsigned:
			return func(v reflect.Value) (reflect.Value, error) { return newUint(t, ^v.Uint()), nil }, nil
		case classBool:
			if kind == graph.Not {
				return func(v reflect.Value) (reflect.Value, error) { return newBool(t, !v.Bool()), nil }, nil
			}
		}

	case graph.Increment, graph.Decrement:
		d := int64(1)
		if kind == graph.Decrement {
			d = -1
		}
		switch c { //nolint:exhaustive
		case classSigned:
			return func(v reflect.Value) (reflect.Value, error) { return newInt(t, v.Int()+d), nil }, nil
		case classUnsigned:
			return func(v reflect.Value) (reflect.Value, error) { return newUint(t, v.Uint()+uint64(d)), nil }, nil
		case classFloat:
			return func(v reflect.Value) (reflect.Value, error) { return newFloat(t, v.Float()+float64(d)), nil }, nil
		case classComplex:
			return func(v reflect.Value) (reflect.Value, error) {
				return newComplex(t, v.Complex()+complex(float64(d), 0)), nil
			}, nil
		}

	case graph.IsTrue:
		if c == classBool {
			return func(v reflect.Value) (reflect.Value, error) { return reflect.ValueOf(v.Bool()), nil }, nil
		}

	case graph.IsFalse:
		if c == classBool {
			return func(v reflect.Value) (reflect.Value, error) { return reflect.ValueOf(!v.Bool()), nil }, nil
		}
	}

	return nil, fmt.Errorf("no intrinsic %s for %s", kind, t)
}

func intrinsicBinary(kind graph.Kind, t reflect.Type) (binaryFn, error) {
	c := classOf(t)
	switch kind { //nolint:exhaustive
	case graph.Add:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(a, b reflect.Value) (reflect.Value, error) { return newInt(t, a.Int()+b.Int()), nil }, nil
		case classUnsigned:
			return func(a, b reflect.Value) (reflect.Value, error) { return newUint(t, a.Uint()+b.Uint()), nil }, nil
		case classFloat:
			return func(a, b reflect.Value) (reflect.Value, error) { return newFloat(t, a.Float()+b.Float()), nil }, nil
		case classComplex:
			return func(a, b reflect.Value) (reflect.Value, error) {
				return newComplex(t, a.Complex()+b.Complex()), nil
			}, nil
		case classString:
			return func(a, b reflect.Value) (reflect.Value, error) {
				return newString(t, a.String()+b.String()), nil
			}, nil
		}

	case graph.Subtract:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(a, b reflect.Value) (reflect.Value, error) { return newInt(t, a.Int()-b.Int()), nil }, nil
		case classUnsigned:
			return func(a, b reflect.Value) (reflect.Value, error) { return newUint(t, a.Uint()-b.Uint()), nil }, nil
		case classFloat:
			return func(a, b reflect.Value) (reflect.Value, error) { return newFloat(t, a.Float()-b.Float()), nil }, nil
		case classComplex:
			return func(a, b reflect.Value) (reflect.Value, error) {
				return newComplex(t, a.Complex()-b.Complex()), nil
			}, nil
		}

	case graph.Multiply:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(a, b reflect.Value) (reflect.Value, error) { return newInt(t, a.Int()*b.Int()), nil }, nil
		case classUnsigned:
			return func(a, b reflect.Value) (reflect.Value, error) { return newUint(t, a.Uint()*b.Uint()), nil }, nil
		case classFloat:
			return func(a, b reflect.Value) (reflect.Value, error) { return newFloat(t, a.Float()*b.Float()), nil }, nil
		case classComplex:
			return func(a, b reflect.Value) (reflect.Value, error) {
				return newComplex(t, a.Complex()*b.Complex()), nil
			}, nil
		}

	case graph.Divide:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(a, b reflect.Value) (reflect.Value, error) {
				if b.Int() == 0 {
					return reflect.Value{}, ErrDivideByZero
				}
				return newInt(t, a.Int()/b.Int()), nil
			}, nil
		case classUnsigned:
			return func(a, b reflect.Value) (reflect.Value, error) {
				if b.Uint() == 0 {
					return reflect.Value{}, ErrDivideByZero
				}
				return newUint(t, a.Uint()/b.Uint()), nil
			}, nil
		case classFloat:
			return func(a, b reflect.Value) (reflect.Value, error) { return newFloat(t, a.Float()/b.Float()), nil }, nil
		case classComplex:
			return func(a, b reflect.Value) (reflect.Value, error) {
				return newComplex(t, a.Complex()/b.Complex()), nil
			}, nil
		}

	case graph.Modulo:
		switch c { //nolint:exhaustive
		case classSigned:
			return func(a, b reflect.Value) (reflect.Value, error) {
				if b.Int() == 0 {
					return reflect.Value{}, ErrDivideByZero
				}
				return newInt(t, a.Int()%b.Int()), nil
			}, nil
		case classUnsigned:
			return func(a, b reflect.Value) (reflect.Value, error) {
				if b.Uint() == 0 {
					return reflect.Value{}, ErrDivideByZero
				}
				return newUint(t, a.Uint()%b.Uint()), nil
			}, nil
		}

	case graph.And, graph.Or, graph.Xor:
		return bitwise(kind, t, c)

	case graph.Equal, graph.NotEqual:
		neg := kind == graph.NotEqual
		return func(a, b reflect.Value) (reflect.Value, error) {
			if !a.Comparable() || !b.Comparable() {
				return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotComparable, t)
			}
			return reflect.ValueOf(a.Equal(b) != neg), nil
		}, nil

	case graph.LessThan, graph.LessThanOrEqual, graph.GreaterThan, graph.GreaterThanOrEqual:
		return ordering(kind, t, c)
	}

	return nil, fmt.Errorf("no intrinsic %s for %s", kind, t)
}

func bitwise(kind graph.Kind, t reflect.Type, c class) (binaryFn, error) {
	switch c { //nolint:exhaustive
	case classSigned:
		return func(a, b reflect.Value) (reflect.Value, error) {
			x, y := a.Int(), b.Int()
			switch kind { //nolint:exhaustive
			case graph.And:
				return newInt(t, x&y), nil
			case graph.Or:
				return newInt(t, x|y), nil
			default:
				return newInt(t, x^y), nil
			}
		}, nil
	case classUnsigned:
		return func(a, b reflect.Value) (reflect.Value, error) {
			x, y := a.Uint(), b.Uint()
			switch kind { //nolint:exhaustive
			case graph.And:
				return newUint(t, x&y), nil
			case graph.Or:
				return newUint(t, x|y), nil
			default:
				return newUint(t, x^y), nil
			}
		}, nil
	case classBool:
		return func(a, b reflect.Value) (reflect.Value, error) {
			x, y := a.Bool(), b.Bool()
			switch kind { //nolint:exhaustive
			case graph.And:
				return newBool(t, x && y), nil
			case graph.Or:
				return newBool(t, x || y), nil
			default:
				return newBool(t, x != y), nil
			}
		}, nil
	}
	return nil, fmt.Errorf("no intrinsic %s for %s", kind, t)
}

// NaN operands are unordered: every ordering involving them is false.
func ordering(kind graph.Kind, t reflect.Type, c class) (binaryFn, error) {
	var cmp3 func(a, b reflect.Value) (int, bool)
	switch c { //nolint:exhaustive
	case classSigned:
		cmp3 = func(a, b reflect.Value) (int, bool) { return compare(a.Int(), b.Int()), true }
	case classUnsigned:
		cmp3 = func(a, b reflect.Value) (int, bool) { return compare(a.Uint(), b.Uint()), true }
	case classString:
		cmp3 = func(a, b reflect.Value) (int, bool) { return compare(a.String(), b.String()), true }
	case classFloat:
		cmp3 = func(a, b reflect.Value) (int, bool) {
			x, y := a.Float(), b.Float()
			if x != x || y != y {
				return 0, false
			}
			return compare(x, y), true
		}
	default:
		return nil, fmt.Errorf("no intrinsic %s for %s", kind, t)
	}

	return func(a, b reflect.Value) (reflect.Value, error) {
		r, ok := cmp3(a, b)
		if !ok {
			return reflect.ValueOf(false), nil
		}
		var ret bool
		switch kind { //nolint:exhaustive
		case graph.LessThan:
			ret = r < 0
		case graph.LessThanOrEqual:
			ret = r <= 0
		case graph.GreaterThan:
			ret = r > 0
		default:
			ret = r >= 0
		}
		return reflect.ValueOf(ret), nil
	}, nil
}

func compare[T int64 | uint64 | float64 | string](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func shift(kind graph.Kind, t, count reflect.Type) (binaryFn, error) {
	amount := func(b reflect.Value) (uint64, error) {
		if graph.IsSigned(count.Kind()) {
			n := b.Int()
			if n < 0 {
				return 0, fmt.Errorf("%w: %d", ErrNegativeShift, n)
			}
			return uint64(n), nil
		}
		return b.Uint(), nil
	}

	switch classOf(t) { //nolint:exhaustive
	case classSigned:
		return func(a, b reflect.Value) (reflect.Value, error) {
			n, err := amount(b)
			if err != nil {
				return reflect.Value{}, err
			}
			if kind == graph.ShiftLeft {
				return newInt(t, a.Int()<<n), nil
			}
			return newInt(t, a.Int()>>n), nil
		}, nil
	case classUnsigned:
		return func(a, b reflect.Value) (reflect.Value, error) {
			n, err := amount(b)
			if err != nil {
				return reflect.Value{}, err
			}
			if kind == graph.ShiftLeft {
				return newUint(t, a.Uint()<<n), nil
			}
			return newUint(t, a.Uint()>>n), nil
		}, nil
	}
	return nil, fmt.Errorf("no intrinsic %s for %s", kind, t)
}
