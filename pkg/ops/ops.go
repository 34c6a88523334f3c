package ops

import (
	"errors"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/l7mp/opdispatch/pkg/operator"
)

var (
	unaryTable  = operator.NewUnaryTable()
	binaryTable = operator.NewBinaryTable()

	intType = typeOf[int]()

	errNilReference = errors.New("nil reference")
)

// SetLogger sets the logger of the default operator tables.
func SetLogger(log logr.Logger) {
	unaryTable.SetLogger(log.WithName("unary-table"))
	binaryTable.SetLogger(log.WithName("binary-table"))
}

// UnaryTable returns the table serving the single-operand functions of the package.
func UnaryTable() *operator.UnaryTable { return unaryTable }

// BinaryTable returns the table serving the two-operand functions and conversions of the package.
func BinaryTable() *operator.BinaryTable { return binaryTable }

// IsNotNull reports whether v is not null: always true for plain values, presence for optionals and
// non-nil for reference types.
func IsNotNull[T any](v T) bool {
	return unaryTable.NotNull(typeOf[T]()).NotNull(valueOf(v))
}

// DefaultOf returns the zero bit-pattern of T. For an optional this is the absent value.
func DefaultOf[T any]() T {
	return as[T](unaryTable.Default(typeOf[T]()))
}

// ZeroOf returns the zero value of T. For an optional this is the present zero of the underlying type.
func ZeroOf[T any]() T {
	return as[T](unaryTable.Zero(typeOf[T]()))
}

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }

// valueOf keeps the static type of v, so that nil interfaces survive reflection.
func valueOf[T any](v T) reflect.Value { return reflect.ValueOf(&v).Elem() }

func as[T any](v reflect.Value) T {
	if v.IsValid() {
		if ret, ok := v.Interface().(T); ok {
			return ret
		}
	}
	var zero T
	return zero
}

func assign[T any](p *T, f func(T) (T, error)) error {
	if p == nil {
		return errNilReference
	}
	ret, err := f(*p)
	if err != nil {
		return err
	}
	*p = ret
	return nil
}
