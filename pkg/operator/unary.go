package operator

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/l7mp/opdispatch/pkg/compiler"
	"github.com/l7mp/opdispatch/pkg/graph"
	"github.com/l7mp/opdispatch/pkg/nullable"
)

var boolType = reflect.TypeFor[bool]()

// UnaryTable caches single-operand operations per operator kind and operand type, together with the
// null check, the default value and the zero value of every operand type seen.
type UnaryTable struct {
	*cache
	nullChecks sync.Map // reflect.Type -> NullCheck
	zeros      sync.Map // reflect.Type -> reflect.Value
}

// NewUnaryTable creates an empty unary table.
func NewUnaryTable(opts ...Option) *UnaryTable {
	return &UnaryTable{cache: newCache(newOptions(opts))}
}

// Get returns the program computing kind over operands of type t. The first call for a key builds the
// program, later calls return the cached one. Get reports no error for an operator that is not defined
// over t, the returned program fails on invocation instead.
func (t *UnaryTable) Get(kind graph.Kind, operand reflect.Type) (*compiler.Program, error) {
	if !kind.IsUnary() {
		return nil, fmt.Errorf("operator %s is not unary", kind)
	}

	out := operand
	if kind.IsPredicate() {
		out = boolType
	}

	key := Key{Kind: kind, Operand: operand}
	return t.get(key, func(c *compiler.Compiler) (*compiler.Program, error) {
		return c.BuildUnary(func(n graph.Node) (graph.Node, error) {
			u, err := graph.NewUnary(kind, n)
			if err != nil {
				return nil, err
			}
			return u, nil
		}, operand, compiler.Signature{Out: out})
	})
}

// NotNull returns the null check of the operand type, selected once per type.
func (t *UnaryTable) NotNull(operand reflect.Type) NullCheck {
	if nc, ok := t.nullChecks.Load(operand); ok {
		return nc.(NullCheck)
	}
	nc, _ := t.nullChecks.LoadOrStore(operand, newNullCheck(operand))
	return nc.(NullCheck)
}

// Default returns the zero bit-pattern of the operand type. For an optional this is the absent value.
func (t *UnaryTable) Default(operand reflect.Type) reflect.Value {
	return reflect.Zero(operand)
}

// Zero returns the zero value of the operand type. It equals Default except for optionals, whose zero
// value is the present default-constructed underlying value.
func (t *UnaryTable) Zero(operand reflect.Type) reflect.Value {
	if z, ok := t.zeros.Load(operand); ok {
		return z.(reflect.Value)
	}
	z := reflect.Zero(operand)
	if elem, ok := nullable.Elem(operand); ok {
		z = nullable.Lift(operand, reflect.Zero(elem))
	}
	actual, _ := t.zeros.LoadOrStore(operand, z)
	return actual.(reflect.Value)
}
