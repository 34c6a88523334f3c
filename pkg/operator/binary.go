package operator

import (
	"fmt"
	"reflect"

	"github.com/l7mp/opdispatch/pkg/compiler"
	"github.com/l7mp/opdispatch/pkg/graph"
)

var intType = reflect.TypeFor[int]()

// BinaryTable caches two-operand operations and conversions per operator kind, operand type and
// argument type.
type BinaryTable struct {
	*cache
}

// NewBinaryTable creates an empty binary table.
func NewBinaryTable(opts ...Option) *BinaryTable {
	return &BinaryTable{cache: newCache(newOptions(opts))}
}

// Get returns the program computing kind over an operand of type operand and an argument of type arg.
//
// Arithmetic and bitwise operators yield the operand type. Shifts convert the argument to an int count
// first. Comparisons convert the argument into the operand's type and yield a bool. Get reports no
// error for an operator that is not defined over the types, the returned program fails on invocation
// instead.
func (t *BinaryTable) Get(kind graph.Kind, operand, arg reflect.Type) (*compiler.Program, error) {
	if !kind.IsBinary() {
		return nil, fmt.Errorf("operator %s is not binary", kind)
	}

	var sig compiler.Signature
	switch {
	case kind.IsShift():
		sig = compiler.Signature{Right: intType, Out: operand}
	case kind.IsComparison():
		sig = compiler.Signature{Right: operand, Out: boolType}
	case kind == graph.AndAlso || kind == graph.OrElse:
		sig = compiler.Signature{Left: boolType, Right: boolType, Out: boolType}
	default:
		sig = compiler.Signature{Out: operand}
	}

	key := Key{Kind: kind, Operand: operand, Arg: arg}
	return t.get(key, func(c *compiler.Compiler) (*compiler.Program, error) {
		return c.BuildBinary(func(l, r graph.Node) (graph.Node, error) {
			b, err := graph.NewBinary(kind, l, r)
			if err != nil {
				return nil, err
			}
			return b, nil
		}, operand, arg, sig)
	})
}

// Convert returns the program converting values of type from to type to.
func (t *BinaryTable) Convert(from, to reflect.Type) (*compiler.Program, error) {
	key := Key{Kind: convertKind, Operand: from, Arg: to}
	return t.get(key, func(c *compiler.Compiler) (*compiler.Program, error) {
		return c.BuildUnary(func(n graph.Node) (graph.Node, error) {
			return n, nil
		}, from, compiler.Signature{Out: to})
	})
}
