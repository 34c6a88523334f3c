package graph

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/l7mp/opdispatch/pkg/util"
)

// Node is a node of a computation graph. Graphs are finite single-rooted trees; nodes are immutable
// once constructed and may be shared between graphs.
//
// Only the node types of this package implement Node.
type Node interface {
	// Type returns the static result type of the node.
	Type() reflect.Type
	fmt.Stringer
	isNode()
}

var boolType = reflect.TypeFor[bool]()

// Input binds the argument at Ordinal of the compiled callable.
type Input struct {
	Ordinal int
	Name    string
	typ     reflect.Type
}

// NewInput creates an input binding. An empty name renders as "$<ordinal>".
func NewInput(ordinal int, name string, t reflect.Type) *Input {
	return &Input{Ordinal: ordinal, Name: name, typ: t}
}

func (n *Input) Type() reflect.Type { return n.typ }
func (n *Input) isNode()            {}

func (n *Input) String() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("$%d", n.Ordinal)
}

// Constant is a literal value.
type Constant struct {
	Value reflect.Value
}

// NewConstant creates a constant from a reflected value.
func NewConstant(v reflect.Value) *Constant {
	return &Constant{Value: v}
}

// ConstantOf creates a constant of static type T.
func ConstantOf[T any](v T) *Constant {
	return &Constant{Value: reflect.ValueOf(&v).Elem()}
}

func (n *Constant) Type() reflect.Type { return n.Value.Type() }
func (n *Constant) isNode()            {}

func (n *Constant) String() string {
	if n.Value.Kind() == reflect.String {
		return fmt.Sprintf("%q", n.Value.String())
	}
	return fmt.Sprintf("%v", n.Value)
}

// ConversionPlan describes the steps of a conversion: optionally unwrap an optional source, convert
// to Via when the value is not of that type yet, and optionally wrap the result into an optional.
type ConversionPlan struct {
	Unwrap bool
	Via    reflect.Type
	Wrap   bool
}

// Convert converts its operand to another type.
type Convert struct {
	Operand Node
	To      reflect.Type
	Plan    ConversionPlan
}

func (n *Convert) Type() reflect.Type { return n.To }
func (n *Convert) isNode()            {}
func (n *Convert) String() string     { return fmt.Sprintf("%s(%s)", typeName(n.To), n.Operand) }

// ImplMode tells how an operator node is implemented.
type ImplMode int

const (
	// Intrinsic operators are Go's built-in operators.
	Intrinsic ImplMode = iota
	// MethodCall operators call a method of the left operand.
	MethodCall
	// Lifted operators apply an inner implementation to the underlying value of optionals.
	Lifted
)

// Impl is the resolved implementation of an operator node.
type Impl struct {
	Mode ImplMode
	// Method is the operator method, for MethodCall.
	Method reflect.Method
	// Truth is set if the method result has to be reduced to a bool through its True method.
	Truth bool
	// Elem and Inner describe the underlying operation, for Lifted.
	Elem  reflect.Type
	Inner *Impl
}

// Unary applies a unary operator.
type Unary struct {
	Kind    Kind
	Operand Node
	Impl    Impl
	typ     reflect.Type
}

func (n *Unary) Type() reflect.Type { return n.typ }
func (n *Unary) isNode()            {}

func (n *Unary) String() string {
	switch n.Kind {
	case Increment, Decrement:
		return fmt.Sprintf("%s%s", n.Operand, n.Kind.Symbol())
	case IsTrue, IsFalse:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Operand)
	default:
		return fmt.Sprintf("%s%s", n.Kind.Symbol(), n.Operand)
	}
}

// Binary applies a binary operator.
type Binary struct {
	Kind        Kind
	Left, Right Node
	Impl        Impl
	typ         reflect.Type
}

func (n *Binary) Type() reflect.Type { return n.typ }
func (n *Binary) isNode()            {}
func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Kind.Symbol(), n.Right)
}

// Call invokes a native Go function.
type Call struct {
	Fn   reflect.Value
	Args []Node
}

func (n *Call) Type() reflect.Type { return n.Fn.Type().Out(0) }
func (n *Call) isNode()            {}

func (n *Call) String() string {
	return fmt.Sprintf("%s(%s)", funcName(n.Fn), util.Join(n.Args, ", "))
}

// NewUnary creates a unary operator node. It returns an UnsupportedOperationError if the operator is
// not defined for the operand type.
func NewUnary(kind Kind, operand Node) (*Unary, error) {
	if !kind.IsUnary() {
		return nil, fmt.Errorf("operator %s is not unary", kind)
	}
	impl, typ, err := resolveUnary(kind, operand.Type())
	if err != nil {
		return nil, err
	}
	return &Unary{Kind: kind, Operand: operand, Impl: impl, typ: typ}, nil
}

// NewBinary creates a binary operator node. It returns an UnsupportedOperationError if the operator is
// not defined for the operand types.
func NewBinary(kind Kind, left, right Node) (*Binary, error) {
	if !kind.IsBinary() {
		return nil, fmt.Errorf("operator %s is not binary", kind)
	}
	impl, typ, err := resolveBinary(kind, left.Type(), right.Type())
	if err != nil {
		return nil, err
	}
	return &Binary{Kind: kind, Left: left, Right: right, Impl: impl, typ: typ}, nil
}

// NewConvert creates a conversion of operand to type to. The operand itself is returned if it is
// already of the target type.
func NewConvert(operand Node, to reflect.Type) (Node, error) {
	from := operand.Type()
	if from == to {
		return operand, nil
	}
	plan, err := planConversion(from, to)
	if err != nil {
		return nil, err
	}
	return &Convert{Operand: operand, To: to, Plan: plan}, nil
}

// NewCall creates a call to the native function fn, which must take one argument per node and return
// a single value.
func NewCall(fn any, args ...Node) (*Call, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("call target must be a non-nil function, got %T", fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() || ft.NumIn() != len(args) || ft.NumOut() != 1 {
		return nil, fmt.Errorf("function %s must take %d arguments and return a single value",
			ft, len(args))
	}
	for i, a := range args {
		if !a.Type().AssignableTo(ft.In(i)) {
			return nil, fmt.Errorf("argument %d of %s: %s is not assignable to %s",
				i, ft, typeName(a.Type()), ft.In(i))
		}
	}
	return &Call{Fn: fv, Args: args}, nil
}

// Inputs returns the distinct input bindings of the graph in order of first appearance.
func Inputs(root Node) []*Input {
	ret := []*Input{}
	seen := map[*Input]bool{}
	Walk(root, func(n Node) {
		if in, ok := n.(*Input); ok && !seen[in] {
			seen[in] = true
			ret = append(ret, in)
		}
	})
	return ret
}

// Walk calls f for every node of the graph in pre-order.
func Walk(root Node, f func(Node)) {
	f(root)
	for _, c := range Children(root) {
		Walk(c, f)
	}
}

// Children returns the direct operands of a node.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Convert:
		return []Node{n.Operand}
	case *Unary:
		return []Node{n.Operand}
	case *Binary:
		return []Node{n.Left, n.Right}
	case *Call:
		return n.Args
	default:
		return nil
	}
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		name := f.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	return "func"
}
