package compiler

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/l7mp/opdispatch/pkg/graph"
	"github.com/l7mp/opdispatch/pkg/nullable"
)

// dumpGraph renders graphs for the debug log.
var dumpGraph = graph.YAML

// UnaryConstructor builds an operation over a single operand node.
type UnaryConstructor func(operand graph.Node) (graph.Node, error)

// BinaryConstructor builds an operation over two operand nodes.
type BinaryConstructor func(left, right graph.Node) (graph.Node, error)

// Signature declares the types an operation constructor is written against. Inputs of other types are
// converted to the declared type before the constructor runs, and the result is converted to Out. A nil
// type means "as given".
type Signature struct {
	Left, Right, Out reflect.Type
}

// Compiler builds computation graphs from operation constructors and compiles them into programs.
// It holds no state besides its logger and is safe for concurrent use.
type Compiler struct {
	log logr.Logger
}

// New creates a compiler.
func New(log logr.Logger) *Compiler {
	return &Compiler{log: log}
}

// BuildUnary builds and compiles a single-input operation for an input of type in.
//
// If the constructor (or a required conversion) reports an *graph.UnsupportedOperationError, BuildUnary
// returns an unsupported program that fails with that error on every invocation. Other constructor
// errors are returned as is, and a graph that fails to compile yields a *ConstructionError.
func (c *Compiler) BuildUnary(ctor UnaryConstructor, in reflect.Type, sig Signature) (*Program, error) {
	input := graph.NewInput(0, "x", in)

	node, err := c.convertTo(input, sig.Left)
	if err != nil {
		return c.unsupported(err, sig.Out, in)
	}

	res, err := ctor(node)
	if err != nil {
		if graph.IsUnsupported(err) {
			return c.unsupported(err, sig.Out, in)
		}
		return nil, err
	}

	res, err = c.convertTo(res, sig.Out)
	if err != nil {
		return c.unsupported(err, sig.Out, in)
	}

	return c.Compile(res, input)
}

// BuildBinary builds and compiles a two-input operation for inputs of types left and right. Failures
// are handled as in BuildUnary.
func (c *Compiler) BuildBinary(ctor BinaryConstructor, left, right reflect.Type, sig Signature) (*Program, error) {
	x := graph.NewInput(0, "x", left)
	y := graph.NewInput(1, "y", right)

	l, err := c.convertTo(x, sig.Left)
	if err != nil {
		return c.unsupported(err, sig.Out, left, right)
	}
	r, err := c.convertTo(y, sig.Right)
	if err != nil {
		return c.unsupported(err, sig.Out, left, right)
	}

	res, err := ctor(l, r)
	if err != nil {
		if graph.IsUnsupported(err) {
			return c.unsupported(err, sig.Out, left, right)
		}
		return nil, err
	}

	res, err = c.convertTo(res, sig.Out)
	if err != nil {
		return c.unsupported(err, sig.Out, left, right)
	}

	return c.Compile(res, x, y)
}

func (c *Compiler) convertTo(n graph.Node, t reflect.Type) (graph.Node, error) {
	if t == nil {
		return n, nil
	}
	return graph.NewConvert(n, t)
}

func (c *Compiler) unsupported(err error, out reflect.Type, params ...reflect.Type) (*Program, error) {
	c.log.V(6).Info("operation unsupported", "params", params, "error", err.Error())
	return Unsupported(err, out, params...), nil
}

// Compile compiles a finished graph into a program taking one argument per parameter. The parameters
// must have the ordinals 0..len(params)-1 and must cover every input binding of the graph.
func (c *Compiler) Compile(root graph.Node, params ...*graph.Input) (*Program, error) {
	types := make([]reflect.Type, len(params))
	for i, p := range params {
		if p.Ordinal != i {
			return nil, &ConstructionError{Graph: root.String(),
				Message: fmt.Sprintf("parameter %s has ordinal %d at position %d", p, p.Ordinal, i)}
		}
		types[i] = p.Type()
	}

	bound := map[*graph.Input]bool{}
	for _, p := range params {
		bound[p] = true
	}
	for _, in := range graph.Inputs(root) {
		if !bound[in] {
			return nil, &ConstructionError{Graph: root.String(),
				Message: fmt.Sprintf("input %s is not bound to a parameter", in)}
		}
	}

	eval, err := c.compile(root)
	if err != nil {
		return nil, &ConstructionError{Graph: root.String(), Message: err.Error()}
	}
	if eval == nil {
		return nil, &ConstructionError{Graph: root.String(), Message: "compiler produced no program"}
	}

	if log := c.log.V(6); log.Enabled() {
		dump, err := dumpGraph(root)
		if err != nil {
			log.Error(err, "failed to dump graph", "graph", root.String())
			dump = root.String()
		}
		log.Info("graph compiled", "graph", root.String(), "dump", dump)
	}

	return &Program{params: types, out: root.Type(), eval: eval, repr: root.String()}, nil
}

func (c *Compiler) compile(n graph.Node) (evalFn, error) {
	switch n := n.(type) {
	case *graph.Input:
		i := n.Ordinal
		return func(args []reflect.Value) (reflect.Value, error) { return args[i], nil }, nil

	case *graph.Constant:
		v := n.Value
		return func([]reflect.Value) (reflect.Value, error) { return v, nil }, nil

	case *graph.Convert:
		return c.compileConvert(n)

	case *graph.Unary:
		return c.compileUnary(n)

	case *graph.Binary:
		return c.compileBinary(n)

	case *graph.Call:
		return c.compileCall(n)

	default:
		return nil, fmt.Errorf("unknown node type %T", n)
	}
}

func (c *Compiler) compileConvert(n *graph.Convert) (evalFn, error) {
	operand, err := c.compile(n.Operand)
	if err != nil {
		return nil, err
	}
	plan, to := n.Plan, n.To

	return func(args []reflect.Value) (reflect.Value, error) {
		v, err := operand(args)
		if err != nil {
			return reflect.Value{}, err
		}
		if plan.Unwrap {
			u, ok := nullable.Unwrap(v)
			if !ok {
				if plan.Wrap {
					return nullable.Absent(to), nil
				}
				return reflect.Value{}, fmt.Errorf("cannot convert to %s: %w", to, ErrAbsentValue)
			}
			v = u
		}
		if plan.Via != nil && v.Type() != plan.Via {
			if !v.CanConvert(plan.Via) {
				return reflect.Value{}, fmt.Errorf("cannot convert value of type %s to %s", v.Type(), plan.Via)
			}
			v = v.Convert(plan.Via)
		}
		if plan.Wrap {
			v = nullable.Lift(to, v)
		}
		return v, nil
	}, nil
}

func (c *Compiler) compileUnary(n *graph.Unary) (evalFn, error) {
	operand, err := c.compile(n.Operand)
	if err != nil {
		return nil, err
	}
	op, err := unaryImpl(n.Kind, n.Impl, n.Operand.Type())
	if err != nil {
		return nil, err
	}

	return func(args []reflect.Value) (reflect.Value, error) {
		v, err := operand(args)
		if err != nil {
			return reflect.Value{}, err
		}
		return op(v)
	}, nil
}

func (c *Compiler) compileBinary(n *graph.Binary) (evalFn, error) {
	left, err := c.compile(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(n.Right)
	if err != nil {
		return nil, err
	}

	// short-circuit logic evaluates the right operand lazily
	if n.Kind == graph.AndAlso || n.Kind == graph.OrElse {
		stop := n.Kind == graph.OrElse
		return func(args []reflect.Value) (reflect.Value, error) {
			l, err := left(args)
			if err != nil {
				return reflect.Value{}, err
			}
			if l.Bool() == stop {
				return reflect.ValueOf(stop), nil
			}
			r, err := right(args)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(r.Bool()), nil
		}, nil
	}

	op, err := binaryImpl(n.Kind, n.Impl, n.Left.Type(), n.Right.Type())
	if err != nil {
		return nil, err
	}

	return func(args []reflect.Value) (reflect.Value, error) {
		l, err := left(args)
		if err != nil {
			return reflect.Value{}, err
		}
		r, err := right(args)
		if err != nil {
			return reflect.Value{}, err
		}
		return op(l, r)
	}, nil
}

func (c *Compiler) compileCall(n *graph.Call) (evalFn, error) {
	args := make([]evalFn, len(n.Args))
	for i, a := range n.Args {
		f, err := c.compile(a)
		if err != nil {
			return nil, err
		}
		args[i] = f
	}
	fn, name := n.Fn, n.String()

	return func(in []reflect.Value) (reflect.Value, error) {
		vs := make([]reflect.Value, len(args))
		for i, f := range args {
			v, err := f(in)
			if err != nil {
				return reflect.Value{}, err
			}
			vs[i] = v
		}
		return protect(name, func() reflect.Value { return fn.Call(vs)[0] })
	}, nil
}

func unaryImpl(kind graph.Kind, impl graph.Impl, t reflect.Type) (unaryFn, error) {
	switch impl.Mode {
	case graph.Intrinsic:
		return intrinsicUnary(kind, t)

	case graph.MethodCall:
		m := impl.Method
		return func(v reflect.Value) (reflect.Value, error) {
			return protect(t.String()+"."+m.Name, func() reflect.Value {
				return m.Func.Call([]reflect.Value{v})[0]
			})
		}, nil

	case graph.Lifted:
		inner, err := unaryImpl(kind, *impl.Inner, impl.Elem)
		if err != nil {
			return nil, err
		}
		return func(v reflect.Value) (reflect.Value, error) {
			u, ok := nullable.Unwrap(v)
			if !ok {
				if kind.IsPredicate() {
					return reflect.ValueOf(false), nil
				}
				return nullable.Absent(t), nil
			}
			r, err := inner(u)
			if err != nil || kind.IsPredicate() {
				return r, err
			}
			return nullable.Lift(t, r), nil
		}, nil
	}

	return nil, fmt.Errorf("unknown implementation mode %d", impl.Mode)
}

func binaryImpl(kind graph.Kind, impl graph.Impl, l, r reflect.Type) (binaryFn, error) {
	switch impl.Mode {
	case graph.Intrinsic:
		if kind.IsShift() {
			return shift(kind, l, r)
		}
		return intrinsicBinary(kind, l)

	case graph.MethodCall:
		m, truth := impl.Method, impl.Truth
		name := l.String() + "." + m.Name
		return func(a, b reflect.Value) (reflect.Value, error) {
			return protect(name, func() reflect.Value {
				ret := m.Func.Call([]reflect.Value{a, b})[0]
				if truth {
					ret = ret.MethodByName("True").Call(nil)[0]
				}
				return ret
			})
		}, nil

	case graph.Lifted:
		inner, err := binaryImpl(kind, *impl.Inner, impl.Elem, impl.Elem)
		if err != nil {
			return nil, err
		}
		return func(a, b reflect.Value) (reflect.Value, error) {
			x, okx := nullable.Unwrap(a)
			y, oky := nullable.Unwrap(b)
			if !okx || !oky {
				switch kind { //nolint:exhaustive
				case graph.Equal:
					return reflect.ValueOf(okx == oky), nil
				case graph.NotEqual:
					return reflect.ValueOf(okx != oky), nil
				}
				if kind.IsComparison() {
					return reflect.ValueOf(false), nil
				}
				return nullable.Absent(l), nil
			}
			ret, err := inner(x, y)
			if err != nil || kind.IsComparison() {
				return ret, err
			}
			return nullable.Lift(l, ret), nil
		}, nil
	}

	return nil, fmt.Errorf("unknown implementation mode %d", impl.Mode)
}

// protect runs f and converts a panic into a *PanicError.
func protect(name string, f func() reflect.Value) (ret reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			ret, err = reflect.Value{}, &PanicError{Func: name, Value: r}
		}
	}()
	return f(), nil
}
