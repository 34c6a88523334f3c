package predicate

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/l7mp/opdispatch/pkg/compiler"
	"github.com/l7mp/opdispatch/pkg/graph"
)

const paramName = "x"

var (
	boolType = reflect.TypeFor[bool]()

	trueSentinels  sync.Map // reflect.Type -> *Predicate[T]
	falseSentinels sync.Map // reflect.Type -> *Predicate[T]

	defaultCompiler atomic.Pointer[compiler.Compiler]
)

func init() {
	SetLogger(logr.Discard())
}

// SetLogger sets the logger used when predicates are compiled.
func SetLogger(log logr.Logger) {
	defaultCompiler.Store(compiler.New(log.WithName("predicate")))
}

// Predicate is a boolean computation graph over a single input of type T. Predicates are immutable:
// combinators return new predicates and leave their operands valid for reuse.
type Predicate[T any] struct {
	param *graph.Input
	body  graph.Node

	once sync.Once
	prog *compiler.Program
	err  error
}

func newPredicate[T any](param *graph.Input, body graph.Node) (*Predicate[T], error) {
	if body.Type() != boolType {
		return nil, fmt.Errorf("predicate body %s must be of type bool, got %s", body, body.Type())
	}
	for _, in := range graph.Inputs(body) {
		if in != param {
			return nil, fmt.Errorf("predicate body %s refers to foreign input %s", body, in)
		}
	}
	return &Predicate[T]{param: param, body: body}, nil
}

// True returns the always-true sentinel for T. Every call returns the same instance.
func True[T any]() *Predicate[T] { return sentinel[T](&trueSentinels, true) }

// False returns the always-false sentinel for T. Every call returns the same instance.
func False[T any]() *Predicate[T] { return sentinel[T](&falseSentinels, false) }

func sentinel[T any](m *sync.Map, value bool) *Predicate[T] {
	t := reflect.TypeFor[T]()
	if p, ok := m.Load(t); ok {
		return p.(*Predicate[T])
	}
	p := &Predicate[T]{param: graph.NewInput(0, paramName, t), body: graph.ConstantOf(value)}
	actual, _ := m.LoadOrStore(t, p)
	return actual.(*Predicate[T])
}

// Create wraps a native Go function into a predicate. It panics if fn is nil.
func Create[T any](fn func(T) bool) *Predicate[T] {
	if fn == nil {
		panic("predicate: Create called with a nil function")
	}
	param := graph.NewInput(0, paramName, reflect.TypeFor[T]())
	call, err := graph.NewCall(fn, param)
	if err != nil {
		panic(fmt.Sprintf("predicate: %s", err))
	}
	return &Predicate[T]{param: param, body: call}
}

// Param returns the input binding of the predicate.
func (p *Predicate[T]) Param() *graph.Input { return p.param }

// Body returns the boolean graph of the predicate.
func (p *Predicate[T]) Body() graph.Node { return p.body }

// IsTrue reports whether the predicate is the True sentinel of T.
func (p *Predicate[T]) IsTrue() bool { return p == True[T]() }

// IsFalse reports whether the predicate is the False sentinel of T.
func (p *Predicate[T]) IsFalse() bool { return p == False[T]() }

// And returns the conjunction of two predicates. It returns left if both operands are the same
// predicate, the other operand if one of them is True, and False if either is False.
func And[T any](left, right *Predicate[T]) *Predicate[T] {
	switch {
	case left == right:
		return left
	case left.IsTrue():
		return right
	case right.IsTrue():
		return left
	case left.IsFalse(), right.IsFalse():
		return False[T]()
	}
	return combine(graph.AndAlso, left, right)
}

// Or returns the disjunction of two predicates. It returns left if both operands are the same
// predicate, the other operand if one of them is False, and True if either is True.
func Or[T any](left, right *Predicate[T]) *Predicate[T] {
	switch {
	case left == right:
		return left
	case left.IsFalse():
		return right
	case right.IsFalse():
		return left
	case left.IsTrue(), right.IsTrue():
		return True[T]()
	}
	return combine(graph.OrElse, left, right)
}

// Not returns the negation of a predicate. The negation of a sentinel is the other sentinel.
func Not[T any](p *Predicate[T]) *Predicate[T] {
	switch {
	case p.IsTrue():
		return False[T]()
	case p.IsFalse():
		return True[T]()
	}
	body, err := graph.NewUnary(graph.Not, p.body)
	if err != nil {
		// bodies are bool by construction
		panic(fmt.Sprintf("predicate: %s", err))
	}
	return &Predicate[T]{param: p.param, body: body}
}

func combine[T any](kind graph.Kind, left, right *Predicate[T]) *Predicate[T] {
	rbody, err := graph.ReplaceInput(right.body, right.param, left.param)
	if err == nil {
		var body *graph.Binary
		body, err = graph.NewBinary(kind, left.body, rbody)
		if err == nil {
			return &Predicate[T]{param: left.param, body: body}
		}
	}
	// both inputs are of type T and both bodies are bool by construction
	panic(fmt.Sprintf("predicate: cannot combine %s and %s: %s", left, right, err))
}

// Compile compiles the predicate. The program is built on the first call and reused afterwards.
func (p *Predicate[T]) Compile() (*compiler.Program, error) {
	p.once.Do(func() {
		p.prog, p.err = defaultCompiler.Load().Compile(p.body, p.param)
	})
	return p.prog, p.err
}

// Evaluate evaluates the predicate at v.
func (p *Predicate[T]) Evaluate(v T) (bool, error) {
	prog, err := p.Compile()
	if err != nil {
		return false, err
	}
	ret, err := prog.Call(reflect.ValueOf(&v).Elem())
	if err != nil {
		return false, err
	}
	return ret.Bool(), nil
}

// String renders the predicate in infix form.
func (p *Predicate[T]) String() string { return p.body.String() }

// Dot renders the predicate graph in Graphviz DOT format.
func (p *Predicate[T]) Dot() string { return graph.Dot(p.body) }
