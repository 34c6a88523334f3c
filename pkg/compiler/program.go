package compiler

import (
	"fmt"
	"reflect"
)

type evalFn func(args []reflect.Value) (reflect.Value, error)

// Program is the callable produced by the compiler. A program is either supported, in which case it
// evaluates its graph, or unsupported, in which case every invocation returns the same error. Programs
// are immutable and safe for concurrent use.
type Program struct {
	params []reflect.Type
	out    reflect.Type
	eval   evalFn
	err    error
	repr   string
}

// Unsupported returns a program that fails with err on every invocation.
func Unsupported(err error, out reflect.Type, params ...reflect.Type) *Program {
	return &Program{params: params, out: out, err: err, repr: "<unsupported>"}
}

// Supported reports whether the program evaluates a graph.
func (p *Program) Supported() bool { return p.err == nil }

// Err returns the memoized failure of an unsupported program, or nil.
func (p *Program) Err() error { return p.err }

// NumIn returns the number of arguments the program takes.
func (p *Program) NumIn() int { return len(p.params) }

// In returns the type of the i'th argument.
func (p *Program) In(i int) reflect.Type { return p.params[i] }

// Out returns the result type.
func (p *Program) Out() reflect.Type { return p.out }

// Call invokes the program. Arguments must be of the parameter types.
func (p *Program) Call(args ...reflect.Value) (reflect.Value, error) {
	if p.err != nil {
		return reflect.Value{}, p.err
	}
	if len(args) != len(p.params) {
		return reflect.Value{}, fmt.Errorf("program %s expects %d arguments, got %d",
			p.repr, len(p.params), len(args))
	}
	for i, a := range args {
		if !a.IsValid() || a.Type() != p.params[i] {
			return reflect.Value{}, fmt.Errorf("program %s: argument %d must be of type %s",
				p.repr, i, p.params[i])
		}
	}
	return p.eval(args)
}

func (p *Program) String() string {
	if p.err != nil {
		return fmt.Sprintf("<unsupported: %s>", p.err)
	}
	return p.repr
}
