// Package graph implements the computation graph model of the operator engine: small, typed,
// immutable expression trees built from input bindings, constants, conversions, unary and binary
// operators and native function calls.
//
// Node constructors type-check their operands the way the Go compiler would and resolve how the
// operator is implemented:
//   - Intrinsic: a built-in Go operator over the operand kinds (ints, floats, complex, strings, bools).
//   - MethodCall: an operator method of the operand type, e.g., cty.Value.Add or cty.Value.LessThan.
//   - Lifted: the operator of the underlying type applied to nullable.Optional operands.
//
// A constructor that finds no definition returns an *UnsupportedOperationError. Graphs are rewritten
// with a Rewriter, which never mutates its input, and rendered with Dot, Mermaid or YAML.
//
// Example usage:
//
//	x := graph.NewInput(0, "x", reflect.TypeFor[int]())
//	one := graph.ConstantOf(1)
//	sum, err := graph.NewBinary(graph.Add, x, one)
//	fmt.Println(sum) // (x + 1)
package graph
