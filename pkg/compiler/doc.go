// Package compiler turns computation graphs into directly invocable programs.
//
// The compiler is a closure compiler: every graph node is translated once into a Go closure over
// reflect.Value operands, so invoking a program walks no graph and resolves no operator. Operation
// constructors are applied to freshly created input bindings, converted to the declared signature, and
// the result is compiled. A constructor reporting an unsupported operation yields an unsupported
// Program: the failure becomes a value that is returned, unchanged, by every invocation.
package compiler
