package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrDivideByZero is returned by integer division and modulo with a zero divisor.
	ErrDivideByZero = errors.New("integer divide by zero")
	// ErrNegativeShift is returned by shifts with a negative count.
	ErrNegativeShift = errors.New("negative shift amount")
	// ErrAbsentValue is returned when an absent optional is converted to a non-optional type.
	ErrAbsentValue = errors.New("optional value is absent")
	// ErrNotComparable is returned when an interface operand holds a value that cannot be compared.
	ErrNotComparable = errors.New("value is not comparable")
)

// ConstructionError reports a violation of the compiler's internal contract: a graph that was built
// successfully could not be compiled. It indicates a bug, not an unsupported operation, and is never
// memoized.
type ConstructionError struct {
	// Graph is the rendering of the offending graph.
	Graph string
	// Message is a human-readable description.
	Message string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to compile graph %s: %s", e.Graph, e.Message)
}

// IsConstructionError returns true if the error is a ConstructionError. Uses errors.As to handle
// wrapped errors.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

// PanicError reports a panic raised by a method operator or a native function called from a
// compiled program.
type PanicError struct {
	// Func names the method or function.
	Func string
	// Value is the recovered panic value.
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Func, e.Value)
}
