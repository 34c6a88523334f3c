package graph

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/l7mp/opdispatch/pkg/util"
)

// UnsupportedOperationError reports that no definition exists for an operator or a conversion over the
// given operand types. Node constructors return it; the compiler memoizes it as a permanent failure.
type UnsupportedOperationError struct {
	// Op names the operator kind, or "Convert".
	Op string
	// Types lists the operand types, and the target type for conversions.
	Types []reflect.Type
	// Message is a human-readable description.
	Message string
}

func (e *UnsupportedOperationError) Error() string {
	return "unsupported operation: " + e.Message
}

// IsUnsupported returns true if the error is an UnsupportedOperationError. Uses errors.As to handle
// wrapped errors.
func IsUnsupported(err error) bool {
	var ue *UnsupportedOperationError
	return errors.As(err, &ue)
}

// NewUnsupportedOperatorError creates an error for an operator kind not defined over the types.
func NewUnsupportedOperatorError(kind Kind, types ...reflect.Type) *UnsupportedOperationError {
	noun := "type"
	if len(types) > 1 {
		noun = "types"
	}
	return &UnsupportedOperationError{
		Op:      kind.String(),
		Types:   types,
		Message: fmt.Sprintf("operator %s (%s) is not defined for %s %s", kind, kind.Symbol(), noun, typeList(types)),
	}
}

// NewUnsupportedConversionError creates an error for a conversion that Go does not define.
func NewUnsupportedConversionError(from, to reflect.Type) *UnsupportedOperationError {
	return &UnsupportedOperationError{
		Op:      "Convert",
		Types:   []reflect.Type{from, to},
		Message: fmt.Sprintf("no conversion is defined from %s to %s", typeName(from), typeName(to)),
	}
}

func typeList(types []reflect.Type) string {
	return strings.Join(util.Map(typeName, types), " and ")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
