package operator

import (
	"fmt"
	"reflect"

	"github.com/l7mp/opdispatch/pkg/graph"
)

// convertKind keys conversions in the binary table.
const convertKind graph.Kind = -1

// Key identifies a cached operation. Arg is nil for unary operations.
type Key struct {
	Kind    graph.Kind
	Operand reflect.Type
	Arg     reflect.Type
}

func (k Key) String() string {
	switch {
	case k.Kind == convertKind:
		return fmt.Sprintf("Convert(%s->%s)", k.Operand, k.Arg)
	case k.Arg == nil:
		return fmt.Sprintf("%s(%s)", k.Kind, k.Operand)
	default:
		return fmt.Sprintf("%s(%s,%s)", k.Kind, k.Operand, k.Arg)
	}
}

// id identifies the key by type identity. Type names are not unique across packages, so String cannot
// serve as a map key outside the type system.
func (k Key) id() string {
	return fmt.Sprintf("%d/%p/%p", k.Kind, k.Operand, k.Arg)
}
