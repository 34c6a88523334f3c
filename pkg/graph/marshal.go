package graph

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// YAML dumps the graph as a YAML document, one mapping per node with the operator, the result type,
// the implementation and the operands.
func YAML(root Node) (string, error) {
	b, err := yaml.Marshal(toMap(root))
	if err != nil {
		return "", fmt.Errorf("failed to marshal graph %s: %w", root, err)
	}
	return string(b), nil
}

func toMap(n Node) map[string]any {
	ret := map[string]any{"type": typeName(n.Type())}

	switch n := n.(type) {
	case *Input:
		ret["input"] = n.Ordinal
		if n.Name != "" {
			ret["name"] = n.Name
		}
	case *Constant:
		ret["constant"] = n.String()
	case *Convert:
		ret["convert"] = toMap(n.Operand)
		if n.Plan.Unwrap {
			ret["unwrap"] = true
		}
		if n.Plan.Wrap {
			ret["wrap"] = true
		}
	case *Unary:
		ret["op"] = n.Kind.String()
		ret["impl"] = implString(n.Impl)
		ret["operands"] = []any{toMap(n.Operand)}
	case *Binary:
		ret["op"] = n.Kind.String()
		ret["impl"] = implString(n.Impl)
		ret["operands"] = []any{toMap(n.Left), toMap(n.Right)}
	case *Call:
		ret["call"] = funcName(n.Fn)
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = toMap(a)
		}
		ret["operands"] = args
	}

	return ret
}

func implString(impl Impl) string {
	switch impl.Mode {
	case MethodCall:
		return "method " + impl.Method.Name
	case Lifted:
		return "lifted " + implString(*impl.Inner)
	default:
		return "intrinsic"
	}
}
