package predicate

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/l7mp/opdispatch/pkg/graph"
	"github.com/l7mp/opdispatch/pkg/nullable"
)

var binaryOps = map[*hclsyntax.Operation]graph.Kind{
	hclsyntax.OpLogicalOr:          graph.OrElse,
	hclsyntax.OpLogicalAnd:         graph.AndAlso,
	hclsyntax.OpEqual:              graph.Equal,
	hclsyntax.OpNotEqual:           graph.NotEqual,
	hclsyntax.OpGreaterThan:        graph.GreaterThan,
	hclsyntax.OpGreaterThanOrEqual: graph.GreaterThanOrEqual,
	hclsyntax.OpLessThan:           graph.LessThan,
	hclsyntax.OpLessThanOrEqual:    graph.LessThanOrEqual,
	hclsyntax.OpAdd:                graph.Add,
	hclsyntax.OpSubtract:           graph.Subtract,
	hclsyntax.OpMultiply:           graph.Multiply,
	hclsyntax.OpDivide:             graph.Divide,
	hclsyntax.OpModulo:             graph.Modulo,
}

var unaryOps = map[*hclsyntax.Operation]graph.Kind{
	hclsyntax.OpLogicalNot: graph.Not,
	hclsyntax.OpNegate:     graph.Negate,
}

// Parse builds a predicate from an HCL expression over the single variable param, e.g.,
// "x > 0 && x % 2 == 0". Literals take the type of the operand they are combined with. An expression
// that evaluates to a constant true or false yields the corresponding sentinel.
func Parse[T any](param, src string) (*Predicate[T], error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "predicate", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	p := &parser{param: graph.NewInput(0, param, reflect.TypeFor[T]())}
	op, err := p.parse(expr)
	if err != nil {
		return nil, err
	}

	if op.node == nil {
		b, err := p.literal(op, boolType)
		if err != nil {
			return nil, err
		}
		if b.(*graph.Constant).Value.Bool() {
			return True[T](), nil
		}
		return False[T](), nil
	}

	return newPredicate[T](p.param, op.node)
}

// operand is either a graph node or a literal that has not been given a type yet.
type operand struct {
	node  graph.Node
	lit   cty.Value
	where hcl.Range
}

type parser struct {
	param *graph.Input
}

func (p *parser) parse(expr hclsyntax.Expression) (operand, error) {
	where := expr.Range()

	if len(expr.Variables()) == 0 {
		v, diags := expr.Value(nil)
		if diags.HasErrors() {
			return operand{}, diags
		}
		return operand{lit: v, where: where}, nil
	}

	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return p.parse(e.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 || e.Traversal.RootName() != p.param.Name {
			return operand{}, fmt.Errorf("%s: unknown variable, only %q can be referenced",
				where, p.param.Name)
		}
		return operand{node: p.param, where: where}, nil

	case *hclsyntax.UnaryOpExpr:
		kind, ok := unaryOps[e.Op]
		if !ok {
			return operand{}, fmt.Errorf("%s: unsupported unary operator", where)
		}
		val, err := p.parse(e.Val)
		if err != nil {
			return operand{}, err
		}
		if kind == graph.Not && !isBool(val.node.Type()) {
			return operand{}, fmt.Errorf("%s: logical not requires a bool operand, got %s", where,
				val.node.Type())
		}
		n, err := graph.NewUnary(kind, val.node)
		if err != nil {
			return operand{}, fmt.Errorf("%s: %w", where, err)
		}
		return operand{node: n, where: where}, nil

	case *hclsyntax.BinaryOpExpr:
		kind, ok := binaryOps[e.Op]
		if !ok {
			return operand{}, fmt.Errorf("%s: unsupported binary operator", where)
		}
		return p.binary(kind, e, where)
	}

	return operand{}, fmt.Errorf("%s: unsupported expression", where)
}

func (p *parser) binary(kind graph.Kind, e *hclsyntax.BinaryOpExpr, where hcl.Range) (operand, error) {
	lhs, err := p.parse(e.LHS)
	if err != nil {
		return operand{}, err
	}
	rhs, err := p.parse(e.RHS)
	if err != nil {
		return operand{}, err
	}

	var l, r graph.Node
	switch {
	case kind == graph.AndAlso || kind == graph.OrElse:
		if l, err = p.typed(lhs, boolType); err != nil {
			return operand{}, err
		}
		if r, err = p.typed(rhs, boolType); err != nil {
			return operand{}, err
		}
	case lhs.node == nil:
		r = rhs.node
		if l, err = p.literal(lhs, r.Type()); err != nil {
			return operand{}, err
		}
	case rhs.node == nil:
		l = lhs.node
		if r, err = p.literal(rhs, l.Type()); err != nil {
			return operand{}, err
		}
	default:
		l, r = lhs.node, rhs.node
	}

	n, err := graph.NewBinary(kind, l, r)
	if err != nil {
		return operand{}, fmt.Errorf("%s: %w", where, err)
	}
	return operand{node: n, where: where}, nil
}

func isBool(t reflect.Type) bool {
	if elem, ok := nullable.Elem(t); ok {
		t = elem
	}
	return t.Kind() == reflect.Bool
}

// typed returns the node of the operand, converting a literal to t.
func (p *parser) typed(op operand, t reflect.Type) (graph.Node, error) {
	if op.node != nil {
		return op.node, nil
	}
	return p.literal(op, t)
}

// literal converts a literal into a constant of type t. Literals of optional types are converted to
// the underlying type and wrapped.
func (p *parser) literal(op operand, t reflect.Type) (graph.Node, error) {
	target := t
	elem, opt := nullable.Elem(t)
	if opt {
		target = elem
	}

	ptr := reflect.New(target)
	if err := gocty.FromCtyValue(op.lit, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("%s: literal %s cannot be used as %s: %w", op.where, render(op.lit), t, err)
	}

	v := ptr.Elem()
	if opt {
		v = nullable.Lift(t, v)
	}
	return graph.NewConstant(v), nil
}

func render(v cty.Value) string {
	if !v.IsKnown() || v.IsNull() {
		return v.GoString()
	}
	switch v.Type() {
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case cty.Bool:
		return fmt.Sprintf("%t", v.True())
	}
	return v.GoString()
}
