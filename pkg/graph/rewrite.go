package graph

import (
	"fmt"
)

// Rule is a local graph transformation. Apply returns the replacement of the node and whether the
// rule fired. Rules must not modify the node they are given.
type Rule interface {
	Name() string
	Apply(n Node) (Node, bool)
}

// Rewriter rewrites graphs bottom-up with a list of rules. Rewriting never mutates its input: nodes on
// a path to a rewritten node are copied, untouched subtrees are shared with the input graph.
type Rewriter struct {
	rules []Rule
}

// NewRewriter creates a rewriter. Rules are tried in order of registration.
func NewRewriter(rules ...Rule) *Rewriter {
	return &Rewriter{rules: rules}
}

// AddRule appends a rule.
func (rw *Rewriter) AddRule(rule Rule) {
	rw.rules = append(rw.rules, rule)
}

// Rewrite applies the rules to every node of the graph, children first. The first rule that fires
// on a node wins.
func (rw *Rewriter) Rewrite(root Node) (Node, error) {
	n, err := rw.rebuild(root)
	if err != nil {
		return nil, err
	}

	for _, rule := range rw.rules {
		if ret, ok := rule.Apply(n); ok {
			if ret == nil {
				return nil, fmt.Errorf("rule %s produced an empty node for %s", rule.Name(), n)
			}
			return ret, nil
		}
	}

	return n, nil
}

// rebuild rewrites the children of n and creates a copy of n if any of them changed.
func (rw *Rewriter) rebuild(n Node) (Node, error) {
	switch n := n.(type) {
	case *Convert:
		op, err := rw.Rewrite(n.Operand)
		if err != nil {
			return nil, err
		}
		if op == n.Operand {
			return n, nil
		}
		return NewConvert(op, n.To)

	case *Unary:
		op, err := rw.Rewrite(n.Operand)
		if err != nil {
			return nil, err
		}
		if op == n.Operand {
			return n, nil
		}
		u, err := NewUnary(n.Kind, op)
		if err != nil {
			return nil, err
		}
		return u, nil

	case *Binary:
		l, err := rw.Rewrite(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := rw.Rewrite(n.Right)
		if err != nil {
			return nil, err
		}
		if l == n.Left && r == n.Right {
			return n, nil
		}
		b, err := NewBinary(n.Kind, l, r)
		if err != nil {
			return nil, err
		}
		return b, nil

	case *Call:
		changed := false
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			ra, err := rw.Rewrite(a)
			if err != nil {
				return nil, err
			}
			args[i] = ra
			changed = changed || ra != a
		}
		if !changed {
			return n, nil
		}
		c, err := NewCall(n.Fn.Interface(), args...)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return n, nil
	}
}

// InputSubstitutionRule replaces one input binding by another node of the same type.
type InputSubstitutionRule struct {
	From *Input
	To   Node
}

func (r *InputSubstitutionRule) Name() string { return "InputSubstitution" }

func (r *InputSubstitutionRule) Apply(n Node) (Node, bool) {
	if in, ok := n.(*Input); ok && in == r.From {
		return r.To, true
	}
	return n, false
}

// ReplaceInput returns a copy of the graph in which every occurrence of the input binding from is
// replaced with to.
func ReplaceInput(root Node, from *Input, to Node) (Node, error) {
	if from.Type() != to.Type() {
		return nil, fmt.Errorf("cannot substitute %s of type %s with %s of type %s",
			from, typeName(from.Type()), to, typeName(to.Type()))
	}
	return NewRewriter(&InputSubstitutionRule{From: from, To: to}).Rewrite(root)
}
