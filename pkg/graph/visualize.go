package graph

import (
	"fmt"

	"github.com/emicklei/dot"
)

// Dot renders the graph in Graphviz DOT format. Edges point from operands to the operators
// consuming them, shared subtrees (most notably input bindings) are rendered once.
func Dot(root Node) string {
	return BuildDotGraph(root).String()
}

// Mermaid renders the graph as a Mermaid flowchart wrapped in a markdown code block.
func Mermaid(root Node) string {
	mermaid := dot.MermaidFlowchart(BuildDotGraph(root), dot.MermaidLeftToRight)
	return fmt.Sprintf("```mermaid\n%s\n```\n", mermaid)
}

// BuildDotGraph creates a dot.Graph from a computation graph.
func BuildDotGraph(root Node) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	g.Attr("label", root.String())
	g.Attr("labelloc", "t")

	ids := map[Node]dot.Node{}
	var build func(n Node) dot.Node
	build = func(n Node) dot.Node {
		if dn, ok := ids[n]; ok {
			return dn
		}

		id := fmt.Sprintf("n%d", len(ids))
		dn := g.Node(id).Attr("fontname", "helvetica")
		switch n := n.(type) {
		case *Input:
			dn.Attr("label", fmt.Sprintf("%s: %s", n, typeName(n.Type()))).
				Attr("shape", "ellipse").
				Attr("style", "filled").
				Attr("fillcolor", "lightgreen")
		case *Constant:
			dn.Attr("label", n.String()).
				Attr("shape", "plaintext")
		case *Convert:
			dn.Attr("label", "to "+typeName(n.To)).
				Attr("shape", "box").
				Attr("style", "dashed")
		case *Unary:
			dn.Attr("label", unaryLabel(n)).
				Attr("shape", "box").
				Attr("style", "filled,rounded").
				Attr("fillcolor", "lightblue")
		case *Binary:
			dn.Attr("label", binaryLabel(n)).
				Attr("shape", "box").
				Attr("style", "filled,rounded").
				Attr("fillcolor", "lightblue")
		case *Call:
			dn.Attr("label", funcName(n.Fn)).
				Attr("shape", "box").
				Attr("style", "filled").
				Attr("fillcolor", "lightyellow")
		}
		ids[n] = dn

		for i, c := range Children(n) {
			g.Edge(build(c), dn).
				Attr("label", fmt.Sprintf("%d", i)).
				Attr("fontsize", "10")
		}
		return dn
	}
	build(root)

	return g
}

func unaryLabel(n *Unary) string {
	if n.Impl.Mode == MethodCall {
		return fmt.Sprintf("%s [.%s]", n.Kind, n.Impl.Method.Name)
	}
	return fmt.Sprintf("%s [%s]", n.Kind, n.Kind.Symbol())
}

func binaryLabel(n *Binary) string {
	if n.Impl.Mode == MethodCall {
		return fmt.Sprintf("%s [.%s]", n.Kind, n.Impl.Method.Name)
	}
	return fmt.Sprintf("%s [%s]", n.Kind, n.Kind.Symbol())
}
