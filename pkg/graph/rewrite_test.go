package graph_test

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/opdispatch/pkg/graph"
)

// constantFolding replaces integer additions of two constants with their sum.
type constantFolding struct{}

func (constantFolding) Name() string { return "ConstantFolding" }

func (constantFolding) Apply(n graph.Node) (graph.Node, bool) {
	b, ok := n.(*graph.Binary)
	if !ok || b.Kind != graph.Add || b.Type() != intType {
		return n, false
	}
	l, lok := b.Left.(*graph.Constant)
	r, rok := b.Right.(*graph.Constant)
	if !lok || !rok {
		return n, false
	}
	return graph.ConstantOf(int(l.Value.Int() + r.Value.Int())), true
}

type emptyRule struct{}

func (emptyRule) Name() string { return "Empty" }
func (emptyRule) Apply(graph.Node) (graph.Node, bool) { return nil, true }

var _ = Describe("Rewriter", func() {
	var (
		x, z *graph.Input
		root graph.Node
	)

	BeforeEach(func() {
		x = graph.NewInput(0, "x", intType)
		z = graph.NewInput(0, "z", intType)
		sum, err := graph.NewBinary(graph.Add, x, graph.ConstantOf(1))
		Expect(err).NotTo(HaveOccurred())
		cmp, err := graph.NewBinary(graph.LessThan, sum, x)
		Expect(err).NotTo(HaveOccurred())
		root = cmp
	})

	It("should substitute every occurrence of an input", func() {
		ret, err := graph.ReplaceInput(root, x, z)
		Expect(err).NotTo(HaveOccurred())
		Expect(graph.Inputs(ret)).To(Equal([]*graph.Input{z}))
		Expect(ret.String()).To(Equal("((z + 1) < z)"))

		sum, err := graph.NewBinary(graph.Add, z, graph.ConstantOf(1))
		Expect(err).NotTo(HaveOccurred())
		expected, err := graph.NewBinary(graph.LessThan, sum, z)
		Expect(err).NotTo(HaveOccurred())
		Expect(ret).To(BeComparableTo(expected, cmpOpts...))
	})

	It("should not mutate the input graph", func() {
		before := root.String()
		_, err := graph.ReplaceInput(root, x, z)
		Expect(err).NotTo(HaveOccurred())
		Expect(root.String()).To(Equal(before))
		Expect(graph.Inputs(root)).To(Equal([]*graph.Input{x}))
	})

	It("should return the graph itself when nothing changes", func() {
		ret, err := graph.ReplaceInput(root, z, x)
		Expect(err).NotTo(HaveOccurred())
		Expect(ret).To(BeIdenticalTo(root))
	})

	It("should share untouched subtrees", func() {
		c := graph.ConstantOf(2)
		sum, err := graph.NewBinary(graph.Add, c, c)
		Expect(err).NotTo(HaveOccurred())
		b, err := graph.NewBinary(graph.Multiply, sum, x)
		Expect(err).NotTo(HaveOccurred())

		ret, err := graph.ReplaceInput(b, x, z)
		Expect(err).NotTo(HaveOccurred())
		Expect(ret.(*graph.Binary).Left).To(BeIdenticalTo(sum))
	})

	It("should refuse a substitution of another type", func() {
		_, err := graph.ReplaceInput(root, x, graph.NewInput(0, "s", stringType))
		Expect(err).To(HaveOccurred())
	})

	It("should apply custom rules bottom-up", func() {
		inner, err := graph.NewBinary(graph.Add, graph.ConstantOf(1), graph.ConstantOf(2))
		Expect(err).NotTo(HaveOccurred())
		outer, err := graph.NewBinary(graph.Add, inner, graph.ConstantOf(3))
		Expect(err).NotTo(HaveOccurred())

		ret, err := graph.NewRewriter(constantFolding{}).Rewrite(outer)
		Expect(err).NotTo(HaveOccurred())
		Expect(ret).To(BeComparableTo(graph.ConstantOf(6), cmpOpts...))
	})

	It("should rewrite the arguments of native calls", func() {
		c, err := graph.NewCall(func(v int) bool { return v > 0 }, x)
		Expect(err).NotTo(HaveOccurred())

		ret, err := graph.ReplaceInput(c, x, z)
		Expect(err).NotTo(HaveOccurred())
		Expect(ret).NotTo(BeIdenticalTo(c))
		Expect(ret.(*graph.Call).Args).To(Equal([]graph.Node{z}))
		Expect(ret.Type()).To(Equal(reflect.TypeFor[bool]()))
	})

	It("should report rules that drop nodes", func() {
		rw := graph.NewRewriter()
		rw.AddRule(emptyRule{})
		_, err := rw.Rewrite(root)
		Expect(err).To(MatchError(ContainSubstring("rule Empty produced an empty node")))
	})
})
