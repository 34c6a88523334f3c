package graph_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/yaml"

	"github.com/l7mp/opdispatch/pkg/graph"
)

var _ = Describe("Rendering", func() {
	var root graph.Node

	BeforeEach(func() {
		x := graph.NewInput(0, "x", optIntType)
		c, err := graph.NewConvert(graph.ConstantOf(10), optIntType)
		Expect(err).NotTo(HaveOccurred())
		lt, err := graph.NewBinary(graph.LessThan, x, c)
		Expect(err).NotTo(HaveOccurred())
		n, err := graph.NewUnary(graph.Not, lt)
		Expect(err).NotTo(HaveOccurred())
		root = n
	})

	It("should render infix", func() {
		Expect(root.String()).To(Equal("!(x < nullable.Optional[int](10))"))
	})

	It("should render DOT", func() {
		dot := graph.Dot(root)
		Expect(dot).To(HavePrefix("digraph"))
		Expect(dot).To(ContainSubstring("x: nullable.Optional[int]"))
		Expect(dot).To(ContainSubstring("LessThan [<]"))
		Expect(dot).To(ContainSubstring("to nullable.Optional[int]"))
	})

	It("should render each shared node once", func() {
		x := graph.NewInput(0, "x", intType)
		sq, err := graph.NewBinary(graph.Multiply, x, x)
		Expect(err).NotTo(HaveOccurred())
		dot := graph.Dot(sq)
		Expect(strings.Count(dot, `"x: int"`)).To(Equal(1))
		Expect(dot).To(ContainSubstring(`"Multiply [*]"`))
	})

	It("should render Mermaid", func() {
		m := graph.Mermaid(root)
		Expect(m).To(HavePrefix("```mermaid\n"))
		Expect(m).To(ContainSubstring("flowchart LR"))
	})

	It("should dump YAML", func() {
		s, err := graph.YAML(root)
		Expect(err).NotTo(HaveOccurred())

		var dump map[string]any
		Expect(yaml.Unmarshal([]byte(s), &dump)).To(Succeed())
		Expect(dump).To(HaveKeyWithValue("op", "Not"))
		Expect(dump).To(HaveKeyWithValue("type", "bool"))

		operands := dump["operands"].([]any)
		Expect(operands).To(HaveLen(1))
		lt := operands[0].(map[string]any)
		Expect(lt).To(HaveKeyWithValue("impl", "lifted intrinsic"))
		Expect(lt["operands"]).To(ContainElement(HaveKeyWithValue("wrap", true)))
	})
})
