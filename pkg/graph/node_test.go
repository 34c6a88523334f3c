package graph_test

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/opdispatch/internal/testutils"
	"github.com/l7mp/opdispatch/pkg/graph"
	"github.com/l7mp/opdispatch/pkg/nullable"
)

var _ = Describe("Node", func() {
	var x, y *graph.Input

	BeforeEach(func() {
		x = graph.NewInput(0, "x", intType)
		y = graph.NewInput(1, "", intType)
	})

	Context("with leaves", func() {
		It("should render inputs and constants", func() {
			Expect(x.String()).To(Equal("x"))
			Expect(y.String()).To(Equal("$1"))
			Expect(graph.ConstantOf(3).String()).To(Equal("3"))
			Expect(graph.ConstantOf("a").String()).To(Equal(`"a"`))
			Expect(graph.ConstantOf(true).Type()).To(Equal(reflect.TypeFor[bool]()))
		})

		It("should keep the static type of interface constants", func() {
			var err error
			c := graph.ConstantOf(err)
			Expect(c.Type()).To(Equal(reflect.TypeFor[error]()))
		})
	})

	Context("with intrinsic operators", func() {
		It("should build an arithmetic operator", func() {
			n, err := graph.NewBinary(graph.Add, x, y)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Type()).To(Equal(intType))
			Expect(n.Impl.Mode).To(Equal(graph.Intrinsic))
			Expect(n.String()).To(Equal("(x + $1)"))
		})

		It("should give comparisons a bool result", func() {
			n, err := graph.NewBinary(graph.LessThan, x, y)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Type()).To(Equal(boolType))
		})

		It("should accept any integer shift count", func() {
			n, err := graph.NewBinary(graph.ShiftLeft, x, graph.NewInput(1, "n", reflect.TypeFor[uint8]()))
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Type()).To(Equal(intType))
		})

		It("should keep named types", func() {
			c := graph.NewInput(0, "c", celsiusType)
			n, err := graph.NewUnary(graph.Negate, c)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Type()).To(Equal(celsiusType))
			Expect(n.String()).To(Equal("-c"))
		})

		It("should give truth tests on named bools a bool result", func() {
			f := graph.NewInput(0, "f", reflect.TypeFor[testutils.Flag]())
			n, err := graph.NewUnary(graph.IsTrue, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Type()).To(Equal(boolType))
			Expect(n.String()).To(Equal("IsTrue(f)"))
		})

		It("should concatenate strings", func() {
			s := graph.NewInput(0, "s", stringType)
			_, err := graph.NewBinary(graph.Add, s, s)
			Expect(err).NotTo(HaveOccurred())
			_, err = graph.NewBinary(graph.Subtract, s, s)
			Expect(graph.IsUnsupported(err)).To(BeTrue())
		})
	})

	Context("with unsupported operators", func() {
		It("should reject the complement of a bool", func() {
			b := graph.NewInput(0, "b", boolType)
			_, err := graph.NewUnary(graph.Complement, b)
			Expect(err).To(HaveOccurred())
			Expect(graph.IsUnsupported(err)).To(BeTrue())
			Expect(err.Error()).To(Equal("unsupported operation: operator Complement (^) is not defined for type bool"))
		})

		It("should reject mixed operand types", func() {
			_, err := graph.NewBinary(graph.Add, x, graph.NewInput(1, "y", int64Type))
			Expect(graph.IsUnsupported(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("types int and int64"))
		})

		It("should reject a kind of the wrong arity", func() {
			_, err := graph.NewUnary(graph.Add, x)
			Expect(err).To(HaveOccurred())
			Expect(graph.IsUnsupported(err)).To(BeFalse())
			_, err = graph.NewBinary(graph.Negate, x, y)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with method operators", func() {
		var m *graph.Input

		BeforeEach(func() {
			m = graph.NewInput(0, "m", moneyType)
		})

		It("should resolve operator methods", func() {
			n, err := graph.NewBinary(graph.Add, m, m)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Impl.Mode).To(Equal(graph.MethodCall))
			Expect(n.Impl.Method.Name).To(Equal("Add"))
			Expect(n.Type()).To(Equal(moneyType))
		})

		It("should resolve comparison methods", func() {
			n, err := graph.NewBinary(graph.Equal, m, m)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Impl.Method.Name).To(Equal("Equals"))
			Expect(n.Type()).To(Equal(boolType))
		})

		It("should fall back to intrinsic equality of comparable structs", func() {
			n, err := graph.NewBinary(graph.NotEqual, m, m)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Impl.Mode).To(Equal(graph.Intrinsic))
		})

		It("should reject missing methods", func() {
			_, err := graph.NewBinary(graph.Multiply, m, m)
			Expect(graph.IsUnsupported(err)).To(BeTrue())
		})
	})

	Context("with optionals", func() {
		var o *graph.Input

		BeforeEach(func() {
			o = graph.NewInput(0, "o", optIntType)
		})

		It("should lift arithmetic", func() {
			n, err := graph.NewBinary(graph.Multiply, o, o)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Impl.Mode).To(Equal(graph.Lifted))
			Expect(n.Impl.Elem).To(Equal(intType))
			Expect(n.Impl.Inner.Mode).To(Equal(graph.Intrinsic))
			Expect(n.Type()).To(Equal(optIntType))
		})

		It("should lift comparisons to bool", func() {
			n, err := graph.NewBinary(graph.GreaterThan, o, o)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.Type()).To(Equal(boolType))
		})

		It("should not lift operators the underlying type lacks", func() {
			s := graph.NewInput(0, "s", reflect.TypeFor[nullable.Optional[string]]())
			_, err := graph.NewUnary(graph.Negate, s)
			Expect(graph.IsUnsupported(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("nullable.Optional[string]"))
		})
	})

	Context("with conversions", func() {
		It("should elide identity conversions", func() {
			n, err := graph.NewConvert(x, intType)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeIdenticalTo(x))
		})

		It("should plan numeric conversions", func() {
			n, err := graph.NewConvert(x, int64Type)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.(*graph.Convert).Plan).To(Equal(graph.ConversionPlan{Via: int64Type}))
			Expect(n.String()).To(Equal("int64(x)"))
		})

		It("should plan wrapping and unwrapping", func() {
			n, err := graph.NewConvert(x, optIntType)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.(*graph.Convert).Plan).To(Equal(graph.ConversionPlan{Via: intType, Wrap: true}))

			o := graph.NewInput(0, "o", optIntType)
			n, err = graph.NewConvert(o, int64Type)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.(*graph.Convert).Plan).To(Equal(graph.ConversionPlan{Unwrap: true, Via: int64Type}))
		})

		It("should reject undefined conversions", func() {
			_, err := graph.NewConvert(x, moneyType)
			Expect(graph.IsUnsupported(err)).To(BeTrue())
			Expect(err.Error()).To(Equal("unsupported operation: no conversion is defined from int to testutils.Money"))
		})
	})

	Context("with native calls", func() {
		It("should call a function over nodes", func() {
			c, err := graph.NewCall(func(a, b int) bool { return a < b }, x, y)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Type()).To(Equal(boolType))
			Expect(graph.Inputs(c)).To(Equal([]*graph.Input{x, y}))
		})

		It("should check the signature", func() {
			_, err := graph.NewCall(func(a string) bool { return a == "" }, x)
			Expect(err).To(HaveOccurred())
			_, err = graph.NewCall(func(int) (bool, error) { return true, nil }, x)
			Expect(err).To(HaveOccurred())
			_, err = graph.NewCall(42, x)
			Expect(err).To(HaveOccurred())
		})
	})

	It("should list distinct inputs in order of appearance", func() {
		a, err := graph.NewBinary(graph.Add, y, x)
		Expect(err).NotTo(HaveOccurred())
		b, err := graph.NewBinary(graph.Multiply, a, x)
		Expect(err).NotTo(HaveOccurred())
		Expect(graph.Inputs(b)).To(Equal([]*graph.Input{y, x}))

		count := 0
		graph.Walk(b, func(graph.Node) { count++ })
		Expect(count).To(Equal(5))
	})
})
