package predicate_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/opdispatch/internal/testutils"
	"github.com/l7mp/opdispatch/pkg/graph"
	"github.com/l7mp/opdispatch/pkg/nullable"
	"github.com/l7mp/opdispatch/pkg/predicate"
)

var (
	loglevel = 6
	logger   = testutils.NewLogger(GinkgoWriter, loglevel)
)

func TestPredicate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Predicate")
}

var _ = BeforeSuite(func() {
	predicate.SetLogger(logger)
})

func eval[T any](p *predicate.Predicate[T], v T) bool {
	GinkgoHelper()
	ret, err := p.Evaluate(v)
	Expect(err).NotTo(HaveOccurred())
	return ret
}

var _ = Describe("Sentinels", func() {
	It("should be reference-stable per type", func() {
		Expect(predicate.True[int]()).To(BeIdenticalTo(predicate.True[int]()))
		Expect(predicate.False[int]()).To(BeIdenticalTo(predicate.False[int]()))
		Expect(predicate.True[int]()).NotTo(BeIdenticalTo(predicate.False[int]()))
		Expect(predicate.True[int]().Param().Type()).NotTo(Equal(predicate.True[string]().Param().Type()))
	})

	It("should be recognized by identity only", func() {
		Expect(predicate.True[int]().IsTrue()).To(BeTrue())
		Expect(predicate.False[int]().IsFalse()).To(BeTrue())

		literal := predicate.Create(func(int) bool { return true })
		Expect(literal.IsTrue()).To(BeFalse())
	})
})

var _ = Describe("Combinators", func() {
	var positive, even *predicate.Predicate[int]

	BeforeEach(func() {
		positive = predicate.Create(func(x int) bool { return x > 0 })
		even = predicate.Create(func(x int) bool { return x%2 == 0 })
	})

	Context("with the identity laws", func() {
		It("should drop True from conjunctions", func() {
			Expect(predicate.And(predicate.True[int](), positive)).To(BeIdenticalTo(positive))
			Expect(predicate.And(positive, predicate.True[int]())).To(BeIdenticalTo(positive))
		})

		It("should absorb into False in conjunctions", func() {
			Expect(predicate.And(positive, predicate.False[int]())).To(BeIdenticalTo(predicate.False[int]()))
			Expect(predicate.And(predicate.False[int](), positive)).To(BeIdenticalTo(predicate.False[int]()))
		})

		It("should drop False from disjunctions", func() {
			Expect(predicate.Or(predicate.False[int](), positive)).To(BeIdenticalTo(positive))
			Expect(predicate.Or(positive, predicate.False[int]())).To(BeIdenticalTo(positive))
		})

		It("should absorb into True in disjunctions", func() {
			Expect(predicate.Or(positive, predicate.True[int]())).To(BeIdenticalTo(predicate.True[int]()))
			Expect(predicate.Or(predicate.True[int](), positive)).To(BeIdenticalTo(predicate.True[int]()))
		})

		It("should be idempotent", func() {
			Expect(predicate.And(positive, positive)).To(BeIdenticalTo(positive))
			Expect(predicate.Or(positive, positive)).To(BeIdenticalTo(positive))
		})

		It("should exchange the sentinels under negation", func() {
			Expect(predicate.Not(predicate.True[int]())).To(BeIdenticalTo(predicate.False[int]()))
			Expect(predicate.Not(predicate.False[int]())).To(BeIdenticalTo(predicate.True[int]()))
		})
	})

	It("should match the inner predicate under a True conjunction", func() {
		p := predicate.And(predicate.True[int](), positive)
		Expect(eval(p, 5)).To(BeTrue())
		Expect(eval(p, -1)).To(BeFalse())
		Expect(eval(p, 5)).To(Equal(eval(positive, 5)))
	})

	It("should bind combined predicates to the left input", func() {
		p := predicate.And(positive, even)
		Expect(p.Param()).To(BeIdenticalTo(positive.Param()))
		Expect(graph.Inputs(p.Body())).To(Equal([]*graph.Input{positive.Param()}))
		Expect(p.Body().(*graph.Binary).Kind).To(Equal(graph.AndAlso))

		Expect(eval(p, 4)).To(BeTrue())
		Expect(eval(p, 3)).To(BeFalse())
		Expect(eval(p, -2)).To(BeFalse())
	})

	It("should not mutate the operands", func() {
		before := even.Body()
		p := predicate.Or(positive, even)
		Expect(even.Body()).To(BeIdenticalTo(before))
		Expect(graph.Inputs(even.Body())).To(Equal([]*graph.Input{even.Param()}))

		Expect(eval(p, -2)).To(BeTrue())
		Expect(eval(p, -3)).To(BeFalse())
		Expect(eval(even, -2)).To(BeTrue())
	})

	It("should combine chains", func() {
		small := predicate.Create(func(x int) bool { return x < 100 })
		p := predicate.And(predicate.And(positive, even), predicate.Or(small, predicate.False[int]()))
		Expect(graph.Inputs(p.Body())).To(HaveLen(1))
		Expect(eval(p, 42)).To(BeTrue())
		Expect(eval(p, 142)).To(BeFalse())
	})

	It("should negate predicates", func() {
		p := predicate.Not(positive)
		Expect(eval(p, 1)).To(BeFalse())
		Expect(eval(p, 0)).To(BeTrue())
	})

	It("should evaluate the sentinels", func() {
		Expect(eval(predicate.True[int](), 0)).To(BeTrue())
		Expect(eval(predicate.False[int](), 0)).To(BeFalse())
	})

	It("should compile once", func() {
		p := predicate.And(positive, even)
		p1, err := p.Compile()
		Expect(err).NotTo(HaveOccurred())
		p2, err := p.Compile()
		Expect(err).NotTo(HaveOccurred())
		Expect(p2).To(BeIdenticalTo(p1))
	})

	It("should render predicates", func() {
		p := predicate.And(positive, predicate.Not(even))
		Expect(p.String()).To(MatchRegexp(`^\(.+\(x\) && !.+\(x\)\)$`))
		Expect(p.Dot()).To(ContainSubstring("AndAlso [&&]"))
		Expect(predicate.True[int]().String()).To(Equal("true"))
	})

	It("should reject a nil function", func() {
		Expect(func() { predicate.Create[int](nil) }).To(Panic())
	})
})

var _ = Describe("Parse", func() {
	It("should parse comparisons", func() {
		p, err := predicate.Parse[int]("x", "x > 0")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.String()).To(Equal("(x > 0)"))
		Expect(eval(p, 5)).To(BeTrue())
		Expect(eval(p, -1)).To(BeFalse())
	})

	It("should parse logic and arithmetic", func() {
		p, err := predicate.Parse[int]("n", "n % 2 == 0 && !(n < 0) || n == -7")
		Expect(err).NotTo(HaveOccurred())
		Expect(eval(p, 4)).To(BeTrue())
		Expect(eval(p, 3)).To(BeFalse())
		Expect(eval(p, -4)).To(BeFalse())
		Expect(eval(p, -7)).To(BeTrue())
	})

	It("should give literals the type of the variable", func() {
		p, err := predicate.Parse[testutils.Celsius]("t", "t * 2 >= 37.5")
		Expect(err).NotTo(HaveOccurred())
		Expect(eval(p, 20)).To(BeTrue())
		Expect(eval(p, 18)).To(BeFalse())

		s, err := predicate.Parse[string]("s", `s == "on" || s == "yes"`)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval(s, "yes")).To(BeTrue())
		Expect(eval(s, "no")).To(BeFalse())
	})

	It("should parse predicates over optionals", func() {
		p, err := predicate.Parse[nullable.Optional[int]]("x", "x >= 10")
		Expect(err).NotTo(HaveOccurred())
		Expect(eval(p, nullable.Of(10))).To(BeTrue())
		Expect(eval(p, nullable.None[int]())).To(BeFalse())
	})

	It("should fold constant expressions into sentinels", func() {
		p, err := predicate.Parse[int]("x", "1 < 2")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeIdenticalTo(predicate.True[int]()))

		p, err = predicate.Parse[int]("x", "false")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeIdenticalTo(predicate.False[int]()))
	})

	It("should combine with created predicates", func() {
		parsed, err := predicate.Parse[int]("v", "v < 10")
		Expect(err).NotTo(HaveOccurred())
		p := predicate.And(predicate.Create(func(x int) bool { return x > 0 }), parsed)
		Expect(eval(p, 5)).To(BeTrue())
		Expect(eval(p, 15)).To(BeFalse())
	})

	It("should reject malformed predicates", func() {
		_, err := predicate.Parse[int]("x", "x >")
		Expect(err).To(HaveOccurred())

		_, err = predicate.Parse[int]("x", "y > 0")
		Expect(err).To(MatchError(ContainSubstring("unknown variable")))

		_, err = predicate.Parse[int]("x", "x + 1")
		Expect(err).To(MatchError(ContainSubstring("must be of type bool")))

		_, err = predicate.Parse[int]("x", `x == "a"`)
		Expect(err).To(MatchError(ContainSubstring("cannot be used as int")))

		_, err = predicate.Parse[int]("x", "x > 1.5")
		Expect(err).To(HaveOccurred())

		_, err = predicate.Parse[string]("s", "s > 0 ? true : false")
		Expect(err).To(MatchError(ContainSubstring("unsupported expression")))
	})

	It("should reject unsupported operators", func() {
		_, err := predicate.Parse[bool]("b", "b < true")
		Expect(graph.IsUnsupported(err)).To(BeTrue())

		_, err = predicate.Parse[int]("x", "!x == -1")
		Expect(err).To(MatchError(ContainSubstring("logical not requires a bool operand")))

		p, err := predicate.Parse[nullable.Optional[bool]]("b", "!(b == true)")
		Expect(err).NotTo(HaveOccurred())
		Expect(eval(p, nullable.Of(false))).To(BeTrue())
	})
})
