// Package predicate builds single-input boolean computation graphs and combines them symbolically.
//
// Predicates are combined with And, Or and Not without compiling anything: True and False are
// per-type sentinels that the combinators simplify away by identity, and the input binding of the
// right operand is rewritten to the one of the left operand so every predicate has exactly one input.
// A predicate is compiled on first evaluation and the program is kept for later calls.
//
//	positive := predicate.Create(func(x int) bool { return x > 0 })
//	small, _ := predicate.Parse[int]("x", "x < 10")
//	p := predicate.And(positive, small)
//	ok, _ := p.Evaluate(5) // true
package predicate
