// Package operator implements the operator tables of the engine: process-lifetime caches that map an
// operator kind and the operand (and argument) types to a compiled program.
//
// A table builds the program for a key on first request and memoizes the outcome, including permanent
// failures: Get never fails for an operator that is not defined over the types, it returns an
// unsupported program whose every invocation reports the same error instead.
//
// Concurrency: tables are safe for concurrent use. Concurrent misses on the same key may build the
// program more than once; builds are pure and programs immutable, so all builds are equivalent and the
// first one published is kept. WithBuildGuard collapses concurrent builds of a key into one.
package operator
