/*
Package ops is the type-parameter-addressed surface of the operator engine.

Every function routes to one of two process-wide operator tables, keyed by the static types of its
type arguments, so generic code can apply Go's operators to values of an unconstrained type
parameter:

	func Sum[T any](xs ...T) (T, error) {
		acc := ops.ZeroOf[T]()
		for _, x := range xs {
			if err := ops.AddAssign(&acc, x); err != nil {
				return acc, err
			}
		}
		return acc, nil
	}

The first call for an operator and a type builds and caches the implementation; later calls reuse it.
An operator that is not defined for the type yields the same *graph.UnsupportedOperationError on every
call. The Assign variants write the result back through the reference, like Go's compound assignment
operators, and leave the referenced value untouched on error.
*/
package ops
