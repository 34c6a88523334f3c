package graph

// Kind identifies an operator.
type Kind int

const (
	// unary
	Negate Kind = iota
	Not
	Complement
	Increment
	Decrement
	IsTrue
	IsFalse

	// binary arithmetic and bitwise
	Add
	Subtract
	Multiply
	Divide
	Modulo
	And
	Or
	Xor
	ShiftLeft
	ShiftRight

	// comparisons
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	// short-circuit logic, used by predicate graphs
	AndAlso
	OrElse

	numKinds
)

var kindNames = [numKinds]string{
	Negate:             "Negate",
	Not:                "Not",
	Complement:         "Complement",
	Increment:          "Increment",
	Decrement:          "Decrement",
	IsTrue:             "IsTrue",
	IsFalse:            "IsFalse",
	Add:                "Add",
	Subtract:           "Subtract",
	Multiply:           "Multiply",
	Divide:             "Divide",
	Modulo:             "Modulo",
	And:                "And",
	Or:                 "Or",
	Xor:                "Xor",
	ShiftLeft:          "ShiftLeft",
	ShiftRight:         "ShiftRight",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	LessThan:           "LessThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThan:        "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	AndAlso:            "AndAlso",
	OrElse:             "OrElse",
}

var kindSymbols = [numKinds]string{
	Negate:             "-",
	Not:                "!",
	Complement:         "^",
	Increment:          "++",
	Decrement:          "--",
	IsTrue:             "true?",
	IsFalse:            "false?",
	Add:                "+",
	Subtract:           "-",
	Multiply:           "*",
	Divide:             "/",
	Modulo:             "%",
	And:                "&",
	Or:                 "|",
	Xor:                "^",
	ShiftLeft:          "<<",
	ShiftRight:         ">>",
	Equal:              "==",
	NotEqual:           "!=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	AndAlso:            "&&",
	OrElse:             "||",
}

// Method names looked up on operand types that are not intrinsically supported. The names follow the
// cty.Value method set.
var kindMethods = [numKinds]string{
	Negate:             "Negate",
	Not:                "Not",
	IsTrue:             "True",
	IsFalse:            "False",
	Add:                "Add",
	Subtract:           "Subtract",
	Multiply:           "Multiply",
	Divide:             "Divide",
	Modulo:             "Modulo",
	And:                "And",
	Or:                 "Or",
	Equal:              "Equals",
	NotEqual:           "NotEqual",
	LessThan:           "LessThan",
	LessThanOrEqual:    "LessThanOrEqualTo",
	GreaterThan:        "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqualTo",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// Symbol returns the Go operator token of the kind.
func (k Kind) Symbol() string {
	if k < 0 || k >= numKinds {
		return "?"
	}
	return kindSymbols[k]
}

// IsUnary reports whether the kind takes a single operand.
func (k Kind) IsUnary() bool { return k >= Negate && k <= IsFalse }

// IsBinary reports whether the kind takes two operands.
func (k Kind) IsBinary() bool { return k >= Add && k < numKinds }

// IsComparison reports whether the kind yields a bool from two operands.
func (k Kind) IsComparison() bool { return k >= Equal && k <= GreaterThanOrEqual }

// IsShift reports whether the kind is a shift.
func (k Kind) IsShift() bool { return k == ShiftLeft || k == ShiftRight }

// IsPredicate reports whether the kind always yields a bool.
func (k Kind) IsPredicate() bool {
	return k == IsTrue || k == IsFalse || k.IsComparison() || k == AndAlso || k == OrElse
}

// MethodName returns the method name that provides the operator on non-intrinsic types, or "".
func (k Kind) MethodName() string {
	if k < 0 || k >= numKinds {
		return ""
	}
	return kindMethods[k]
}

// UnaryKinds lists every unary kind.
func UnaryKinds() []Kind {
	return []Kind{Negate, Not, Complement, Increment, Decrement, IsTrue, IsFalse}
}

// BinaryKinds lists every binary kind except the short-circuit ones.
func BinaryKinds() []Kind {
	return []Kind{Add, Subtract, Multiply, Divide, Modulo, And, Or, Xor, ShiftLeft, ShiftRight,
		Equal, NotEqual, LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual}
}
