package testutils

import (
	"errors"
	"fmt"
)

// Celsius is a named numeric type: it supports the intrinsic operators of float64 but is a
// distinct operand type.
type Celsius float64

// Flag is a named bool.
type Flag bool

// Money is an amount in cents. It has no intrinsic operators and provides a subset of them as
// methods instead.
type Money struct {
	Cents int64
}

func (m Money) Add(o Money) Money      { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Subtract(o Money) Money { return Money{Cents: m.Cents - o.Cents} }
func (m Money) Negate() Money          { return Money{Cents: -m.Cents} }
func (m Money) LessThan(o Money) bool  { return m.Cents < o.Cents }
func (m Money) Equals(o Money) bool    { return m.Cents == o.Cents }

// Divide panics on a zero divisor.
func (m Money) Divide(o Money) Money {
	if o.Cents == 0 {
		panic(errors.New("division by zero amount"))
	}
	return Money{Cents: m.Cents / o.Cents}
}

func (m Money) String() string { return fmt.Sprintf("$%d.%02d", m.Cents/100, m.Cents%100) }

// Shape is an interface operand type.
type Shape interface {
	Area() float64
}

// Square is a comparable Shape.
type Square struct{ Side float64 }

func (s Square) Area() float64 { return s.Side * s.Side }

// Polygon is a Shape that cannot be compared.
type Polygon struct{ Points []float64 }

func (p Polygon) Area() float64 { return 0 }
