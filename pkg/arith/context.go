// Package arith rounds shopspring decimals to a fixed number of significant
// digits, half-even, the way IEEE 754 decimal64 arithmetic does.
package arith

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("argument out of domain")
)

// Context performs decimal arithmetic rounded to Precision significant digits.
type Context struct {
	Precision int32
}

// Decimal64 is the 16 digit, round-half-even context used for all market figures.
var Decimal64 = Context{Precision: 16}

const maxRootIterations = 64

// Round rounds d to the context precision using round-half-even.
func (c Context) Round(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	digits := int32(d.NumDigits())
	if digits <= c.Precision {
		return d
	}
	places := c.Precision - (digits + d.Exponent())
	return d.RoundBank(places)
}

func (c Context) Add(x, y decimal.Decimal) decimal.Decimal {
	return c.Round(x.Add(y))
}

func (c Context) Sub(x, y decimal.Decimal) decimal.Decimal {
	return c.Round(x.Sub(y))
}

func (c Context) Mul(x, y decimal.Decimal) decimal.Decimal {
	return c.Round(x.Mul(y))
}

// Quo divides x by y. A zero divisor yields ErrDivisionByZero instead of a panic.
func (c Context) Quo(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, x.String())
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}

	// Two guard digits past the precision, then a sticky digit for the
	// remainder, are enough for half-even to see the true tie position.
	places := c.Precision + 2 - (leadingPosition(x) - leadingPosition(y))
	q, r := x.QuoRem(y, places)
	if !r.IsZero() {
		sticky := decimal.New(int64(x.Sign()*y.Sign()), -(places + 1))
		q = q.Add(sticky)
	}
	return c.Round(q), nil
}

// Pow raises x to a non-negative integer power by repeated squaring,
// rounding every intermediate product.
func (c Context) Pow(x decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	base := x
	for n > 0 {
		if n&1 == 1 {
			result = c.Mul(result, base)
		}
		n >>= 1
		if n > 0 {
			base = c.Mul(base, base)
		}
	}
	return result
}

// Root returns the principal n-th root of x. Newton's iteration runs at
// twice the context precision, seeded from a float64 estimate.
func (c Context) Root(x decimal.Decimal, n int) (decimal.Decimal, error) {
	switch {
	case n < 1:
		return decimal.Zero, fmt.Errorf("%w: root index %d", ErrDomain, n)
	case x.IsNegative():
		return decimal.Zero, fmt.Errorf("%w: root of negative value %s", ErrDomain, x.String())
	case x.IsZero():
		return decimal.Zero, nil
	case n == 1:
		return c.Round(x), nil
	}

	work := Context{Precision: 2*c.Precision + 2}
	nd := decimal.NewFromInt(int64(n))
	nMinusOne := decimal.NewFromInt(int64(n - 1))
	tolerance := decimal.New(1, -(work.Precision - 2))

	guess := estimateRoot(x, n)
	for i := 0; i < maxRootIterations; i++ {
		// x' = ((n-1)x + P/x^(n-1)) / n
		ratio, err := work.Quo(x, work.Pow(guess, n-1))
		if err != nil {
			return decimal.Zero, err
		}
		next, err := work.Quo(work.Add(work.Mul(nMinusOne, guess), ratio), nd)
		if err != nil {
			return decimal.Zero, err
		}
		delta, err := work.Quo(next.Sub(guess).Abs(), next)
		if err != nil {
			return decimal.Zero, err
		}
		guess = next
		if delta.Cmp(tolerance) <= 0 {
			break
		}
	}
	return c.Round(guess), nil
}

// leadingPosition is the count of integer digits of d, negative or zero
// for |d| < 1 (0.00123 yields -2).
func leadingPosition(d decimal.Decimal) int32 {
	return int32(d.NumDigits()) + d.Exponent()
}

func estimateRoot(x decimal.Decimal, n int) decimal.Decimal {
	mant := new(big.Float).SetInt(x.Coefficient())
	exp2 := mant.MantExp(mant)
	m, _ := mant.Float64()
	log2x := math.Log2(m) + float64(exp2) + float64(x.Exponent())*math.Log2(10)
	estimate := math.Exp2(log2x / float64(n))
	if estimate <= 0 || math.IsInf(estimate, 0) || math.IsNaN(estimate) {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(estimate)
}

// Parse reads a decimal literal, ignoring surrounding whitespace. The value
// is kept exact; rounding happens in the operations that consume it.
func Parse(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) decimal.Decimal {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
