package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is an amount in LKR minor units. All ledger arithmetic happens on
// this type so balance comparisons are exact.
type Cents int64

var (
	ErrNotPositive = errors.New("amount must be positive")
	ErrTooPrecise  = errors.New("amount must have at most 2 decimal places")
	ErrNotAnAmount = errors.New("invalid amount")
	hundred        = decimal.NewFromInt(100)
	maxMinorDigits = int32(2)
)

// FromDecimal converts a decimal currency amount to minor units.
// Fails on more than 2 decimal places rather than rounding silently.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	if d.Exponent() < -maxMinorDigits {
		scaled := d.Mul(hundred)
		if !scaled.Equal(scaled.Truncate(0)) {
			return 0, ErrTooPrecise
		}
	}
	return Cents(d.Mul(hundred).IntPart()), nil
}

// FromDecimalPositive is FromDecimal plus an amount > 0 guard, the common
// precondition of every ledger mutation.
func FromDecimalPositive(d decimal.Decimal) (Cents, error) {
	c, err := FromDecimal(d)
	if err != nil {
		return 0, err
	}
	if c <= 0 {
		return 0, ErrNotPositive
	}
	return c, nil
}

// Parse reads a decimal string like "1500.00" into minor units.
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotAnAmount
	}
	return FromDecimal(d)
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c)).Div(hundred)
}

// String renders with exactly two decimal places ("1500.00").
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Split divides total into n parts differing by at most one cent; the
// leftover cents land on the earliest parts. Sum of parts == total.
func Split(total Cents, n int) []Cents {
	if n <= 0 {
		return nil
	}
	base := total / Cents(n)
	rem := total - base*Cents(n)
	out := make([]Cents, n)
	for i := range out {
		out[i] = base
		if Cents(i) < rem {
			out[i]++
		}
	}
	return out
}

// ProRata splits total across weights proportionally using the
// largest-remainder method. Sum of parts == total; zero weights get zero.
func ProRata(total Cents, weights []Cents) []Cents {
	var sum Cents
	for _, w := range weights {
		sum += w
	}
	out := make([]Cents, len(weights))
	if sum <= 0 {
		return out
	}
	type rem struct {
		idx  int
		frac Cents
	}
	var assigned Cents
	rems := make([]rem, 0, len(weights))
	for i, w := range weights {
		share := total * w
		out[i] = share / sum
		assigned += out[i]
		rems = append(rems, rem{idx: i, frac: share % sum})
	}
	// hand out the leftover cents to the largest fractional shares
	left := total - assigned
	for left > 0 {
		best := -1
		for j := range rems {
			if best == -1 || rems[j].frac > rems[best].frac {
				best = j
			}
		}
		out[rems[best].idx]++
		rems[best].frac = -1
		left--
	}
	return out
}
