package tally

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
//
// Amounts are exact decimals and carry no currency of their own: the tracker
// is single-currency, and the currency code only matters when formatting for
// display.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a plain decimal string into a Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// String returns the plain decimal representation, without currency symbol.
func (m Money) String() string { return m.value.String() }

// Format renders the value in the given ISO currency code, e.g. "$1,200.00"
// for "USD".
func (m Money) Format(code string) string {
	cur := *money.New(0, code).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }

// MulInt scales the value by an integer quantity.
func (m Money) MulInt(q int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(q))}
}

// Div returns the exact ratio of two amounts, e.g. how many unit costs fit
// in an investment. n must not be zero.
func (m Money) Div(n Money) decimal.Decimal {
	return m.value.Div(n.value)
}

// PercentOf returns m as a percentage of n (m/n*100). n must not be zero.
func (m Money) PercentOf(n Money) Percent {
	return Percent(m.Div(n).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// MarshalJSON implements json.Marshaler, emitting the amount as a plain
// number.
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler, accepting both a number and a
// quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }

// Percent is a ratio expressed in percent (e.g. 42.2 for 42.2%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
