// Package core defines the ledger domain model: transactions, drafts,
// flow kinds, and money amounts stored as integer cents.
package core

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in integer cents. Calculations stay on
// cents; decimal conversion happens only at the parse and display
// boundaries.
type Money struct {
	Cents int64
}

var (
	centsPerUnit = decimal.NewFromInt(100)
	maxCents     = decimal.NewFromInt(math.MaxInt64)
)

// ParseMoney converts a decimal string such as "45.50" to cents with
// half-up rounding on the third decimal place. Only positive amounts
// are accepted; the flow direction lives on Kind, never on the amount.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Mul(centsPerUnit).Round(0)
	if !cents.IsPositive() || cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(centsPerUnit)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns the difference of two amounts. The result may be
// negative: balances are signed even though stored amounts are not.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// String formats the amount as a dollar string, e.g. "$1154.50" or
// "-$45.50".
func (m Money) String() string {
	d := m.Decimal()
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// MarshalJSON renders the amount in currency units so API consumers see
// "45.5" rather than raw cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal())
}

// UnmarshalJSON accepts an amount in currency units, as produced by
// MarshalJSON and by the entry form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return ErrInvalidAmount
	}
	m.Cents = d.Mul(centsPerUnit).Round(0).IntPart()
	return nil
}
