package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount paired with a currency. Amounts are rounded
// to two decimal places on construction using banker's rounding (half to
// even); every arithmetic result is a new value. Operations between two
// Money values require matching currencies.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value. The amount must not be negative and the
// currency must be a three-letter code; it is stored uppercased.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrInvalidAmount
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := ValidateCurrency(currency); err != nil {
		return Money{}, err
	}

	return Money{
		amount:   amount.RoundBank(2),
		currency: currency,
	}, nil
}

// Zero creates a zero Money value in the given currency.
func Zero(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the uppercased currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns m + o.
func (m Money) Add(o Money) (Money, error) {
	if err := m.ensureSameCurrency(o); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount.Add(o.amount), m.currency)
}

// Sub returns m - o. The subtraction is strict: a result below zero is an
// error, not a saturation to zero.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.ensureSameCurrency(o); err != nil {
		return Money{}, err
	}

	result := m.amount.Sub(o.amount)
	if result.IsNegative() {
		return Money{}, ErrNegativeResult
	}

	return NewMoney(result, m.currency)
}

// Mul returns m scaled by k.
func (m Money) Mul(k decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(k), m.currency)
}

// GreaterThan reports whether m > o.
func (m Money) GreaterThan(o Money) (bool, error) {
	if err := m.ensureSameCurrency(o); err != nil {
		return false, err
	}

	return m.amount.GreaterThan(o.amount), nil
}

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) (bool, error) {
	if err := m.ensureSameCurrency(o); err != nil {
		return false, err
	}

	return m.amount.LessThan(o.amount), nil
}

// GreaterThanOrEqual reports whether m >= o.
func (m Money) GreaterThanOrEqual(o Money) (bool, error) {
	if err := m.ensureSameCurrency(o); err != nil {
		return false, err
	}

	return m.amount.GreaterThanOrEqual(o.amount), nil
}

// LessThanOrEqual reports whether m <= o.
func (m Money) LessThanOrEqual(o Money) (bool, error) {
	if err := m.ensureSameCurrency(o); err != nil {
		return false, err
	}

	return m.amount.LessThanOrEqual(o.amount), nil
}

// Equal reports structural equality: same amount and same currency.
func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.amount.Equal(o.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// String formats as "USD 10.50".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}

func (m Money) ensureSameCurrency(o Money) error {
	if m.currency != o.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, o.currency)
	}

	return nil
}
