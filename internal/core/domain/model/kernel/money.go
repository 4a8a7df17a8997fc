package kernel

import (
	"fmt"
	"regexp"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	// MaxMarkup caps the broker markup at 1000%.
	MaxMarkup = decimal.NewFromInt(10)

	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")
)

// Money is a non-negative decimal amount in a three letter currency.
// Amounts are kept at cent precision.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates and rounds amount to two decimal places.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	if !currencyPattern.MatchString(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	return Money{amount: amount.Round(2), currency: currency}, nil
}

// MustMoney is NewMoney for literals in tests and fixtures.
func MustMoney(amount string, currency string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Validate() error {
	if m.currency == "" {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// WithMarkup returns m increased by rate, e.g. 0.30 turns 100.00 into 130.00.
func (m Money) WithMarkup(rate decimal.Decimal) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if rate.IsNegative() || rate.GreaterThan(MaxMarkup) {
		return Money{}, errs.NewValueIsOutOfRangeError("markup", rate.String(), 0, MaxMarkup.String())
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(1).Add(rate)), m.currency)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
