package kernel

import (
	"errors"
	"fmt"

	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAmountIsNotConstructed = errors.New("Amount must be created via NewAmount")

// Amount is a non-negative decimal: money, labor hours, rates and exchange rates.
type Amount struct {
	value decimal.Decimal
	guard guard.ConstructorGuard
}

// NewAmount rejects negative values. paramName is used in the error.
func NewAmount(paramName string, v decimal.Decimal) (Amount, error) {
	if v.IsNegative() {
		return Amount{}, errs.NewValueIsInvalidErrorWithCause(
			paramName, fmt.Errorf("%s is negative", v.String()))
	}
	return Amount{value: v, guard: guard.NewConstructorGuard()}, nil
}

// ZeroAmount returns a constructed zero.
func ZeroAmount() Amount {
	return Amount{value: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// MustAmount parses s and panics on failure. Intended for constants and tests.
func MustAmount(s string) Amount {
	d := decimal.RequireFromString(s)
	a, err := NewAmount("amount", d)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Validate() error {
	return a.guard.Validate(ErrAmountIsNotConstructed)
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Add returns the sum; the sum of two non-negative amounts stays non-negative.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value), guard: guard.NewConstructorGuard()}
}

func (a Amount) IsEqual(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) String() string {
	return a.value.String()
}
