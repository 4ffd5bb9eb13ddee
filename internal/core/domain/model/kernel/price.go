package kernel

import (
	"fmt"

	"notapos/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Price is a value object for a non-negative monetary amount. It captures the
// unit price of an order item at the moment the item is created, so later menu
// changes never alter an existing item.
//
// Price is immutable; arithmetic and comparison go through the underlying
// decimal value to avoid float rounding on money.
type Price struct {
	amount decimal.Decimal
}

// NewPrice creates a Price from a decimal amount.
// Returns an error if the amount is negative.
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Price{amount: amount}, nil
}

// PriceFromString parses a decimal string such as "17.00" into a Price.
func PriceFromString(s string) (Price, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return NewPrice(amount)
}

// Amount returns the underlying decimal value.
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// String returns the fixed-point representation with two decimal places.
func (p Price) String() string {
	return p.amount.StringFixed(2)
}

// IsEqual compares two prices by numeric value, so "17.0" equals "17.00".
func (p Price) IsEqual(other Price) bool {
	return p.amount.Equal(other.amount)
}

// Validate returns an error if the price is negative. The zero value is a
// valid zero price: free items (comped dishes) are legal.
func (p Price) Validate() error {
	if p.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is negative", p.amount.String()),
		)
	}
	return nil
}
