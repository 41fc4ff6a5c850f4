package payment

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DropsPerXRP is the number of drops in one XRP.
const DropsPerXRP = 1_000_000

// maxDrops is the total XRP supply (100 billion XRP) in drops.
var maxDrops = decimal.New(100_000_000_000, 0).Mul(decimal.New(DropsPerXRP, 0))

// ParseAmount reads a positive decimal XRP amount.
func ParseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrInvalidAmount, amount, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w %q: must be positive", ErrInvalidAmount, amount)
	}
	return d, nil
}

// ToDrops converts an XRP amount to its integer drops string, the form the
// Amount field takes for the native asset.
func ToDrops(xrp decimal.Decimal) (string, error) {
	drops := xrp.Mul(decimal.New(DropsPerXRP, 0))
	if !drops.IsInteger() {
		return "", fmt.Errorf("%w %s: more than 6 decimal places", ErrInvalidAmount, xrp)
	}
	if drops.GreaterThan(maxDrops) {
		return "", fmt.Errorf("%w %s: exceeds total supply", ErrInvalidAmount, xrp)
	}
	return drops.String(), nil
}

// FromDrops converts a drops string back to XRP.
func FromDrops(drops string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(drops)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-6), nil
}
