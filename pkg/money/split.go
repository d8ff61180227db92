// pkg/money/split.go
package money

import (
	"fmt"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents rounds amount half away from zero to whole cents.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// FromCents converts a cent count back to a two-decimal amount.
func FromCents(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// SplitEqually divides amount into n shares that differ by at most one cent.
// Leftover cents go one each to the first shares, so the shares always add up
// to the amount rounded to cents.
func SplitEqually(amount float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.ValidationFailed(
			"invalid split",
			"at least one debtor is required",
		)
	}
	total := ToCents(amount)
	if total <= 0 {
		return nil, errors.ValidationFailed(
			"invalid amount",
			fmt.Sprintf("amount must be positive, got %v", amount),
		)
	}

	base := total / int64(n)
	remainder := total % int64(n)
	shares := make([]float64, n)
	for i := range shares {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares[i] = FromCents(cents)
	}
	return shares, nil
}
