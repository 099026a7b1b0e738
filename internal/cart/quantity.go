package cart

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

// ParseQuantity converts a quantity received from a client into an int.
// Fractional or non-numeric values fail with ErrInvalidQuantity, as do
// decimals whose exponent is outside ±money.MaxExponent. Range is otherwise
// left to UpdateQuantity's clamping.
func ParseQuantity(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return clampInt32(i), nil
	}

	d, err := decimal.NewFromString(n.String())
	if err != nil {
		ve := newValidationError(InvalidQuantity, "quantity", "is not a number")
		ve.Err = err
		return 0, ve
	}
	if err := money.CheckScale(d); err != nil {
		ve := newValidationError(InvalidQuantity, "quantity", "is out of range")
		ve.Err = err
		return 0, ve
	}
	if !d.IsInteger() {
		return 0, newValidationError(InvalidQuantity, "quantity", "must be a whole number")
	}

	switch {
	case d.GreaterThan(decimal.NewFromInt(math.MaxInt32)):
		return math.MaxInt32, nil
	case d.LessThan(decimal.NewFromInt(math.MinInt32)):
		return math.MinInt32, nil
	}
	return int(d.IntPart()), nil
}

func clampInt32(i int64) int {
	return int(max(math.MinInt32, min(i, math.MaxInt32)))
}
