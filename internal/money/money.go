// Package money converts catalog prices into integer minor units (cents) and
// renders minor-unit amounts as US dollar strings. All arithmetic stays in
// integers; decimals only appear at the input boundary.
package money

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MinorPerMajor is the number of cents in a dollar.
	MinorPerMajor = 100

	// MaxMinor is the highest unit price accepted, $1,000,000.00. Together
	// with the cart's stock and line limits it keeps every total inside int64.
	MaxMinor int64 = 100_000_000

	// MaxExponent bounds the decimal exponent of numbers taken from outside
	// input. Comparing or printing a decimal costs time proportional to its
	// exponent, so anything wider is refused before it is inspected.
	MaxExponent = 18

	maxCoefficientBits = 128
)

var (
	ErrNegative   = errors.New("amount is negative")
	ErrNotExact   = errors.New("amount has more precision than one cent")
	ErrOutOfRange = errors.New("amount out of range")
	ErrScale      = errors.New("number exponent or precision out of range")
)

var maxMinor = decimal.NewFromInt(MaxMinor)

// CheckScale rejects decimals whose exponent lies outside ±MaxExponent or
// whose coefficient is wider than 128 bits. Call it before any comparison,
// rescale or String on a decimal that came from a client or a catalog.
func CheckScale(d decimal.Decimal) error {
	if e := d.Exponent(); e < -MaxExponent || e > MaxExponent {
		return errors.Wrapf(ErrScale, "exponent %d", e)
	}
	if d.Coefficient().BitLen() > maxCoefficientBits {
		return errors.Wrap(ErrScale, "too many digits")
	}
	return nil
}

// FromMajor converts a dollar amount such as 109.95 into 10995 cents.
// Amounts that cannot be represented exactly in cents are rejected rather
// than rounded, and amounts above MaxMinor cents fail with ErrOutOfRange.
func FromMajor(amount decimal.Decimal) (int64, error) {
	if err := CheckScale(amount); err != nil {
		return 0, errors.Wrap(ErrOutOfRange, err.Error())
	}
	if amount.IsNegative() {
		return 0, ErrNegative
	}

	cents := amount.Shift(2)
	if !cents.IsInteger() {
		return 0, ErrNotExact
	}
	if cents.GreaterThan(maxMinor) {
		return 0, ErrOutOfRange
	}

	return cents.IntPart(), nil
}

// ToMajor is the inverse of FromMajor, used when echoing prices back in
// major units.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Format renders cents the way en-US currency formatting does:
// 0 -> "$0.00", 6175 -> "$61.75", 123456789 -> "$1,234,567.89".
func Format(minor int64) string {
	sign := ""
	abs := uint64(minor)
	if minor < 0 {
		sign = "-"
		abs = uint64(-(minor + 1)) + 1
	}

	major := int64(abs / MinorPerMajor)
	frac := abs % MinorPerMajor

	p := message.NewPrinter(language.AmericanEnglish)
	return fmt.Sprintf("%s$%s.%02d", sign, p.Sprintf("%d", major), frac)
}
