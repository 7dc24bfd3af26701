// Package money holds the fixed-point rounding and determinism primitives
// shared by every form and the report store: half-up rounding at
// line-emission boundaries, and the canonical content hash used for both
// cache fingerprints and report version integrity hashes.
package money

import "github.com/shopspring/decimal"

// Zero is the canonical zero value, exported so callers never construct it
// ad hoc with decimal.NewFromInt(0).
var Zero = decimal.Zero

// Round2 rounds to 2 fractional digits, half-up. Use at the point a form
// line is emitted or placed into a result summary — never on intermediates
// that still feed a threshold comparison.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundPercent rounds a percentage/ratio to 6 fractional digits, per the
// data model's percentage precision.
func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(6)
}

// ClampNonNegative floors a value at zero. Many statutory formulas are
// defined as max(0, ...); this names that idiom.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampRatio clamps a ratio into [0, 1], the shape every phaseout fraction
// in this system must satisfy.
func ClampRatio(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return d
}

// Sum adds a slice of decimals, returning Zero for an empty slice.
func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
