// Package money provides integer-cent currency arithmetic and the rounding
// rule used throughout the payoff engine.
package money

import (
	"math"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

// Cents is a currency amount in whole cents. All simulation arithmetic is
// carried out in Cents so that rounding cannot drift across hundreds of
// simulated months; decimal dollars appear only at the API boundary.
type Cents int64

// RoundHalfUp rounds a fractional cent amount to whole cents, with halves
// rounding up.
func RoundHalfUp(fractionalCents float64) Cents {
	return Cents(math.Floor(fractionalCents + 0.5))
}

// FromDollars converts a decimal dollar amount to Cents using round-half-up.
func FromDollars(dollars float64) Cents {
	return RoundHalfUp(dollars * constants.CentsPerDollar)
}

// Dollars converts back to a decimal dollar amount.
func (c Cents) Dollars() float64 {
	return float64(c) / constants.CentsPerDollar
}

// MonthlyInterest returns one month of interest on a balance at the given
// annual percentage rate, rounded to whole cents. Zero for non-positive
// balances or rates.
func MonthlyInterest(balance Cents, annualRatePct float64) Cents {
	if balance <= 0 || annualRatePct <= 0 {
		return 0
	}
	monthlyRate := annualRatePct / constants.PercentageMultiplier / constants.MonthsPerYear
	return RoundHalfUp(float64(balance) * monthlyRate)
}

// Min returns the smaller of two cent amounts.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two cent amounts.
func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}
