package payoff

import "errors"

// Sentinel errors forming the engine's failure taxonomy. The engine wraps
// these with context via fmt.Errorf("%w: ...") and callers match with
// errors.Is. Every failure is reported synchronously; nothing is retried
// internally because the engine is a deterministic pure function.
var (
	// ErrNoDebts indicates an empty debt list.
	ErrNoDebts = errors.New("no debts provided")

	// ErrInsufficientFunds indicates the monthly amount does not cover the
	// combined minimum payments. Detected up front, never mid-simulation.
	ErrInsufficientFunds = errors.New("monthly amount does not cover minimum payments")

	// ErrInvalidDebtData indicates an out-of-range interest rate or a
	// negative balance or minimum payment.
	ErrInvalidDebtData = errors.New("invalid debt data")

	// ErrInvalidAmount indicates a non-positive payment or one exceeding
	// the debt's balance.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrInvalidDate indicates a future-dated payment.
	ErrInvalidDate = errors.New("invalid payment date")

	// ErrNoConvergence indicates the simulation exceeded the month bound:
	// accrued interest outpaces payments and the debts never amortize.
	ErrNoConvergence = errors.New("payoff not reached within maximum simulation horizon")
)
