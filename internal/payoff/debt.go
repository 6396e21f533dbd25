// Package payoff implements the debt payoff simulation engine: given a set
// of outstanding debts and a fixed monthly budget it computes a
// deterministic month-by-month amortization schedule under the avalanche or
// snowball allocation strategy, reports total interest and payoff date, and
// supports strategy comparison and recording of actual payments.
package payoff

import (
	"fmt"
	"math"

	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/money"
)

// DebtSnapshot is the immutable per-debt input captured at the start of a
// simulation run. Amounts are decimal dollars; the simulator converts them
// to integer cents once and works on a private mutable copy.
type DebtSnapshot struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name,omitempty"`
	Balance      float64 `json:"balance"`
	InterestRate float64 `json:"interestRate"` // annual percentage, 0-100
	MinPayment   float64 `json:"minPayment"`
}

// Validate checks the snapshot for values the simulator refuses to work
// with. Upstream CRUD should already enforce these ranges; this re-check
// keeps NaN and negative-rate pathologies out of the simulation loop.
func (d DebtSnapshot) Validate() error {
	if math.IsNaN(d.InterestRate) || math.IsInf(d.InterestRate, 0) ||
		d.InterestRate < constants.MinInterestRate || d.InterestRate > constants.MaxInterestRate {
		return fmt.Errorf("%w: debt %d interest rate %v outside [%v, %v]",
			ErrInvalidDebtData, d.ID, d.InterestRate, constants.MinInterestRate, constants.MaxInterestRate)
	}
	if math.IsNaN(d.Balance) || math.IsInf(d.Balance, 0) || d.Balance < 0 {
		return fmt.Errorf("%w: debt %d balance %v is not a non-negative amount", ErrInvalidDebtData, d.ID, d.Balance)
	}
	if math.IsNaN(d.MinPayment) || math.IsInf(d.MinPayment, 0) || d.MinPayment < 0 {
		return fmt.Errorf("%w: debt %d minimum payment %v is not a non-negative amount", ErrInvalidDebtData, d.ID, d.MinPayment)
	}
	return nil
}

// debtState is the simulator's private working copy of one debt.
type debtState struct {
	id           int64
	name         string
	balance      money.Cents
	rate         float64
	minPayment   money.Cents
	interestPaid money.Cents
	payoffMonth  int // 0 until the balance first reaches zero
}

// active reports whether the debt still carries a balance. Retired debts
// stay in the state slice for reporting continuity but receive no further
// interest or payments.
func (d *debtState) active() bool {
	return d.balance > 0
}

func newDebtStates(debts []DebtSnapshot) []*debtState {
	states := make([]*debtState, len(debts))
	for i, d := range debts {
		states[i] = &debtState{
			id:         d.ID,
			name:       d.Name,
			balance:    money.FromDollars(d.Balance),
			rate:       d.InterestRate,
			minPayment: money.FromDollars(d.MinPayment),
		}
	}
	return states
}
