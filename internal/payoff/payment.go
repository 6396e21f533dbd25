package payoff

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/money"
)

// DebtPayment is one actual payment applied to a debt's live balance,
// produced by RecordPayment for an external store to persist. PlanID links
// the payment to a saved plan when set.
type DebtPayment struct {
	DebtID int64     `json:"debtId"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	PlanID *int64    `json:"planId,omitempty"`
}

// RecordPayment applies a single actual payment against a debt's balance,
// outside any simulation. now supplies the reference time for rejecting
// future-dated payments. On success it returns the updated balance, clamped
// at zero, for the caller to persist; this package does not own persistence.
func RecordPayment(debt DebtSnapshot, amount float64, date, now time.Time) (float64, error) {
	if err := debt.Validate(); err != nil {
		return debt.Balance, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return debt.Balance, fmt.Errorf("%w: payment must be positive, got %v", ErrInvalidAmount, amount)
	}

	balance := money.FromDollars(debt.Balance)
	payment := money.FromDollars(amount)
	if payment > balance {
		return debt.Balance, fmt.Errorf("%w: payment %.2f exceeds balance %.2f",
			ErrInvalidAmount, amount, debt.Balance)
	}
	if date.After(now) {
		return debt.Balance, fmt.Errorf("%w: payment date %s is in the future",
			ErrInvalidDate, datetime.FormatDate(date))
	}

	return money.Max(0, balance-payment).Dollars(), nil
}
