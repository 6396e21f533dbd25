package payoff

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/money"
	"go.uber.org/zap"
)

// CalculatePayoffPlan simulates paying down the given debts month by month
// under a fixed monthly budget and the given allocation strategy. The input
// snapshots are never mutated; the full plan is returned at once.
func CalculatePayoffPlan(logger *zap.Logger, debts []DebtSnapshot, strategy Strategy, monthlyAmount float64, startDate time.Time) (*PayoffPlan, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validateStrategy(strategy); err != nil {
		return nil, err
	}
	budget, err := validateRun(debts, monthlyAmount)
	if err != nil {
		return nil, err
	}

	states := newDebtStates(debts)
	var breakdown []MonthlyPayment
	var totalInterest money.Cents

	for month := 1; ; month++ {
		if month > constants.MaxPayoffMonths {
			logger.Warn("simulation exceeded month bound",
				zap.String("op", "payoff.CalculatePayoffPlan"),
				zap.String("strategy", string(strategy)),
				zap.Int("months", constants.MaxPayoffMonths),
			)
			return nil, fmt.Errorf("%w: %d months exceeded with balance remaining", ErrNoConvergence, constants.MaxPayoffMonths)
		}

		// Accrue interest on every active debt.
		for _, d := range states {
			if !d.active() {
				continue
			}
			interest := money.MonthlyInterest(d.balance, d.rate)
			d.balance += interest
			d.interestPaid += interest
			totalInterest += interest
		}

		// Pay minimums, capped at each remaining balance. The up-front
		// InsufficientFunds check guarantees this never overdraws the
		// budget.
		remaining := budget
		paid := make(map[int64]money.Cents, len(states))
		for _, d := range states {
			if !d.active() {
				continue
			}
			pay := money.Min(d.minPayment, d.balance)
			d.balance -= pay
			remaining -= pay
			paid[d.id] += pay
		}

		// Cascade the leftover budget down the strategy's order. Retired
		// debts drop out of the active set, so their minimums rejoin the
		// extra pool automatically next month.
		for _, d := range strategy.order(states) {
			if remaining <= 0 {
				break
			}
			pay := money.Min(remaining, d.balance)
			d.balance -= pay
			remaining -= pay
			paid[d.id] += pay
		}

		var totalBalance money.Cents
		for _, d := range states {
			if d.balance <= 0 && d.payoffMonth == 0 && paid[d.id] > 0 {
				d.payoffMonth = month
			}
			totalBalance += d.balance
		}

		breakdown = append(breakdown, recordMonth(month, startDate, states, paid, totalBalance))

		if totalBalance <= 0 {
			break
		}
	}

	logger.Debug("simulation complete",
		zap.String("op", "payoff.CalculatePayoffPlan"),
		zap.String("strategy", string(strategy)),
		zap.Int("months", len(breakdown)),
		zap.Float64("totalInterest", totalInterest.Dollars()),
	)

	return buildPlan(strategy, monthlyAmount, startDate, breakdown, states, totalInterest), nil
}

// validateRun performs the up-front checks shared by simulation entry
// points and returns the budget in cents.
func validateRun(debts []DebtSnapshot, monthlyAmount float64) (money.Cents, error) {
	if len(debts) == 0 {
		return 0, ErrNoDebts
	}
	if math.IsNaN(monthlyAmount) || math.IsInf(monthlyAmount, 0) {
		return 0, fmt.Errorf("%w: monthly amount %v is not a finite value", ErrInvalidAmount, monthlyAmount)
	}
	var totalMin money.Cents
	for _, d := range debts {
		if err := d.Validate(); err != nil {
			return 0, err
		}
		totalMin += money.FromDollars(d.MinPayment)
	}
	budget := money.FromDollars(monthlyAmount)
	if budget < totalMin {
		return 0, fmt.Errorf("%w: monthly amount %.2f is below total minimum payments %.2f",
			ErrInsufficientFunds, monthlyAmount, totalMin.Dollars())
	}
	return budget, nil
}

// recordMonth snapshots one month of the simulation. Payments are ordered
// by descending amount, then by debt id, so identical inputs always produce
// identical plans.
func recordMonth(month int, startDate time.Time, states []*debtState, paid map[int64]money.Cents, totalBalance money.Cents) MonthlyPayment {
	payments := make([]PaymentDetail, 0, len(states))
	var totalPaid money.Cents
	for _, d := range states {
		amount := paid[d.id]
		if amount <= 0 {
			continue
		}
		totalPaid += amount
		payments = append(payments, PaymentDetail{
			DebtID:   d.id,
			DebtName: d.name,
			Amount:   amount.Dollars(),
		})
	}
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].Amount != payments[j].Amount {
			return payments[i].Amount > payments[j].Amount
		}
		return payments[i].DebtID < payments[j].DebtID
	})
	return MonthlyPayment{
		Month:                 month,
		Date:                  datetime.FormatDate(datetime.OffsetMonths(startDate, month-1)),
		Payments:              payments,
		TotalPaid:             totalPaid.Dollars(),
		TotalBalanceRemaining: totalBalance.Dollars(),
	}
}
