package payoff

import (
	"sort"
	"time"

	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/money"
)

// PaymentDetail is a single debt's payment within one simulated month.
type PaymentDetail struct {
	DebtID   int64   `json:"debtId"`
	DebtName string  `json:"debtName,omitempty"`
	Amount   float64 `json:"amount"`
}

// MonthlyPayment records every nonzero payment made in one simulated month
// along with the combined balance left afterwards.
type MonthlyPayment struct {
	Month                 int             `json:"month"` // 1-based
	Date                  string          `json:"date"`
	Payments              []PaymentDetail `json:"payments"`
	TotalPaid             float64         `json:"totalPaid"`
	TotalBalanceRemaining float64         `json:"totalBalanceRemaining"`
}

// DebtSummary aggregates one debt's outcome across the whole plan.
// PayoffMonth is the 1-based month in which the balance first reached zero;
// it is 0 for debts that entered the simulation already paid off.
type DebtSummary struct {
	DebtID            int64   `json:"debtId"`
	DebtName          string  `json:"debtName,omitempty"`
	PayoffMonth       int     `json:"payoffMonth"`
	TotalInterestPaid float64 `json:"totalInterestPaid"`
}

// PayoffPlan is the complete amortization schedule returned to callers. It
// is immutable once returned; the engine does not persist it.
type PayoffPlan struct {
	Strategy         Strategy         `json:"strategy"`
	MonthlyAmount    float64          `json:"monthlyAmount"`
	StartDate        string           `json:"startDate"`
	PayoffDate       string           `json:"payoffDate"`
	TotalInterest    float64          `json:"totalInterest"`
	MonthlyBreakdown []MonthlyPayment `json:"monthlyBreakdown"`
	DebtSummaries    []DebtSummary    `json:"debtSummaries"`
}

// Months returns the number of simulated months in the plan.
func (p *PayoffPlan) Months() int {
	return len(p.MonthlyBreakdown)
}

// buildPlan assembles the simulator's terminal state into a PayoffPlan.
// Total interest is the running cent total carried through the simulation,
// not re-derived from balances, so no double rounding accumulates.
func buildPlan(strategy Strategy, monthlyAmount float64, startDate time.Time, breakdown []MonthlyPayment, states []*debtState, totalInterest money.Cents) *PayoffPlan {
	summaries := make([]DebtSummary, 0, len(states))
	for _, d := range states {
		summaries = append(summaries, DebtSummary{
			DebtID:            d.id,
			DebtName:          d.name,
			PayoffMonth:       d.payoffMonth,
			TotalInterestPaid: d.interestPaid.Dollars(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].DebtID < summaries[j].DebtID
	})
	return &PayoffPlan{
		Strategy:         strategy,
		MonthlyAmount:    monthlyAmount,
		StartDate:        datetime.FormatDate(startDate),
		PayoffDate:       datetime.FormatDate(datetime.OffsetMonths(startDate, len(breakdown))),
		TotalInterest:    totalInterest.Dollars(),
		MonthlyBreakdown: breakdown,
		DebtSummaries:    summaries,
	}
}
