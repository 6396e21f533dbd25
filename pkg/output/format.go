// Package output provides utilities for formatting and displaying payoff
// plans and strategy comparisons.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/debt-payoff/internal/payoff"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(plan *payoff.PayoffPlan) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- %s plan: $%.2f/month, debt-free %s ---\n", plan.Strategy, plan.MonthlyAmount, plan.PayoffDate)
	_, _ = p.Printf("Total interest paid: $%.2f over %d months\n\n", plan.TotalInterest, plan.Months())

	fmt.Printf("Month | Date       | Payments                      | Remaining\n")
	fmt.Printf("_____ | __________ | _____________________________ | _________\n")
	for _, m := range plan.MonthlyBreakdown {
		parts := make([]string, 0, len(m.Payments))
		for _, pay := range m.Payments {
			name := pay.DebtName
			if name == "" {
				name = fmt.Sprintf("debt %d", pay.DebtID)
			}
			parts = append(parts, fmt.Sprintf("%s $%.2f", name, pay.Amount))
		}
		_, _ = p.Printf("%5d | %s | %-29s | $%.2f\n", m.Month, m.Date, strings.Join(parts, ", "), m.TotalBalanceRemaining)
	}

	fmt.Printf("\nDebt summaries:\n")
	for _, s := range plan.DebtSummaries {
		name := s.DebtName
		if name == "" {
			name = fmt.Sprintf("debt %d", s.DebtID)
		}
		_, _ = p.Printf("  %s: paid off month %d, $%.2f interest\n", name, s.PayoffMonth, s.TotalInterestPaid)
	}
}

// PrettyFormatComparison outputs both plans' headline numbers and the
// savings between them.
func PrettyFormatComparison(comparison *payoff.Comparison) {
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("Avalanche: %d months, $%.2f interest, debt-free %s\n",
		comparison.Avalanche.Months(), comparison.Avalanche.TotalInterest, comparison.Avalanche.PayoffDate)
	_, _ = p.Printf("Snowball:  %d months, $%.2f interest, debt-free %s\n",
		comparison.Snowball.Months(), comparison.Snowball.TotalInterest, comparison.Snowball.PayoffDate)
	_, _ = p.Printf("Avalanche saves $%.2f and %d months\n",
		comparison.InterestSaved, comparison.MonthsSaved)
}

// CsvFormatComparison outputs both plans' monthly breakdowns in
// comma-separated value format with a leading strategy column.
func CsvFormatComparison(comparison *payoff.Comparison) {
	fmt.Printf("\"strategy\",\"month\",\"date\",\"debt_id\",\"debt_name\",\"payment\",\"total_balance_remaining\"\n")
	for _, plan := range []*payoff.PayoffPlan{comparison.Avalanche, comparison.Snowball} {
		for _, m := range plan.MonthlyBreakdown {
			for _, pay := range m.Payments {
				fmt.Printf("\"%s\",\"%d\",\"%s\",\"%d\",\"%s\",\"%.2f\",\"%.2f\"\n",
					plan.Strategy, m.Month, m.Date, pay.DebtID, pay.DebtName, pay.Amount, m.TotalBalanceRemaining)
			}
		}
	}
}

// CsvFormat outputs the monthly breakdown in comma-separated value format,
// one row per debt per month.
func CsvFormat(plan *payoff.PayoffPlan) {
	fmt.Printf("\"month\",\"date\",\"debt_id\",\"debt_name\",\"payment\",\"total_balance_remaining\"\n")
	for _, m := range plan.MonthlyBreakdown {
		for _, pay := range m.Payments {
			fmt.Printf("\"%d\",\"%s\",\"%d\",\"%s\",\"%.2f\",\"%.2f\"\n",
				m.Month, m.Date, pay.DebtID, pay.DebtName, pay.Amount, m.TotalBalanceRemaining)
		}
	}
}
