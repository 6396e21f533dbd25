package payoff

import (
	"time"

	"github.com/iwvelando/debt-payoff/pkg/money"
	"go.uber.org/zap"
)

// Comparison holds the result of running both strategies on identical
// inputs. InterestSaved and MonthsSaved are snowball minus avalanche, so
// positive values mean avalanche comes out ahead.
type Comparison struct {
	Avalanche     *PayoffPlan `json:"avalanche"`
	Snowball      *PayoffPlan `json:"snowball"`
	InterestSaved float64     `json:"interestSaved"`
	MonthsSaved   int         `json:"monthsSaved"`
}

// CompareStrategies runs the simulator once per strategy on the same debt
// snapshots. The two runs share no state.
func CompareStrategies(logger *zap.Logger, debts []DebtSnapshot, monthlyAmount float64, startDate time.Time) (*Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	avalanche, err := CalculatePayoffPlan(logger, debts, StrategyAvalanche, monthlyAmount, startDate)
	if err != nil {
		return nil, err
	}
	snowball, err := CalculatePayoffPlan(logger, debts, StrategySnowball, monthlyAmount, startDate)
	if err != nil {
		return nil, err
	}

	// Re-round through cents so the difference of two exact totals does not
	// surface float subtraction dust.
	saved := money.FromDollars(snowball.TotalInterest) - money.FromDollars(avalanche.TotalInterest)

	comparison := &Comparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		InterestSaved: saved.Dollars(),
		MonthsSaved:   snowball.Months() - avalanche.Months(),
	}

	logger.Debug("strategy comparison complete",
		zap.String("op", "payoff.CompareStrategies"),
		zap.Float64("interestSaved", comparison.InterestSaved),
		zap.Int("monthsSaved", comparison.MonthsSaved),
	)

	return comparison, nil
}
