package payoff

import (
	"fmt"
	"sort"
)

// Strategy determines which debt receives extra payment each month.
type Strategy string

const (
	// StrategyAvalanche directs extra payments at the highest interest rate
	// first.
	StrategyAvalanche Strategy = "avalanche"

	// StrategySnowball directs extra payments at the smallest balance first.
	StrategySnowball Strategy = "snowball"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyAvalanche || s == StrategySnowball
}

func validateStrategy(s Strategy) error {
	if !s.Valid() {
		return fmt.Errorf("unknown payoff strategy %q", s)
	}
	return nil
}

// less reports whether a should receive extra payment before b. The
// comparison is a total order: ties on the primary key fall through to the
// secondary key and finally the debt id, so the result never depends on
// input position. Interest rates are validated finite before simulation, so
// the float comparisons here cannot see NaN and the function never panics.
func (s Strategy) less(a, b *debtState) bool {
	switch s {
	case StrategySnowball:
		if a.balance != b.balance {
			return a.balance < b.balance
		}
		if a.rate != b.rate {
			return a.rate > b.rate
		}
	default: // avalanche
		if a.rate != b.rate {
			return a.rate > b.rate
		}
		if a.balance != b.balance {
			return a.balance > b.balance
		}
	}
	return a.id < b.id
}

// order returns the debts that still carry a balance, sorted into this
// strategy's extra-payment order. Called once per simulated month; the
// order shifts as balances change and debts retire.
func (s Strategy) order(states []*debtState) []*debtState {
	active := make([]*debtState, 0, len(states))
	for _, d := range states {
		if d.active() {
			active = append(active, d)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return s.less(active[i], active[j])
	})
	return active
}
