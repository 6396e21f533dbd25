package payoff

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompareStrategies(t *testing.T) {
	comparison, err := CompareStrategies(nil, fixtureDebts(), 500, fixtureStart())
	if err != nil {
		t.Fatalf("CompareStrategies() error = %v", err)
	}

	if comparison.Avalanche.Strategy != StrategyAvalanche {
		t.Errorf("avalanche plan strategy = %s", comparison.Avalanche.Strategy)
	}
	if comparison.Snowball.Strategy != StrategySnowball {
		t.Errorf("snowball plan strategy = %s", comparison.Snowball.Strategy)
	}

	if comparison.InterestSaved < 0 {
		t.Errorf("interest saved = %.2f, expected avalanche to pay no more interest than snowball",
			comparison.InterestSaved)
	}

	wantSaved := comparison.Snowball.TotalInterest - comparison.Avalanche.TotalInterest
	if diff := comparison.InterestSaved - wantSaved; diff > 0.01 || diff < -0.01 {
		t.Errorf("interest saved = %.2f, want %.2f", comparison.InterestSaved, wantSaved)
	}

	if comparison.MonthsSaved != comparison.Snowball.Months()-comparison.Avalanche.Months() {
		t.Errorf("months saved = %d, want %d", comparison.MonthsSaved,
			comparison.Snowball.Months()-comparison.Avalanche.Months())
	}
}

func TestCompareMatchesIndependentRuns(t *testing.T) {
	comparison, err := CompareStrategies(nil, fixtureDebts(), 500, fixtureStart())
	if err != nil {
		t.Fatalf("CompareStrategies() error = %v", err)
	}

	avalanche, err := CalculatePayoffPlan(nil, fixtureDebts(), StrategyAvalanche, 500, fixtureStart())
	if err != nil {
		t.Fatalf("CalculatePayoffPlan() error = %v", err)
	}
	snowball, err := CalculatePayoffPlan(nil, fixtureDebts(), StrategySnowball, 500, fixtureStart())
	if err != nil {
		t.Fatalf("CalculatePayoffPlan() error = %v", err)
	}

	// The comparator's runs share no state, so each plan must be identical
	// to a standalone simulation of the same strategy.
	if !reflect.DeepEqual(comparison.Avalanche, avalanche) {
		t.Error("comparator avalanche plan differs from standalone run")
	}
	if !reflect.DeepEqual(comparison.Snowball, snowball) {
		t.Error("comparator snowball plan differs from standalone run")
	}
}

func TestCompareStrategiesPropagatesValidation(t *testing.T) {
	_, err := CompareStrategies(nil, fixtureDebts(), 50, fixtureStart())
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("CompareStrategies() error = %v, want %v", err, ErrInsufficientFunds)
	}

	_, err = CompareStrategies(nil, nil, 500, fixtureStart())
	if !errors.Is(err, ErrNoDebts) {
		t.Errorf("CompareStrategies() error = %v, want %v", err, ErrNoDebts)
	}
}
