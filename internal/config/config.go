// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/debt-payoff/internal/payoff"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for debt-payoff.
type Configuration struct {
	Debts   []Debt
	Plan    PlanConfig
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// Debt describes one outstanding debt as configured.
type Debt struct {
	ID           int64
	Name         string
	Balance      float64
	InterestRate float64 // annual percentage
	MinPayment   float64
}

// PlanConfig holds the simulation parameters.
type PlanConfig struct {
	Strategy      string // avalanche, snowball, or compare
	MonthlyAmount float64
	StartDate     string // optional; defaults to today
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Snapshots converts the configured debts into engine snapshots. Debts
// without an explicit id are numbered by position so the engine's
// deterministic tie-breaks have a stable key.
func (conf *Configuration) Snapshots() []payoff.DebtSnapshot {
	snapshots := make([]payoff.DebtSnapshot, len(conf.Debts))
	for i, d := range conf.Debts {
		id := d.ID
		if id == 0 {
			id = int64(i + 1)
		}
		snapshots[i] = payoff.DebtSnapshot{
			ID:           id,
			Name:         d.Name,
			Balance:      d.Balance,
			InterestRate: d.InterestRate,
			MinPayment:   d.MinPayment,
		}
	}
	return snapshots
}

// StartDate returns the configured simulation start date, or now when the
// config leaves it unset.
func (conf *Configuration) StartDate(now time.Time) (time.Time, error) {
	if conf.Plan.StartDate == "" {
		return now, nil
	}
	start, err := datetime.ParseDate(conf.Plan.StartDate)
	if err != nil {
		return now, fmt.Errorf("invalid plan start date %q: %w", conf.Plan.StartDate, err)
	}
	return start, nil
}

// ValidateConfiguration performs sanity checks and returns human-readable
// warnings. Hard failures (bad rates, insufficient budget) are left to the
// engine's own validation so they carry the typed errors callers match on.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Debts) == 0 {
		warnings = append(warnings, "no debts configured - simulation will fail")
	}

	seen := make(map[int64]string)
	var totalMin float64
	for i, d := range conf.Debts {
		if d.ID != 0 {
			if other, dup := seen[d.ID]; dup {
				warnings = append(warnings, fmt.Sprintf("Debt '%s' reuses id %d already used by '%s'", d.Name, d.ID, other))
			}
			seen[d.ID] = d.Name
		}
		if d.Name == "" {
			warnings = append(warnings, fmt.Sprintf("Debt at position %d has no name", i+1))
		}
		if d.Balance > 0 && d.MinPayment == 0 {
			warnings = append(warnings, fmt.Sprintf("Debt '%s' has a balance but no minimum payment - it will only receive extra allocations", d.Name))
		}
		if d.InterestRate < constants.MinInterestRate || d.InterestRate > constants.MaxInterestRate {
			warnings = append(warnings, fmt.Sprintf("Debt '%s' has interest rate %.2f outside [%.0f, %.0f]",
				d.Name, d.InterestRate, constants.MinInterestRate, constants.MaxInterestRate))
		}
		totalMin += d.MinPayment
	}

	if conf.Plan.MonthlyAmount > 0 && totalMin > conf.Plan.MonthlyAmount {
		warnings = append(warnings, fmt.Sprintf("Monthly amount %.2f does not cover total minimum payments %.2f",
			conf.Plan.MonthlyAmount, totalMin))
	}

	switch conf.Plan.Strategy {
	case "", string(payoff.StrategyAvalanche), string(payoff.StrategySnowball), "compare":
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown strategy '%s' - expected avalanche, snowball, or compare", conf.Plan.Strategy))
	}

	return warnings
}
