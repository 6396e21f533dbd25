package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/debt-payoff/pkg/datetime"
)

const testConfig = `---
debts:
  - id: 1
    name: Card A
    balance: 5000.00
    interestRate: 19.99
    minPayment: 150.00
  - id: 2
    name: Card B
    balance: 3000.00
    interestRate: 15.50
    minPayment: 90.00
  - id: 3
    name: Card C
    balance: 2000.00
    interestRate: 22.00
    minPayment: 75.00
plan:
  strategy: avalanche
  monthlyAmount: 500.00
  startDate: "2026-09-01"
logging:
  level: debug
  format: console
output:
  format: csv
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if len(conf.Debts) != 3 {
		t.Fatalf("loaded %d debts, want 3", len(conf.Debts))
	}
	if conf.Debts[0].Name != "Card A" || conf.Debts[0].InterestRate != 19.99 {
		t.Errorf("first debt = %+v", conf.Debts[0])
	}
	if conf.Plan.Strategy != "avalanche" {
		t.Errorf("strategy = %s, want avalanche", conf.Plan.Strategy)
	}
	if conf.Plan.MonthlyAmount != 500 {
		t.Errorf("monthly amount = %.2f, want 500", conf.Plan.MonthlyAmount)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("logging config = %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("output format = %s, want csv", conf.Output.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSnapshots(t *testing.T) {
	conf := &Configuration{
		Debts: []Debt{
			{Name: "No ID", Balance: 100, InterestRate: 10, MinPayment: 10},
			{ID: 42, Name: "With ID", Balance: 200, InterestRate: 12, MinPayment: 20},
		},
	}

	snapshots := conf.Snapshots()
	if snapshots[0].ID != 1 {
		t.Errorf("debt without id assigned %d, want positional 1", snapshots[0].ID)
	}
	if snapshots[1].ID != 42 {
		t.Errorf("debt with id assigned %d, want 42", snapshots[1].ID)
	}
	if snapshots[1].Balance != 200 || snapshots[1].MinPayment != 20 {
		t.Errorf("snapshot fields not carried over: %+v", snapshots[1])
	}
}

func TestStartDate(t *testing.T) {
	now := datetime.MustParseTime(datetime.DateLayout, "2026-08-28")

	conf := &Configuration{Plan: PlanConfig{StartDate: "2026-09-01"}}
	start, err := conf.StartDate(now)
	if err != nil {
		t.Fatalf("StartDate() error = %v", err)
	}
	if datetime.FormatDate(start) != "2026-09-01" {
		t.Errorf("start date = %s, want 2026-09-01", datetime.FormatDate(start))
	}

	conf = &Configuration{}
	start, err = conf.StartDate(now)
	if err != nil {
		t.Fatalf("StartDate() error = %v", err)
	}
	if !start.Equal(now) {
		t.Errorf("unset start date = %v, want now", start)
	}

	conf = &Configuration{Plan: PlanConfig{StartDate: "September 2026"}}
	if _, err := conf.StartDate(time.Now()); err == nil {
		t.Error("expected error for unparseable start date")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name         string
		conf         Configuration
		wantFragment string
	}{
		{
			name:         "no debts",
			conf:         Configuration{},
			wantFragment: "no debts configured",
		},
		{
			name: "duplicate ids",
			conf: Configuration{
				Debts: []Debt{
					{ID: 1, Name: "First", MinPayment: 10},
					{ID: 1, Name: "Second", MinPayment: 10},
				},
			},
			wantFragment: "reuses id 1",
		},
		{
			name: "balance without minimum payment",
			conf: Configuration{
				Debts: []Debt{{ID: 1, Name: "Card", Balance: 1000}},
			},
			wantFragment: "no minimum payment",
		},
		{
			name: "rate out of range",
			conf: Configuration{
				Debts: []Debt{{ID: 1, Name: "Card", Balance: 100, InterestRate: 120, MinPayment: 10}},
			},
			wantFragment: "outside [0, 100]",
		},
		{
			name: "budget below minimums",
			conf: Configuration{
				Debts: []Debt{{ID: 1, Name: "Card", Balance: 100, InterestRate: 10, MinPayment: 100}},
				Plan:  PlanConfig{MonthlyAmount: 50},
			},
			wantFragment: "does not cover total minimum payments",
		},
		{
			name: "unknown strategy",
			conf: Configuration{
				Debts: []Debt{{ID: 1, Name: "Card", Balance: 100, InterestRate: 10, MinPayment: 10}},
				Plan:  PlanConfig{Strategy: "optimal", MonthlyAmount: 500},
			},
			wantFragment: "Unknown strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.conf.ValidateConfiguration()
			for _, w := range warnings {
				if strings.Contains(w, tt.wantFragment) {
					return
				}
			}
			t.Errorf("warnings %q missing fragment %q", warnings, tt.wantFragment)
		})
	}
}

func TestValidateConfigurationCleanConfig(t *testing.T) {
	conf, err := LoadConfiguration(writeTestConfig(t, testConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected warnings for clean config: %q", warnings)
	}
}
