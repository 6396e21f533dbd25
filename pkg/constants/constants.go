// Package constants provides shared constants for the debt-payoff application.
package constants

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CentsPerDollar is the scale between decimal dollars and integer cents
	CentsPerDollar = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPayoffMonths caps the simulation at 50 years; a configuration that
	// has not amortized by then never will under a fixed budget.
	MaxPayoffMonths = 600

	// MinInterestRate is the lowest valid annual interest rate percentage
	MinInterestRate = 0.0

	// MaxInterestRate is the highest valid annual interest rate percentage
	MaxInterestRate = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)
