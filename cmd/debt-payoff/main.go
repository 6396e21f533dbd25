package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/debt-payoff/internal/cache"
	"github.com/iwvelando/debt-payoff/internal/config"
	"github.com/iwvelando/debt-payoff/internal/payoff"
	"github.com/iwvelando/debt-payoff/internal/server"
	"github.com/iwvelando/debt-payoff/internal/store"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	strategyFlag := flag.String("strategy", "", "strategy override: avalanche, snowball, compare")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP API server instead of a one-shot simulation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	strategy := conf.Plan.Strategy
	if *strategyFlag != "" {
		strategy = *strategyFlag
	}
	if strategy == "" {
		strategy = string(payoff.StrategyAvalanche)
	}

	startDate, err := conf.StartDate(time.Now())
	if err != nil {
		logger.Fatal("failed to resolve start date",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	debts := conf.Snapshots()

	if strategy == "compare" {
		comparison, err := payoff.CompareStrategies(logger, debts, conf.Plan.MonthlyAmount, startDate)
		if err != nil {
			logger.Fatal("failed to compare strategies",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettyFormatComparison(comparison)
		case constants.OutputFormatCSV:
			output.CsvFormatComparison(comparison)
		}
		return
	}

	plan, err := payoff.CalculatePayoffPlan(logger, debts, payoff.Strategy(strategy), conf.Plan.MonthlyAmount, startDate)
	if err != nil {
		logger.Fatal("failed to compute payoff plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(plan)
	case constants.OutputFormatCSV:
		output.CsvFormat(plan)
	}
}

func runServer(configLocation, logLevelOverride string) {
	cfg, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		return
	}

	logger, err := initializeLogger(cfg.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	var st *store.Store
	if cfg.Database != "" {
		st, err = store.Open(cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to open debt store",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		defer func() {
			_ = st.Close()
		}()
	}

	var planCache cache.PlanCache
	if cfg.RedisAddress != "" {
		planCache = cache.NewRedisCache(cfg.RedisAddress)
	} else {
		planCache = cache.NewMemoryCache()
	}

	handler := server.NewHandler(logger, st, planCache, cfg.BodySizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.Bool("store", st != nil),
		zap.Bool("redis", cfg.RedisAddress != ""),
	)
	if err := http.ListenAndServe(cfg.Address, handler); err != nil {
		logger.Fatal("HTTP server exited",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
