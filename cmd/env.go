package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/renobudget/internal/config"
	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/logging"
	"github.com/theirongolddev/renobudget/internal/money"
)

// env bundles everything a command needs once config is loaded.
type env struct {
	cfg     config.Config
	path    string
	money   *money.Formatter
	tables  estimate.Tables
	calc    *estimate.Calculator
	checker *intake.Checker
	logger  *slog.Logger
}

// logOutput receives CLI log lines.
var logOutput io.Writer = os.Stderr

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// loadEnv reads config and builds the calculator. Catalog entries the tables
// cannot serve are logged as warnings.
func loadEnv() (*env, error) {
	logger := logging.NewCLILogger(logOutput, flagVerbose)

	path := configPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", slog.String("path", path), slog.Bool("exists", config.Exists(path)))

	f, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	tables, err := cfg.EstimateTables()
	if err != nil {
		return nil, err
	}
	for _, g := range tables.Gaps(estimate.Catalog) {
		logger.Warn("catalog entry cannot be estimated", slog.String("gap", g.String()))
	}
	for _, p := range tables.Uncataloged(estimate.Catalog) {
		logger.Warn("table entry is not in the catalog", slog.String("project", string(p)))
	}

	return &env{
		cfg:     cfg,
		path:    path,
		money:   f,
		tables:  tables,
		calc:    estimate.NewCalculator(tables),
		checker: intake.NewChecker(cfg.Limits, estimate.Catalog, f),
		logger:  logger,
	}, nil
}
