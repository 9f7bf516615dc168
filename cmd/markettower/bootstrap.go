package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/0shark/markettower/internal/calendar"
	"github.com/0shark/markettower/internal/config"
	"github.com/0shark/markettower/internal/fetch"
	"github.com/0shark/markettower/internal/logger"
	"github.com/0shark/markettower/internal/metrics"
	"github.com/0shark/markettower/internal/provider"
	"github.com/0shark/markettower/internal/provider/yahoo"
	"github.com/0shark/markettower/internal/timerange"
)

// deps is everything a command needs, built once from configuration.
type deps struct {
	cfg      *config.Config
	log      *zap.Logger
	calendar *calendar.Calendar
	table    timerange.Table
	service  *fetch.Service
	metrics  *metrics.Registry
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// bootstrap loads and validates configuration and wires the fetch service.
// Metrics are only created when withMetrics is set and enabled in config.
func bootstrap(withMetrics bool) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(debug || cfg.Log.Development, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	cal := calendar.New(loc)

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	providers := provider.NewRegistry()
	providers.Register(yahoo.New(cfg.YahooConfig(), log))
	p, err := providers.Lookup(cfg.Provider.Name)
	if err != nil {
		return nil, fmt.Errorf("selecting provider: %w", err)
	}

	d := &deps{
		cfg:      cfg,
		log:      log,
		calendar: cal,
		table:    table,
	}

	var observer fetch.Observer
	if withMetrics && cfg.Metrics.Enabled {
		d.metrics = metrics.NewRegistry()
		observer = d.metrics
	}

	resolver := timerange.NewResolver(table, cal)
	d.service = fetch.NewService(p, resolver, cfg.FetchOptions(), observer, log)

	log.Debug("service wired",
		zap.String("provider", p.Name()),
		zap.String("timezone", loc.String()),
		zap.String("default_range", string(table.DefaultRange())),
		zap.Int("max_attempts", cfg.Fetch.MaxAttempts),
	)

	return d, nil
}
