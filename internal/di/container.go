package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/phishguard/outlook-threat-reporter/internal/adapters/graph"
	"github.com/phishguard/outlook-threat-reporter/internal/config"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
	"github.com/phishguard/outlook-threat-reporter/internal/factory"
	"github.com/phishguard/outlook-threat-reporter/internal/logging"
	"github.com/phishguard/outlook-threat-reporter/internal/server"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register token factory
	if err := container.Provide(factory.NewTokenFactory); err != nil {
		return nil, err
	}

	// Register Graph client
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.GraphAPI {
		graphCfg := cfg.GetGraph()
		return graph.NewClient(graphCfg.BaseURL, graphCfg.Timeout, logger)
	}); err != nil {
		return nil, err
	}

	// Register threat report service
	if err := container.Provide(func(api core.GraphAPI, logger *zap.Logger, cfg *config.Config) *core.ThreatReportService {
		return core.NewThreatReportService(api, logger, cfg.GetGraph().BaseURL)
	}); err != nil {
		return nil, err
	}

	// Register command handler
	if err := container.Provide(core.NewCommandHandler); err != nil {
		return nil, err
	}

	// Register command server
	if err := container.Provide(server.NewServer); err != nil {
		return nil, err
	}

	return container, nil
}
