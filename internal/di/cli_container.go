package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/phishguard/outlook-threat-reporter/internal/adapters/graph"
	"github.com/phishguard/outlook-threat-reporter/internal/config"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
	"github.com/phishguard/outlook-threat-reporter/internal/factory"
	"github.com/phishguard/outlook-threat-reporter/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Auth flags
	Flow        string
	TenantID    string
	ClientID    string
	StaticToken string

	// Report flags
	ItemID   string
	Mailbox  string
	Category string

	// Graph flags
	GraphBaseURL string

	// Input flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Auth flags
	flag.StringVar(&flags.Flow, "flow", "devicecode", "Token acquisition flow (devicecode, static)")
	flag.StringVar(&flags.TenantID, "tenant-id", "", "Azure AD tenant id")
	flag.StringVar(&flags.ClientID, "client-id", "", "Application (client) id")
	flag.StringVar(&flags.StaticToken, "token", "", "Pre-acquired bearer token (flow=static)")

	// Report flags
	flag.StringVar(&flags.ItemID, "item-id", "", "Host-internal id of the message to report")
	flag.StringVar(&flags.Mailbox, "mailbox", "", "Mailbox address of the reporting user")
	flag.StringVar(&flags.Category, "category", "phishing", "Report category (phishing, spam, notJunk)")

	// Graph flags
	flag.StringVar(&flags.GraphBaseURL, "graph-base-url", "https://graph.microsoft.com/beta", "Graph API base URL")

	// Input flags
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}
		return createConfigFromFlags(flags), nil
	}); err != nil {
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

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("graph.base_url", flags.GraphBaseURL)

	v.Set("auth.flow", flags.Flow)
	v.Set("auth.tenant_id", flags.TenantID)
	v.Set("auth.client_id", flags.ClientID)
	v.Set("auth.static_token", flags.StaticToken)

	return config.NewFromViper(v)
}
