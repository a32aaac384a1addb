package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"farm-manager/internal/agents"
	"farm-manager/internal/config"
	"farm-manager/internal/fusion"
	"farm-manager/internal/logging"
	"farm-manager/internal/market"
	"farm-manager/internal/weather"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config       *config.Config
	Logger       zerolog.Logger
	PriceAgent   *agents.PriceAgent
	WeatherAgent *agents.WeatherAgent
	Orchestrator *agents.Orchestrator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	var feed *market.LiveFeed
	if cfg.HasLiveFeed() {
		feed = market.NewLiveFeed(market.LiveFeedOptions{
			BaseURL: cfg.Market.FeedURL,
			Timeout: cfg.Market.FeedTimeout,
			Logger:  logger,
		})
		logger.Debug().Str("url", cfg.Market.FeedURL).Msg("Live mandi feed configured")
	}

	app.PriceAgent = agents.NewPriceAgent(agents.PriceAgentOptions{
		Feed:        feed,
		Cache:       market.NewDatasetCache(),
		DatasetPath: cfg.Market.DatasetPath,
		Forecaster:  market.NewForecaster(cfg.Market.ForecastHorizon),
		Timeout:     30 * time.Second,
		Logger:      logger,
	})

	var weatherClient *weather.Client
	if cfg.HasWeatherCredentials() {
		weatherClient = weather.NewClient(weather.ClientOptions{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Credentials.OpenWeather.APIKey,
			Timeout: cfg.Weather.Timeout,
			Logger:  logger,
		})
		logger.Debug().Msg("Weather client configured")
	}

	app.WeatherAgent = agents.NewWeatherAgent(agents.WeatherAgentOptions{
		Client:  weatherClient,
		Timeout: cfg.Weather.Timeout,
		Logger:  logger,
	})

	app.Orchestrator = agents.NewOrchestrator(
		app.PriceAgent,
		app.WeatherAgent,
		fusion.NewEngine(logger),
		logger,
	)

	rootCmd := &cobra.Command{
		Use:   "farm-manager",
		Short: "Farm Manager - multi-signal advisory CLI for farmers",
		Long: `Farm Manager fuses crop health, field condition, mandi prices and
weather into one explainable recommendation.

Price data comes from a live mandi feed when available, falling back to
a historical Agmarknet dataset with a built-in short-horizon forecast.

Use 'farm-manager help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/farm-manager)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAdviseCmd(app))
	rootCmd.AddCommand(newMarketCmd(app))
	rootCmd.AddCommand(newWeatherCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Farm Manager v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Market Configuration")
	output.Printf("  Dataset Path:     %s\n", cfg.Market.DatasetPath)
	output.Printf("  Live Feed URL:    %s\n", cfg.Market.FeedURL)
	output.Printf("  Feed Timeout:     %s\n", cfg.Market.FeedTimeout)
	output.Printf("  Forecast Horizon: %d days\n", cfg.Market.ForecastHorizon)
	output.Println()

	output.Bold("Weather Configuration")
	output.Printf("  Provider URL:     %s\n", cfg.Weather.BaseURL)
	output.Printf("  Timeout:          %s\n", cfg.Weather.Timeout)
	output.Printf("  Credentials:      %v\n", cfg.HasWeatherCredentials())

	return nil
}
