package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/amortization-compare/internal/config"
	"github.com/iwvelando/amortization-compare/internal/server"
	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/output"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "amortization-compare",
		Short:         "Compare SAC and PRICE amortization schedules for a loan",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSimulateCommand(), newServeCommand())
	return root
}

func newSimulateCommand() *cobra.Command {
	var (
		configLocation string
		outputFormat   string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one comparison from a configuration file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			format, err := conf.OutputFormat(outputFormat)
			if err != nil {
				return err
			}

			params, fees, income, err := conf.Simulation(logger)
			if err != nil {
				logger.Error("configuration rejected",
					zap.String("op", "main.simulate"),
					zap.Error(err),
				)
				return err
			}

			result := simulation.Simulate(logger, params, fees, income)
			return output.Write(cmd.OutOrStdout(), format, result, conf.ExcerptRows())
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json, yaml, report")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func newServeCommand() *cobra.Command {
	var (
		configLocation string
		address        string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison as a JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load server configuration at %s: %w", configLocation, err)
			}
			if address != "" {
				cfg.Address = address
			}
			if cfg.Tracing.Endpoint == "" {
				cfg.Tracing.Endpoint = os.Getenv("OTEL_ENDPOINT")
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, logger, cfg, version)
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
