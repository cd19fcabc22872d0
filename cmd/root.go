// Package cmd implements the webscout command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/webscout/internal/config"
	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/pkg/scout"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "webscout",
		Short: "Fetch, classify and rate web pages",
		Long: `webscout fetches URLs through an escalating chain of strategies
(plain request, delegated crawler, headless browser, full browser),
classifies the result (HTML, feed, JSON) and extracts structured
properties, links and a page rating.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// .env first so environment variables reach viper.
	_ = godotenv.Load()

	_ = rootCmd.ParseFlags(os.Args[1:])

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("webscout version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newPropsCommand())
	rootCmd.AddCommand(newLinksCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newRobotsCommand())
}

// newScout loads configuration and composes the engine.
func newScout() (*scout.Scout, logger.Interface, error) {
	config.Initialize()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if debug {
		cfg.Logging.Level = string(logger.DebugLevel)
		cfg.Logging.Development = true
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return scout.New(cfg, log), log, nil
}
