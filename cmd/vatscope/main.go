package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/app"
	"github.com/ternarybob/vatscope/internal/common"
)

var (
	// Command-line flags
	configFiles []string // Multiple -c flags supported, later files override earlier ones
	logLevel    string
	noCache     bool

	// Global state
	config *common.Config
)

var rootCmd = &cobra.Command{
	Use:           "vatscope",
	Short:         "Belgian company registry and annual account extraction",
	Long:          `Extracts the size and financial figures of Belgian companies from their published annual accounts and assembles their registry record.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times, later files override earlier ones)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the financial result cache")

	rootCmd.AddCommand(financialCmd, companyCmd, reportCmd, watchCmd, cacheCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults -> config files -> .env -> environment -> flags
func loadConfig() error {
	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("vatscope.toml"); err == nil {
			configFiles = append(configFiles, "vatscope.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	common.ApplyFlagOverrides(config, logLevel, noCache)
	return nil
}

// newApp initializes the logger and the application. With console set, log
// lines are also written to the terminal.
func newApp(console bool) (*app.App, arbor.ILogger, error) {
	if console && !hasConsoleOutput(config.Logging.Output) {
		config.Logging.Output = append(config.Logging.Output, "console")
	}

	logger := common.InitLogger(config)
	logger.Debug().
		Strs("config_files", configFiles).
		Str("log_level", config.Logging.Level).
		Bool("cache", config.Storage.Badger.Enabled).
		Msg("Configuration loaded")

	application, err := app.New(config, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, logger, nil
}

func hasConsoleOutput(outputs []string) bool {
	for _, output := range outputs {
		if output == "stdout" || output == "console" {
			return true
		}
	}
	return false
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
