// Root command for the scribe CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagYes       bool
	flagVerbose   bool
)

// configDataDir and configEditor hold values loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use them.
var (
	configDataDir string
	configEditor  string
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe is a local document editor with category/name addressing",
	Long: `Scribe stores documents in a local SQLite database, organized into a
flat one-level category tree. A document is addressed by a typed URI:
"category/name" or just "name". Opening a URI creates missing rows on
the way (category creation asks first); running scribe without a
subcommand starts the interactive navigator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging()

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configEditor = cfg.GetString(cfgKeyEditor)
		return nil
	},
	// No subcommand: start the interactive navigator.
	RunE: runNavigator,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.scribe-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "answer yes to all confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(rmcatCmd)
	rootCmd.AddCommand(listCmd)
}

// initLogging installs the process-wide slog default. Workflow logs go to
// stderr so stdout stays parseable under --json.
func initLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > SCRIBE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > SCRIBE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
