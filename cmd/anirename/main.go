package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/anirename/internal/config"
	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/ui"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	verbose bool
	noColor bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "anirename",
		Short: "Match anime files to TheTVDB episodes and rename them",
		Long: `anirename scans a series directory, matches every video file against
the episode catalog on TheTVDB, and renames the files to a canonical,
media-server-friendly form.

Renames are planned first and applied second: 'plan' shows exactly what
would happen, 'apply' performs it. Nothing is ever overwritten; multiple
releases of the same episode get stable .v2/.v3 version suffixes.

Typical session:
  anirename setup                                  # one-time API key setup
  anirename plan /media/Anime/Frieren --series-id 424536
  anirename apply /media/Anime/Frieren --series-id 424536`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColors()
			}
		},
	}

	// Show the ASCII header on bare root help only
	originalHelpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "anirename" {
			printHeader(version)
		}
		originalHelpFunc(cmd, args)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/anirename/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to the terminal as well as the log file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file (explicit --config path or the default
// location) and validates it.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the run logger. Terminal output stays quiet by default
// so tables and prompts own stdout; --verbose echoes debug lines to the
// terminal too.
func newLogger(cfg *config.Config) *logging.Logger {
	logCfg := cfg.Logging
	logCfg.Quiet = !verbose
	if verbose {
		logCfg.Level = "debug"
	}

	log, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		return logging.Nop()
	}
	return log
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printHeader(version)
		},
	}
}
