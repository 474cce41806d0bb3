package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/anirename/internal/config"
	"github.com/Nomadcxx/anirename/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage anirename configuration",
		Long: `Commands for inspecting the anirename configuration.

The config file is stored at: ~/.config/anirename/config.toml
Create or change it with 'anirename setup', by editing the file, or
through ANIRENAME_* environment variables.

Examples:
  anirename config show              # Display current configuration
  anirename config path              # Show config file path`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path, _ := config.ConfigPath()
			fmt.Printf("Config file: %s", path)
			if !config.Exists() {
				fmt.Print(" (not created yet, showing defaults)")
			}
			fmt.Println()

			ui.Section("TheTVDB")
			fmt.Printf("URL:      %s\n", cfg.TVDB.URL)
			fmt.Printf("API Key:  %s\n", maskAPIKey(cfg.TVDB.APIKey))
			fmt.Printf("PIN:      %s\n", maskAPIKey(cfg.TVDB.PIN))
			fmt.Printf("Language: %s\n", cfg.TVDB.Language)

			ui.Section("Library")
			fmt.Printf("Video extensions: %s\n", strings.Join(cfg.Library.VideoExtensions, " "))

			ui.Section("Naming")
			fmt.Printf("Regular: %s\n", cfg.Naming.RegularTemplate)
			fmt.Printf("Special: %s\n", cfg.Naming.SpecialTemplate)

			ui.Section("Options")
			fmt.Printf("Dry Run:       %v\n", cfg.Options.DryRun)
			fmt.Printf("Versioning:    %s\n", cfg.Options.Versioning)
			fmt.Printf("Operation Log: %v\n", cfg.Options.OperationLog)

			ui.Section("Logging")
			fmt.Printf("Level: %s\n", cfg.Logging.Level)
			if cfg.Logging.File != "" {
				fmt.Printf("File:  %s\n", cfg.Logging.File)
			}

			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			if !config.Exists() {
				fmt.Println("(file does not exist)")
			}
			return nil
		},
	}
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
