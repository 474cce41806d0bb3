// Package config loads and persists the anirename configuration.
//
// Configuration lives at ~/.config/anirename/config.toml (sudo-aware).
// Values can be overridden through ANIRENAME_* environment variables,
// e.g. ANIRENAME_TVDB_API_KEY.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/naming"
	"github.com/Nomadcxx/anirename/internal/paths"
	"github.com/Nomadcxx/anirename/internal/scanner"
	"github.com/Nomadcxx/anirename/internal/tvdb"
	"github.com/Nomadcxx/anirename/internal/versioning"
)

// Config is the full anirename configuration
type Config struct {
	TVDB    TVDBConfig     `mapstructure:"tvdb" toml:"tvdb"`
	Library LibraryConfig  `mapstructure:"library" toml:"library"`
	Naming  NamingConfig   `mapstructure:"naming" toml:"naming"`
	Options OptionsConfig  `mapstructure:"options" toml:"options"`
	Logging logging.Config `mapstructure:"logging" toml:"logging"`
}

// TVDBConfig contains TheTVDB API settings
type TVDBConfig struct {
	URL      string `mapstructure:"url" toml:"url"`
	APIKey   string `mapstructure:"api_key" toml:"api_key"`
	PIN      string `mapstructure:"pin" toml:"pin"`
	Language string `mapstructure:"language" toml:"language"`
}

// LibraryConfig contains scan settings
type LibraryConfig struct {
	VideoExtensions []string `mapstructure:"video_extensions" toml:"video_extensions"`
}

// NamingConfig contains the filename templates
type NamingConfig struct {
	RegularTemplate string `mapstructure:"regular_template" toml:"regular_template"`
	SpecialTemplate string `mapstructure:"special_template" toml:"special_template"`
}

// OptionsConfig contains general options
type OptionsConfig struct {
	DryRun       bool   `mapstructure:"dry_run" toml:"dry_run"`
	Versioning   string `mapstructure:"versioning" toml:"versioning"`
	OperationLog bool   `mapstructure:"operation_log" toml:"operation_log"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TVDB: TVDBConfig{
			URL:      tvdb.DefaultURL,
			APIKey:   "",
			PIN:      "",
			Language: tvdb.DefaultLanguage,
		},
		Library: LibraryConfig{
			VideoExtensions: append([]string(nil), scanner.DefaultVideoExtensions...),
		},
		Naming: NamingConfig{
			RegularTemplate: naming.DefaultRegularTemplate,
			SpecialTemplate: naming.DefaultSpecialTemplate,
		},
		Options: OptionsConfig{
			DryRun:       false,
			Versioning:   versioning.Temporary.String(),
			OperationLog: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads the configuration file, applies environment overrides and
// fills the rest from defaults. A missing file is not an error.
func Load() (*Config, error) {
	configPath, err := paths.ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from an explicit path
func LoadFrom(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	setDefaults(v)

	v.SetEnvPrefix("ANIRENAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key with viper so environment overrides
// resolve even when the config file does not mention them.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("tvdb.url", def.TVDB.URL)
	v.SetDefault("tvdb.api_key", def.TVDB.APIKey)
	v.SetDefault("tvdb.pin", def.TVDB.PIN)
	v.SetDefault("tvdb.language", def.TVDB.Language)
	v.SetDefault("library.video_extensions", def.Library.VideoExtensions)
	v.SetDefault("naming.regular_template", def.Naming.RegularTemplate)
	v.SetDefault("naming.special_template", def.Naming.SpecialTemplate)
	v.SetDefault("options.dry_run", def.Options.DryRun)
	v.SetDefault("options.versioning", def.Options.Versioning)
	v.SetDefault("options.operation_log", def.Options.OperationLog)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.max_size_mb", def.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)
	v.SetDefault("logging.quiet", def.Logging.Quiet)
}

// Validate reports configuration values the pipeline cannot work with
func (c *Config) Validate() error {
	if _, err := versioning.ParseMode(c.Options.Versioning); err != nil {
		return fmt.Errorf("options.versioning: %w", err)
	}
	if strings.ContainsAny(c.Naming.RegularTemplate, `/\`) {
		return fmt.Errorf("naming.regular_template must not contain path separators")
	}
	if strings.ContainsAny(c.Naming.SpecialTemplate, `/\`) {
		return fmt.Errorf("naming.special_template must not contain path separators")
	}
	for _, ext := range c.Library.VideoExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("library.video_extensions: %q must start with a dot", ext)
		}
	}
	return nil
}

// VersioningMode returns the parsed duplicate handling mode
func (c *Config) VersioningMode() versioning.Mode {
	mode, err := versioning.ParseMode(c.Options.Versioning)
	if err != nil {
		return versioning.Temporary
	}
	return mode
}

// Formatter builds the filename formatter for the configured templates
func (c *Config) Formatter() naming.Formatter {
	return naming.NewFormatter(c.Naming.RegularTemplate, c.Naming.SpecialTemplate)
}

// Save writes the configuration to its default location
func (c *Config) Save() error {
	configPath, err := paths.ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the configuration as TOML to an explicit path
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("unable to marshal config: %w", err)
	}

	header := "# anirename configuration\n# edit by hand or regenerate with: anirename setup\n\n"
	return os.WriteFile(configPath, append([]byte(header), data...), 0644)
}

// ConfigPath returns the path of the config file
func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

// Exists reports whether a config file is present
func Exists() bool {
	path, err := paths.ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
