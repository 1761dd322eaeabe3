package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings used when building the sidebar.
type Config struct {
	Spec      string `mapstructure:"spec"`
	Base      string `mapstructure:"base"`
	Separator string `mapstructure:"separator"`
	Format    string `mapstructure:"format"`
}

// Output formats.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Default configuration values.
const (
	DefaultSpec       = "docs/cli/commands.json"
	DefaultBase       = "/cli"
	DefaultSeparator  = " "
	DefaultFormat     = FormatAuto
	DefaultConfigName = "config"
	DefaultConfigDir  = "hkdocs"
	LocalConfigName   = ".hkdocs"
	EnvPrefix         = "HKDOCS"
)

// ErrUnknownFormat is returned for an output format hkdocs cannot write.
var ErrUnknownFormat = errors.New("unknown output format")

var formats = []string{FormatAuto, FormatJSON, FormatYAML, FormatText}

// Formats returns the accepted output formats.
func Formats() []string {
	return slices.Clone(formats)
}

// InitConfig prepares viper: defaults, environment, and the config file.
// A missing config file is not an error; hkdocs never creates one.
func InitConfig(cfgFile string) error {
	viper.SetDefault("spec", DefaultSpec)
	viper.SetDefault("base", DefaultBase)
	viper.SetDefault("separator", DefaultSeparator)
	viper.SetDefault("format", DefaultFormat)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		return nil
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		return nil
	}
	return nil
}

// searchPaths lists candidate config files, most specific first.
func searchPaths() []string {
	paths := []string{LocalConfigName + ".yaml", LocalConfigName + ".yml"}
	if dir := configDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, DefaultConfigDir, DefaultConfigName+".yaml"))
	}
	return paths
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// GetConfig returns the current settings as an immutable value.
func GetConfig() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings hkdocs cannot act on.
func (c Config) Validate() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, c.Format, strings.Join(formats, ", "))
	}
	if strings.TrimSpace(c.Spec) == "" {
		return errors.New("spec path must not be empty")
	}
	return nil
}
