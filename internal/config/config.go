// Package config holds CLI-only configuration: the core library itself
// takes every collaborator as an explicit parameter and never reads
// from this package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	configData Config
	v          *viper.Viper
)

// Config holds all CLI configuration settings.
type Config struct {
	Log struct {
		Level  string
		Format string
	}
	Tr31 struct {
		// Strict disables the §4.6 robustness rule: when true, a
		// malformed optional-block header is a hard parse error instead
		// of "stop parsing optional blocks, treat remainder as key data".
		Strict bool
	}
	Output struct {
		// Upper controls hex casing for CLI output; core packages always
		// return uppercase, this only affects the hex values the CLI prints.
		Upper bool
	}
}

// Initialize sets up the configuration system: defaults, config file,
// and environment variable overrides.
func Initialize() error {
	v = viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.paycrypto")
	v.AddConfigPath("/etc/paycrypto/")

	setDefaults()

	v.SetEnvPrefix("PAYCRYPTO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := ensureConfig(); err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&configData); err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return nil
}

func setDefaults() {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "human")
	v.SetDefault("tr31.strict", false)
	v.SetDefault("output.upper", true)
}

func ensureConfig() error {
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}
	dir := filepath.Join(home, ".paycrypto")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := `# paycrypto CLI configuration
log:
  level: info
  format: human

tr31:
  strict: false

output:
  upper: true
`
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the current configuration.
func Get() *Config {
	return &configData
}

// GetViper returns the underlying viper instance, for binding flags.
func GetViper() *viper.Viper {
	return v
}
