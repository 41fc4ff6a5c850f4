package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. XRPLPAY_FEE_DROPS or
// XRPLPAY_LOG_LEVEL.
const EnvPrefix = "XRPLPAY"

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (xrplpay.toml), skipped when path is empty
// 3. Environment variables (XRPLPAY_ prefix)
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load configuration file
	if path != "" {
		if err := loadConfigFile(v, path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Network defaults depend on the network chosen by the file or environment
	ApplyNetworkDefaults(v, strings.ToLower(v.GetString("network")))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Network = strings.ToLower(config.Network)
	config.configPath = path

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// DefaultConfigPath returns xrplpay.toml in the working directory when it
// exists, otherwise "".
func DefaultConfigPath() string {
	const name = "xrplpay.toml"
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return ""
}

func loadConfigFile(v *viper.Viper, configPath string) error {
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	return nil
}
