package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// ValidateConfig checks the complete configuration.
func ValidateConfig(config *Config) error {
	if err := validateNetwork(config); err != nil {
		return err
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	if config.FeeDrops == 0 {
		return fmt.Errorf("%w: fee_drops must be positive", ErrInvalidConfig)
	}

	if err := validateLog(&config.Log); err != nil {
		return err
	}

	if config.Events.Enabled() && config.Events.Topic == "" {
		return fmt.Errorf("%w: events.topic is required when events.brokers is set", ErrInvalidConfig)
	}

	return nil
}

func validateNetwork(config *Config) error {
	switch config.Network {
	case NetworkMainnet, NetworkTestnet, NetworkDevnet, NetworkCustom:
	default:
		return fmt.Errorf("%w: unknown network %q (mainnet, testnet, devnet, custom)", ErrInvalidConfig, config.Network)
	}

	if config.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required for network %s", ErrInvalidConfig, config.Network)
	}

	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: endpoint %q: %v", ErrInvalidConfig, config.Endpoint, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("%w: endpoint %q must use http, https, ws or wss", ErrInvalidConfig, config.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: endpoint %q has no host", ErrInvalidConfig, config.Endpoint)
	}

	return nil
}

func validateLog(log *LogConfig) error {
	switch strings.ToLower(log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, log.Level)
	}

	switch strings.ToLower(log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalidConfig, log.Format)
	}
	return nil
}
