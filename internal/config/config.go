package config

import "time"

// Config is the complete xrplpay configuration.
type Config struct {
	// Network selects the defaults for Endpoint and NetworkID:
	// mainnet, testnet, devnet or custom.
	Network string `toml:"network" mapstructure:"network"`

	// Endpoint is the rippled API the payments go through. http(s) selects
	// JSON-RPC, ws(s) the WebSocket API.
	Endpoint  string `toml:"endpoint" mapstructure:"endpoint"`
	NetworkID uint32 `toml:"network_id" mapstructure:"network_id"`

	// RequestTimeout bounds each request to Endpoint.
	RequestTimeout time.Duration `toml:"request_timeout" mapstructure:"request_timeout"`

	// FeeDrops is the Fee of every payment, in drops.
	FeeDrops uint64 `toml:"fee_drops" mapstructure:"fee_drops"`

	// LedgerOffset is how many ledgers past the current one a payment stays
	// valid. 0 disables LastLedgerSequence.
	LedgerOffset uint32 `toml:"ledger_offset" mapstructure:"ledger_offset"`

	Log    LogConfig    `toml:"log" mapstructure:"log"`
	Events EventsConfig `toml:"events" mapstructure:"events"`

	configPath string
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `toml:"format" mapstructure:"format"` // json or text
}

// EventsConfig configures payment outcome notifications. No brokers means
// events are not published.
type EventsConfig struct {
	Brokers []string `toml:"brokers" mapstructure:"brokers"`
	Topic   string   `toml:"topic" mapstructure:"topic"`
}

// Enabled reports whether events should be published.
func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0
}

// GetConfigPath returns the path of the file the configuration was read
// from, or "" when only defaults and environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}
