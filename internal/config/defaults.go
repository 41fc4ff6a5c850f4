package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/LeJamon/xrplpay/internal/events"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
	NetworkDevnet  = "devnet"
	NetworkCustom  = "custom"
)

// setDefaults sets every key so that environment overrides are picked up.
func setDefaults(v *viper.Viper) {
	v.SetDefault("network", NetworkTestnet)
	v.SetDefault("endpoint", "")
	v.SetDefault("network_id", 0)
	v.SetDefault("request_timeout", 30*time.Second)

	// Reference transaction cost, in drops
	v.SetDefault("fee_drops", 12)
	v.SetDefault("ledger_offset", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", events.DefaultTopic)
}

// GetDefaultNetworkConfig returns the public endpoint and network id of a
// well known network. Custom or unknown networks have no defaults.
func GetDefaultNetworkConfig(network string) map[string]any {
	switch network {
	case NetworkMainnet:
		return map[string]any{
			"endpoint":   "https://s1.ripple.com:51234/",
			"network_id": 0,
		}
	case NetworkTestnet:
		return map[string]any{
			"endpoint":   "https://s.altnet.rippletest.net:51234/",
			"network_id": 1,
		}
	case NetworkDevnet:
		return map[string]any{
			"endpoint":   "https://s.devnet.rippletest.net:51234/",
			"network_id": 2,
		}
	default:
		return map[string]any{}
	}
}

// ApplyNetworkDefaults applies network-specific defaults to the viper instance
func ApplyNetworkDefaults(v *viper.Viper, network string) {
	for key, value := range GetDefaultNetworkConfig(network) {
		v.SetDefault(key, value)
	}
}
