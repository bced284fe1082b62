package config

import "github.com/spf13/pflag"

// PriceConfig holds configuration for the price command.
type PriceConfig struct {
	Network  string
	RPCURL   string
	FeeTier  uint32
	LogLevel string
}

// LoadPrice merges config file, environment variables, and flags into PriceConfig.
func LoadPrice(cfgFile string, flags *pflag.FlagSet) (PriceConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"network":   "ethereum-mainnet",
		"fee-tier":  uint32(3000),
		"log-level": "info",
	})
	if err != nil {
		return PriceConfig{}, err
	}

	return PriceConfig{
		Network:  v.GetString("network"),
		RPCURL:   v.GetString("rpc"),
		FeeTier:  v.GetUint32("fee-tier"),
		LogLevel: v.GetString("log-level"),
	}, nil
}

// InspectConfig holds configuration for the inspect command.
type InspectConfig struct {
	Network  string
	RPCURL   string
	TokenID  string
	LogLevel string
}

// LoadInspect merges config file, environment variables, and flags into InspectConfig.
func LoadInspect(cfgFile string, flags *pflag.FlagSet) (InspectConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"network":   "ethereum-mainnet",
		"log-level": "info",
	})
	if err != nil {
		return InspectConfig{}, err
	}

	return InspectConfig{
		Network:  v.GetString("network"),
		RPCURL:   v.GetString("rpc"),
		TokenID:  v.GetString("token-id"),
		LogLevel: v.GetString("log-level"),
	}, nil
}
