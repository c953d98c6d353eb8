package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/flagx"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration so both "10s" and integer nanoseconds parse.
// Fields absent from the file stay nil and leave the Config untouched.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	MinAccountID                *int64          `json:"min_account_id"`
	MaxProvisionAttempts        *int            `json:"max_provision_attempts"`
	ProvisionTimeout            *timex.Duration `json:"provision_timeout"`
	SerializableTx              *bool           `json:"serializable_tx"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.MinAccountID != nil {
		config.MinAccountID = *c.MinAccountID
	}
	if c.MaxProvisionAttempts != nil {
		config.MaxProvisionAttempts = *c.MaxProvisionAttempts
	}
	if c.ProvisionTimeout != nil {
		config.ProvisionTimeout = c.ProvisionTimeout.Duration
	}
	if c.SerializableTx != nil {
		config.SerializableTx = *c.SerializableTx
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
