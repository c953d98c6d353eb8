package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/flagx"
)

// serverFlags are the flags parseFlags owns.
var serverFlags = flagx.Allowed{
	Value: []string{"a", "d", "s", "t", "i", "n", "o", "l"},
	Bool:  []string{"z"},
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     database DSN
//	-s string     operator token HMAC secret
//	-t int        operator token validity, minutes
//	-i int        lowest account id to assign
//	-n int        provisioning attempts on id races
//	-o duration   provisioning timeout (e.g., "10s")
//	-z            serializable provisioning transactions
//	-l string     log level
//
// Arguments are first filtered with flagx.FilterArgs so flags meant for
// other parsers (-c) do not cause errors.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.Int64Var(&config.MinAccountID, "i", config.MinAccountID, "lowest account id to assign")
	fs.IntVar(&config.MaxProvisionAttempts, "n", config.MaxProvisionAttempts, "provisioning attempts on id races")
	fs.DurationVar(&config.ProvisionTimeout, "o", config.ProvisionTimeout, "provisioning timeout")
	fs.BoolVar(&config.SerializableTx, "z", config.SerializableTx, "serializable provisioning transactions")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	return nil
}
