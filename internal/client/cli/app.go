// Package cli implements accountctl, the operator tool for the accounts server.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/client/service"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes the environment variables accountctl reads. It matches
// the server's so one environment can serve both.
const EnvPrefix = "STORMCORE_"

// Config holds settings shared by all commands. Flags override it.
type Config struct {
	ServerAddr string        `env:"SERVER"`
	Token      string        `env:"TOKEN"`
	Timeout    time.Duration `env:"TIMEOUT"`

	// SecretKey and TokenTTL feed the token command.
	SecretKey string        `env:"SECRET_KEY"`
	TokenTTL  time.Duration `env:"ACCESS_TOKEN_VALIDITY"`
}

// DefaultConfig returns the built-in defaults overlaid with the environment.
func DefaultConfig() (*Config, error) {
	c := &Config{
		ServerAddr: "localhost:50051",
		Timeout:    15 * time.Second,
		TokenTTL:   time.Hour,
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

type App struct {
	config *Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// newService connects to the server; tests replace it.
	newService func(addr, token string) (service.Service, error)
}

func NewApp(in io.Reader, out, errOut io.Writer) (*App, error) {
	c, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	return &App{
		config:     c,
		in:         in,
		out:        out,
		errOut:     errOut,
		newService: dialService,
	}, nil
}

func dialService(addr, token string) (service.Service, error) {
	s, err := service.NewAccountClientService(addr, token)
	if err != nil {
		return nil, err
	}
	if err := s.InitGRPCClient(); err != nil {
		return nil, err
	}
	return s, nil
}
