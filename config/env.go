// Package config loads the chaincode process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Server configures how the chaincode process is run. With an empty Address
// the peer launches the chaincode; otherwise it runs as an external
// chaincode service listening on Address.
type Server struct {
	Address          string `env:"CHAINCODE_SERVER_ADDRESS"`
	ChaincodeID      string `env:"CHAINCODE_ID"`
	TLSDisabled      bool   `env:"CHAINCODE_TLS_DISABLED" envDefault:"true"`
	TLSKeyFile       string `env:"CHAINCODE_TLS_KEY"`
	TLSCertFile      string `env:"CHAINCODE_TLS_CERT"`
	ClientCACertFile string `env:"CHAINCODE_CLIENT_CA_CERT"`
	LogSpec          string `env:"CHAINCODE_LOG_SPEC" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the Server configuration.
func Load() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// ExternalService reports whether the chaincode runs as a service rather than
// being launched by the peer.
func (s Server) ExternalService() bool {
	return s.Address != ""
}

// Validate checks settings that depend on each other.
func (s Server) Validate() error {
	if !s.ExternalService() {
		return nil
	}
	if s.ChaincodeID == "" {
		return errors.New("CHAINCODE_ID is required when CHAINCODE_SERVER_ADDRESS is set")
	}
	if !s.TLSDisabled && (s.TLSKeyFile == "" || s.TLSCertFile == "") {
		return errors.New("CHAINCODE_TLS_KEY and CHAINCODE_TLS_CERT are required when TLS is enabled")
	}
	return nil
}

// TLSProperties reads the configured key material for the chaincode server.
func (s Server) TLSProperties() (shim.TLSProperties, error) {
	if s.TLSDisabled {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(s.TLSKeyFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read tls key: %w", err)
	}
	cert, err := os.ReadFile(s.TLSCertFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read tls cert: %w", err)
	}
	props := shim.TLSProperties{Key: key, Cert: cert}
	if s.ClientCACertFile != "" {
		ca, err := os.ReadFile(s.ClientCACertFile)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("read client ca cert: %w", err)
		}
		props.ClientCACerts = ca
	}
	return props, nil
}
