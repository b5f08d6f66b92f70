/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config holds the dagjose CLI configuration.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DAGJOSE_SERVE_ADDRESS.
const EnvPrefix = "DAGJOSE"

// Configuration keys.
const (
	KeyLogSpec      = "log.spec"
	KeyLogEncoding  = "log.encoding"
	KeyServeAddress = "serve.address"
)

// DefaultAddress is the address serve listens on unless configured.
const DefaultAddress = "localhost:8080"

// Config represents the dagjose CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Serve ServeConfig `mapstructure:"serve"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Spec     string `mapstructure:"spec"`
	Encoding string `mapstructure:"encoding"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Address string `mapstructure:"address"`
}

// NewViper returns a viper instance with defaults and environment overrides
// applied.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyLogSpec, "")
	v.SetDefault(KeyLogEncoding, "console")
	v.SetDefault(KeyServeAddress, DefaultAddress)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file and returns the effective
// configuration.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	return cfg, nil
}
