package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig mirrors Config with env tags; it is parsed separately so that
// unset variables do not stomp values coming from defaults or the JSON file.
type EnvConfig struct {
	EndpointAddr               string        `env:"ADDRESS"`
	DatabaseDSN                string        `env:"DATABASE_DSN"`
	SecretKey                  string        `env:"JWT_SECRET_KEY"`
	TokenValidityDuration      time.Duration `env:"TOKEN_VALIDITY_DURATION"`
	ResetTokenValidityDuration time.Duration `env:"RESET_TOKEN_VALIDITY_DURATION"`
}

// parseEnv overlays environment variables onto the Config. Only variables
// that are actually set override existing values.
func parseEnv(config *Config) {
	c := EnvConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration
	}
	if c.ResetTokenValidityDuration != 0 {
		config.ResetTokenValidityDuration = c.ResetTokenValidityDuration
	}
}
