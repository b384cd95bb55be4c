package jwtx

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultAudience identifies tokens minted for koompiPlay.
	DefaultAudience = "koompiPlay"
	// TokenTTL is the lifetime of every issued token.
	TokenTTL = 24 * time.Hour

	maxClockSkew = 5 * time.Minute
)

// Environment variables read by ConfigFromEnv.
const (
	EnvSecret    = "KOOMPI_TOKEN_SECRET"
	EnvAudience  = "KOOMPI_TOKEN_AUDIENCE"
	EnvClockSkew = "KOOMPI_TOKEN_CLOCK_SKEW"
)

// Config holds the shared signing parameters of an Issuer or Verifier.
type Config struct {
	// Secret is the HMAC-SHA256 key shared by issuance and verification.
	Secret []byte
	// Audience is the single application identifier written to and
	// required in the aud claim. Defaults to DefaultAudience.
	Audience string
	// ClockSkew tolerates verifier clocks running ahead of the issuer.
	// Zero means a token is expired as soon as now passes exp.
	ClockSkew time.Duration
	// Now overrides the wall clock, mostly for tests.
	Now func() time.Time
}

// normalize sets default values for optional fields.
func (c *Config) normalize() {
	c.Audience = strings.TrimSpace(c.Audience)
	if c.Audience == "" {
		c.Audience = DefaultAudience
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	c.Secret = append([]byte(nil), c.Secret...)
}

// validate ensures the configuration is usable.
func (c Config) validate() error {
	switch {
	case len(c.Secret) == 0:
		return errors.New("secret is required")
	case c.ClockSkew < 0:
		return errors.New("clock skew must not be negative")
	case c.ClockSkew > maxClockSkew:
		return fmt.Errorf("clock skew must not exceed %s", maxClockSkew)
	}
	return nil
}

// ConfigFromEnv reads the secret, audience and clock skew from the process
// environment.
func ConfigFromEnv() (Config, error) {
	secret, ok := os.LookupEnv(EnvSecret)
	if !ok || secret == "" {
		return Config{}, fmt.Errorf("%s is required", EnvSecret)
	}
	cfg := Config{
		Secret:   []byte(secret),
		Audience: os.Getenv(EnvAudience),
	}
	if raw := strings.TrimSpace(os.Getenv(EnvClockSkew)); raw != "" {
		skew, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvClockSkew, err)
		}
		cfg.ClockSkew = skew
	}
	return cfg, nil
}

// prepare normalizes and validates a copy of cfg.
func (c Config) prepare() (Config, error) {
	c.normalize()
	if err := c.validate(); err != nil {
		return Config{}, newError(ErrCodeInvalidConfig, err)
	}
	return c, nil
}
