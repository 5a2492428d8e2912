package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the auth core's tunables. Everything comes from the process
// environment; nothing here is caller-supplied per request, so a client can
// never downgrade the hashing cost or stretch a session's lifetime.
type Config struct {
	// SessionTTL is the fixed lifetime of an issued token.
	SessionTTL time.Duration

	// BcryptCost is the application-wide hashing cost factor.
	BcryptCost int

	// LookupTimeout bounds store lookups during verification. A slow store
	// fails closed: the request is rejected, never implicitly authorized.
	LookupTimeout time.Duration
}

// LoadConfigFromEnv reads auth configuration from environment variables.
//
// Environment variables:
//   - SESSION_TTL: token lifetime as a Go duration (default: 24h)
//   - BCRYPT_COST: bcrypt cost factor (default: bcrypt.DefaultCost)
//   - AUTH_LOOKUP_TIMEOUT: verification lookup ceiling (default: 5s)
func LoadConfigFromEnv() Config {
	cfg := Config{
		SessionTTL:    24 * time.Hour,
		BcryptCost:    bcrypt.DefaultCost,
		LookupTimeout: 5 * time.Second,
	}

	if s := os.Getenv("SESSION_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.SessionTTL = d
		}
	}
	if s := os.Getenv("BCRYPT_COST"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.BcryptCost = n
		}
	}
	if s := os.Getenv("AUTH_LOOKUP_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.LookupTimeout = d
		}
	}

	return cfg
}

// Validate checks the loaded values are usable before the server starts.
func (c Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d outside [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup timeout must be positive, got %s", c.LookupTimeout)
	}
	return nil
}
