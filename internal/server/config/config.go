// Package config handles configuration for the server component: defaults,
// environment variables and command-line flags, in that precedence order.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/iudanet/taskkeeper/internal/server/auth"
)

// Config holds runtime settings for the taskkeeper server.
//
// Fields:
//   - Address: bind address for the HTTP endpoint.
//   - DatabasePath: path to the SQLite database file.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the development default in production.
//   - TokenTTL: session token lifetime.
//   - BcryptCost: work factor for password hashing.
type Config struct {
	Address      string
	DatabasePath string
	SecretKey    string
	TokenTTL     time.Duration
	BcryptCost   int
}

// loadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in prod.
func (c *Config) loadDefaults() {
	c.Address = ":8080"
	c.DatabasePath = "taskkeeper.db"
	c.SecretKey = "dev-secret-key"
	c.TokenTTL = 168 * time.Hour
	c.BcryptCost = auth.DefaultCost
}

// loadEnv overlays values from environment variables
func (c *Config) loadEnv() error {
	if v := os.Getenv("TASKKEEPER_ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("TASKKEEPER_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("TASKKEEPER_SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("TASKKEEPER_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASKKEEPER_TOKEN_TTL: %w", err)
		}
		c.TokenTTL = ttl
	}
	if v := os.Getenv("TASKKEEPER_BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TASKKEEPER_BCRYPT_COST: %w", err)
		}
		c.BcryptCost = cost
	}
	return nil
}

// parseFlags overlays values from command-line flags
func (c *Config) parseFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.Address, "a", c.Address, "address and port to run the server")
	fs.StringVar(&c.DatabasePath, "d", c.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "secret key for signing session tokens")
	fs.DurationVar(&c.TokenTTL, "t", c.TokenTTL, "session token lifetime")
	fs.IntVar(&c.BcryptCost, "c", c.BcryptCost, "bcrypt cost for password hashing")

	return fs.Parse(args)
}

// Load builds a Config by applying defaults, then environment variables,
// then command-line flags.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.loadDefaults()

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(fs, args); err != nil {
		return nil, err
	}

	return cfg, nil
}
