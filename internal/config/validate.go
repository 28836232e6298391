package config

import (
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap/zapcore"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be >= 0, got %s", c.Server.ShutdownTimeout)
	}
	if c.Static.Dir == "" {
		return errors.New("static.dir is required")
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url must be http or https, got %q", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.url has no host: %q", c.Backend.URL)
	}

	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0, got %d", c.Redis.DB)
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
