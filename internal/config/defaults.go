package config

import "time"

const (
	DefaultAddress         = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultStaticDir       = "./public"
	DefaultBackendURL      = "http://localhost:9001"
	DefaultServiceName     = "edge-path-rewriter"
	DefaultLogLevel        = "info"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Static.Dir == "" {
		c.Static.Dir = DefaultStaticDir
	}
	if c.Backend.URL == "" {
		c.Backend.URL = DefaultBackendURL
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = DefaultServiceName
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
