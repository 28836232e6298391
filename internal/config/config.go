// Package config loads the local edge emulator configuration.
package config

import "time"

type (
	// Config is the root of the emulator configuration file.
	Config struct {
		Server  Server  `yaml:"server"`
		Static  Static  `yaml:"static"`
		Backend Backend `yaml:"backend"`
		Redis   Redis   `yaml:"redis"`
		Tracing Tracing `yaml:"tracing"`
		Log     Log     `yaml:"log"`
	}

	// Server contains the HTTP listener settings.
	Server struct {
		Address         string        `yaml:"address"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	}

	// Static is the directory standing in for the static object origin.
	Static struct {
		Dir string `yaml:"dir"`
	}

	// Backend is the application tier that receives /app/ requests.
	Backend struct {
		URL string `yaml:"url"`
	}

	// Redis holds the analytics store. An empty Addr disables analytics.
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}

	Tracing struct {
		Enabled     bool   `yaml:"enabled"`
		ServiceName string `yaml:"service_name"`
	}

	Log struct {
		Level string `yaml:"level"`
	}
)
