package config

import (
	"os"

	"lambda-invoker/internal/logger"
	"lambda-invoker/internal/services"

	"github.com/rs/zerolog"
)

const (
	AppName    = "Lambda Invoker"
	AppID      = "com.example.lambda-invoker"
	AppVersion = "1.0.0"
)

// Config is the startup configuration. There is no config file; only the log
// level is read from the environment and AWS credentials come from the SDK chain.
type Config struct {
	Invoker  services.InvokerConfig
	LogLevel zerolog.Level
}

// Load builds the configuration from compiled defaults and the process environment.
func Load() Config {
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration using the given lookup.
func FromEnv(getenv func(string) string) Config {
	return Config{
		Invoker:  services.DefaultInvokerConfig(),
		LogLevel: logger.ParseLevel(getenv("LOG_LEVEL"), getenv("DEBUG") == "1"),
	}
}
