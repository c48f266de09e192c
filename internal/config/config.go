package config

import (
	"log"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	TransportConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type TransportConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeoutSeconds() int
	GetRequestsPerSecond() float64
}

type mainConfig struct {
	EnvVars
}

// New loads .env when present (ignored in production setups that rely on
// real environment variables) and returns the env-backed configuration.
func New() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return mainConfig{}
}
