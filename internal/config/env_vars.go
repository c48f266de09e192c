package config

import (
	"os"
	"strconv"
)

const (
	appNameVar    = "APP_NAME"
	folderEnvVar  = "FOLDER"
	apiBaseURLVar = "API_BASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ TransportConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Radar Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAPIBaseURL returns the backend base URL, including the API prefix
// (e.g. "https://radar.example.com/api/v1").
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080/api/v1")
}

func (EnvVars) GetRequestTimeoutSeconds() int {
	return GetEnvInt("REQUEST_TIMEOUT_SECONDS", 30)
}

// GetRequestsPerSecond bounds outgoing request rate. Zero disables
// client-side throttling.
func (EnvVars) GetRequestsPerSecond() float64 {
	v := GetEnv("REQUESTS_PER_SECOND", "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
