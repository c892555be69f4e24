// Package config provides configuration for the museumbot binary.
package config

import (
	"fmt"
	"os"
)

// Default configuration values.
const (
	DefaultPort     = "5001"
	DefaultDataFile = "data/raw_poi_data.json"
	DefaultLanguage = "EN"
	DefaultAIModel  = "qwen3-32b"
	DefaultAIBase   = "https://dashscope.aliyuncs.com/compatible-mode/v1"
)

// Config holds all configuration for the museumbot application.
// Flag parsing is done in cmd/museumbot/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// Port is the HTTP listen port for the visitor UI.
	Port string

	// DataFile is the path to the map/POI JSON document.
	DataFile string

	// Language is the initial guide language ("EN" or "ZH").
	Language string

	// AI responder configuration (DashScope-compatible endpoint).
	AIBaseURL string
	AIModel   string
	AIKey     string

	// MonitorURL is the optional fleet-monitor websocket endpoint.
	// Empty disables the remote forwarder.
	MonitorURL string
}

// DefaultConfig returns sensible defaults for museumbot configuration.
func DefaultConfig() Config {
	return Config{
		Port:      DefaultPort,
		DataFile:  DefaultDataFile,
		Language:  DefaultLanguage,
		AIBaseURL: DefaultAIBase,
		AIModel:   DefaultAIModel,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this before flag parsing so explicit flags win over the environment.
func (c *Config) LoadEnvConfig() {
	if port := os.Getenv("MUSEUMBOT_PORT"); port != "" {
		c.Port = port
	}
	if path := os.Getenv("MUSEUMBOT_DATA"); path != "" {
		c.DataFile = path
	}
	if lang := os.Getenv("MUSEUMBOT_LANG"); lang != "" {
		c.Language = lang
	}
	if base := os.Getenv("AI_BASE_URL"); base != "" {
		c.AIBaseURL = base
	}
	if model := os.Getenv("AI_MODEL"); model != "" {
		c.AIModel = model
	}
	c.AIKey = os.Getenv("ALIBABA_API_KEY")
	c.MonitorURL = os.Getenv("MONITOR_URL")
}

// Validate checks that required configuration is present.
// A missing AI key is allowed: the responder degrades to canned answers.
func (c *Config) Validate() error {
	if c.Port == "" {
		return &ConfigError{Field: "Port", Message: "listen port must not be empty"}
	}
	if c.DataFile == "" {
		return &ConfigError{Field: "DataFile", Message: "map data file path is required"}
	}
	return nil
}

// ConfigError describes an invalid or missing configuration field.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}
