package config

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != DefaultPort {
		t.Errorf("Port: got %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.DataFile != DefaultDataFile {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, DefaultDataFile)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("Language: got %q, want %q", cfg.Language, DefaultLanguage)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MUSEUMBOT_PORT", "8080")
	t.Setenv("MUSEUMBOT_DATA", "/srv/museum/map.json")
	t.Setenv("MUSEUMBOT_LANG", "ZH")
	t.Setenv("AI_MODEL", "qwen-plus")
	t.Setenv("ALIBABA_API_KEY", "sk-test")
	t.Setenv("MONITOR_URL", "ws://monitor.local/ws")

	cfg := DefaultConfig()
	cfg.LoadEnvConfig()

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.DataFile != "/srv/museum/map.json" {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.Language != "ZH" {
		t.Errorf("Language: got %q", cfg.Language)
	}
	if cfg.AIModel != "qwen-plus" {
		t.Errorf("AIModel: got %q", cfg.AIModel)
	}
	if cfg.AIKey != "sk-test" {
		t.Errorf("AIKey: got %q", cfg.AIKey)
	}
	if cfg.MonitorURL != "ws://monitor.local/ws" {
		t.Errorf("MonitorURL: got %q", cfg.MonitorURL)
	}
}

func TestLoadEnvConfig_EmptyKeepsDefaults(t *testing.T) {
	t.Setenv("MUSEUMBOT_PORT", "")
	t.Setenv("MUSEUMBOT_DATA", "")

	cfg := DefaultConfig()
	cfg.LoadEnvConfig()

	if cfg.Port != DefaultPort || cfg.DataFile != DefaultDataFile {
		t.Errorf("empty env vars overrode defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for empty port")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "Port" {
		t.Errorf("got %v, want a ConfigError for Port", err)
	}

	cfg = DefaultConfig()
	cfg.DataFile = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for empty data file")
	}
}
