package models

import "fmt"

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// WhatsAppConfig configures the messaging-session client.
type WhatsAppConfig struct {
	APIBaseURL  string `json:"api_base_url" validate:"required,url"`
	SessionName string `json:"session_name" validate:"required"`
	TimeoutSec  int    `json:"timeout_sec" validate:"omitempty,min=1"`
}

// DatabaseConfig configures the sqlite offer archive.
type DatabaseConfig struct {
	Path string `json:"path" validate:"required"`
}

// StoreConfig configures the aggregation store snapshot file.
type StoreConfig struct {
	SnapshotPath          string `json:"snapshot_path" validate:"required"`
	CheckpointIntervalSec int    `json:"checkpoint_interval_sec" validate:"omitempty,min=1"`
}

// ScannerConfig configures the batch history scanner.
type ScannerConfig struct {
	MaxMessagesPerGroup int `json:"max_messages_per_group" validate:"omitempty,min=1"`
	GroupDelayMs        int `json:"group_delay_ms" validate:"omitempty,min=0"`
	FetchTimeoutSec     int `json:"fetch_timeout_sec" validate:"omitempty,min=1"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port int `json:"port" validate:"omitempty,min=1,max=65535"`
}

// TracingConfig configures OpenTelemetry trace export.
type TracingConfig struct {
	Enabled      bool    `json:"enabled"`
	ServiceName  string  `json:"service_name"`
	Environment  string  `json:"environment"`
	OTLPEndpoint string  `json:"otlp_endpoint"`
	SampleRate   float64 `json:"sample_rate" validate:"omitempty,min=0,max=1"`
	UseStdout    bool    `json:"use_stdout"`
}

// Config is the root configuration document.
type Config struct {
	LogLevel string         `json:"log_level"`
	WhatsApp WhatsAppConfig `json:"whatsapp" validate:"required"`
	Database DatabaseConfig `json:"database" validate:"required"`
	Store    StoreConfig    `json:"store" validate:"required"`
	Scanner  ScannerConfig  `json:"scanner"`
	Server   ServerConfig   `json:"server"`
	Tracing  TracingConfig  `json:"tracing"`
}
