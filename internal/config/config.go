// Package config loads and validates the JSON configuration document.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"aqarscan/internal/constants"
	"aqarscan/internal/models"
)

var validate = validator.New()

// Load reads the configuration file, applies environment overrides, fills
// defaults, and validates the result.
func Load(path string) (*models.Config, error) {
	if path == "" || strings.Contains(path, "..") {
		return nil, models.ConfigError{Message: fmt.Sprintf("invalid config path: %q", path)}
	}

	file, err := os.ReadFile(path) // #nosec G304 - path checked above
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config models.Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(&config)
	applyDefaults(&config)

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if url := os.Getenv("AQARSCAN_WHATSAPP_API_URL"); url != "" {
		c.WhatsApp.APIBaseURL = url
	}
	if session := os.Getenv("AQARSCAN_WHATSAPP_SESSION"); session != "" {
		c.WhatsApp.SessionName = session
	}
	if path := os.Getenv("AQARSCAN_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if path := os.Getenv("AQARSCAN_SNAPSHOT_PATH"); path != "" {
		c.Store.SnapshotPath = path
	}
	if port := os.Getenv("AQARSCAN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if level := os.Getenv("AQARSCAN_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

func applyDefaults(c *models.Config) {
	if c.WhatsApp.TimeoutSec <= 0 {
		c.WhatsApp.TimeoutSec = constants.DefaultWhatsAppTimeoutSec
	}
	if c.Store.CheckpointIntervalSec <= 0 {
		c.Store.CheckpointIntervalSec = constants.DefaultCheckpointIntervalSec
	}
	if c.Scanner.MaxMessagesPerGroup <= 0 {
		c.Scanner.MaxMessagesPerGroup = constants.DefaultMaxMessagesPerGroup
	}
	if c.Scanner.GroupDelayMs <= 0 {
		c.Scanner.GroupDelayMs = constants.DefaultGroupDelayMs
	}
	if c.Scanner.FetchTimeoutSec <= 0 {
		c.Scanner.FetchTimeoutSec = constants.DefaultFetchTimeoutSec
	}
	if c.Server.Port <= 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
