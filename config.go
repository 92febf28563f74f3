package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// Config holds the collector tuning knobs. All delays are expressed in
// milliseconds in the JSON file; zero disables the corresponding delay.
type Config struct {
	// Page sizes for the two paginated comment endpoints (API maximum is 100).
	ThreadPageSize int64 `json:"thread_page_size"`
	ReplyPageSize  int64 `json:"reply_page_size"`

	// Fixed inter-call delays to stay under the API quota.
	VideoDelayMs      int `json:"video_delay_ms"`
	ThreadPageDelayMs int `json:"thread_page_delay_ms"`
	ReplyPageDelayMs  int `json:"reply_page_delay_ms"`

	// Directory for generated export files when no explicit output is given.
	OutputDir string `json:"output_dir"`
}

// defaultConfig returns the built-in tuning values, matching the API's
// documented page maximums and conservative fixed delays.
func defaultConfig() *Config {
	return &Config{
		ThreadPageSize:    100,
		ReplyPageSize:     100,
		VideoDelayMs:      1000,
		ThreadPageDelayMs: 500,
		ReplyPageDelayMs:  200,
		OutputDir:         "data",
	}
}

// loadConfig loads configuration from a local JSON file, falling back to
// defaults when the path is empty or the file cannot be read. Fields absent
// from the file keep their default values.
func loadConfig(path string) *Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read config file, using defaults", "error", err, "path", path)
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		slog.Warn("Failed to parse config file, using defaults", "error", err, "path", path)
		return defaultConfig()
	}

	slog.Info("Loaded config from file", "path", path)
	return cfg
}

func (c *Config) videoDelay() time.Duration {
	return time.Duration(c.VideoDelayMs) * time.Millisecond
}

func (c *Config) threadPageDelay() time.Duration {
	return time.Duration(c.ThreadPageDelayMs) * time.Millisecond
}

func (c *Config) replyPageDelay() time.Duration {
	return time.Duration(c.ReplyPageDelayMs) * time.Millisecond
}
