// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Topic sources
	TopicFile string `json:"topic_file,omitempty"` // Path to a text file holding the topic material
	TopicURL  string `json:"topic_url,omitempty"`  // URL to fetch topic material from

	// Generation
	Strategy         string `json:"strategy,omitempty"`          // Force a generation strategy
	SlideCount       int    `json:"slide_count,omitempty"`       // Requested content slide count; 0 defers to classification
	IncludeImages    bool   `json:"include_images,omitempty"`    // Attach image enhancements to slides
	ImageConsistency string `json:"image_consistency,omitempty"` // loose, medium or strict

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ServerAddr  string `json:"server_addr,omitempty"`  // Listen address for serve mode
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TopicFile != "" && c.TopicURL != "" {
		return fmt.Errorf("config error: 'topic_file' and 'topic_url' are mutually exclusive")
	}

	if c.SlideCount < 0 {
		return fmt.Errorf("config error: 'slide_count' must be non-negative")
	}

	switch c.ImageConsistency {
	case "", "loose", "medium", "strict":
	default:
		return fmt.Errorf("config error: 'image_consistency' must be loose, medium or strict")
	}

	if c.TopicFile != "" {
		if _, err := os.Stat(c.TopicFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: topic file not found: %s", c.TopicFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TopicFile == "" {
		result.TopicFile = defaults.TopicFile
	}
	if result.TopicURL == "" {
		result.TopicURL = defaults.TopicURL
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.ImageConsistency == "" {
		result.ImageConsistency = defaults.ImageConsistency
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}

	if result.SlideCount == 0 {
		result.SlideCount = defaults.SlideCount
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
