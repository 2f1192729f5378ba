package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Gemini struct {
		APIKey    string `yaml:"api_key"`
		ModelName string `yaml:"model_name"`
	} `yaml:"gemini"`

	Classifier struct {
		// Offline forces the synthetic classifier even when an API key is
		// configured. An empty API key also selects offline mode.
		Offline bool `yaml:"offline"`
		// EmulatedLatencyMS is the fake network delay of the offline
		// classifier, in milliseconds. 0 selects the default (~800ms).
		EmulatedLatencyMS int `yaml:"emulated_latency_ms"`
	} `yaml:"classifier"`

	Feed struct {
		// StaggerDelayMS is the pause between batch submission
		// initiations, in milliseconds. 0 selects the default (500ms).
		StaggerDelayMS int `yaml:"stagger_delay_ms"`
		// SeriesWindow is the trailing sentiment series length.
		SeriesWindow int `yaml:"series_window"`
	} `yaml:"feed"`
}

// LoadConfig loads configuration from YAML file
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Gemini.ModelName == "" {
		config.Gemini.ModelName = "gemini-2.5-flash"
	}

	if config.Feed.SeriesWindow == 0 {
		config.Feed.SeriesWindow = 20
	}

	// Expand environment variables in the API key
	config.Gemini.APIKey = os.ExpandEnv(config.Gemini.APIKey)

	return config, nil
}

// EmulatedLatency returns the offline classifier delay as a duration.
func (c *Config) EmulatedLatency() time.Duration {
	return time.Duration(c.Classifier.EmulatedLatencyMS) * time.Millisecond
}

// StaggerDelay returns the batch stagger as a duration.
func (c *Config) StaggerDelay() time.Duration {
	return time.Duration(c.Feed.StaggerDelayMS) * time.Millisecond
}
