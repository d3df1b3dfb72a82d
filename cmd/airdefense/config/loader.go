package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*ScenarioConfig, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Start from the defaults so sparse files stay valid
	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads config from file or returns default, with environment overrides
func LoadConfigOrDefault(path string) (*ScenarioConfig, error) {
	var config *ScenarioConfig
	var err error

	if path != "" {
		config, err = LoadConfig(path)
		if err != nil {
			// Log error but continue with default
			fmt.Printf("Warning: Could not load config from %s: %v\n", path, err)
			config = nil
		}
	}

	// Try default locations if no config loaded yet
	if config == nil {
		defaultPaths := []string{
			"config.yaml",
			"airdefense.yaml",
			filepath.Join("cmd", "airdefense", "config.yaml"),
		}

		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				config, err = LoadConfig(p)
				if err == nil {
					fmt.Printf("Loaded config from: %s\n", p)
					break
				}
			}
		}
	}

	// Use default config if still no config loaded
	if config == nil {
		config = GetDefaultConfig()
	}

	// Always apply environment variable overrides
	MergeWithEnvironment(config)

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *ScenarioConfig, path string) error {
	// Validate before saving
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// MergeWithEnvironment merges config with environment variables
func MergeWithEnvironment(config *ScenarioConfig) {
	if tickInterval := os.Getenv("SAMSIM_TICK_INTERVAL"); tickInterval != "" {
		if duration, err := time.ParseDuration(tickInterval); err == nil && duration > 0 {
			config.Scenario.TickInterval = duration
		}
	}

	if duration := os.Getenv("SAMSIM_DURATION"); duration != "" {
		if d, err := time.ParseDuration(duration); err == nil && d > 0 {
			config.Scenario.Duration = d
		}
	}

	if seed := os.Getenv("SAMSIM_SEED"); seed != "" {
		if s, err := strconv.ParseInt(seed, 10, 64); err == nil {
			config.Scenario.Seed = s
		}
	}

	if numStrikers := os.Getenv("SAMSIM_NUM_STRIKERS"); numStrikers != "" {
		if count, err := strconv.Atoi(numStrikers); err == nil && count > 0 {
			config.Strike.NumStrikers = count
		}
	}

	if escort := os.Getenv("SAMSIM_ESCORT_JAMMER"); escort != "" {
		if enable, err := strconv.ParseBool(escort); err == nil {
			config.Strike.EscortJammer = enable
		}
	}

	if speed := os.Getenv("SAMSIM_INGRESS_SPEED"); speed != "" {
		if s, err := strconv.ParseFloat(speed, 64); err == nil && s > 0 {
			config.Strike.IngressSpeedMS = s
		}
	}

	// Override logging level
	if logLevel := os.Getenv("SAMSIM_LOG_LEVEL"); logLevel != "" {
		validLevels := []string{"debug", "info", "warn", "error"}
		for _, valid := range validLevels {
			if strings.ToLower(logLevel) == valid {
				config.Logging.ConsoleLevel = valid
				break
			}
		}
	}

	if showSnapshots := os.Getenv("SAMSIM_SHOW_SNAPSHOTS"); showSnapshots != "" {
		if enable, err := strconv.ParseBool(showSnapshots); err == nil {
			config.Logging.ShowSnapshots = enable
		}
	}
}
