// Package config manages the user-level CLI state: named parameter profiles
// saved under the home directory so repeat runs skip the interactive prompts.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is a saved set of scenario parameters
type Profile struct {
	Name       string                 `yaml:"name"`
	Scenario   string                 `yaml:"scenario"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// Config holds the saved profiles
type Config struct {
	Profiles []Profile `yaml:"profiles"`
	Selected string    `yaml:"selected,omitempty"`
}

// LoadProfiles loads profile configurations from the default location
func LoadProfiles() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".samsim-ew", "profiles.yaml")
	return LoadProfilesFromFile(configPath)
}

// LoadProfilesFromFile loads profile configurations from a specific file
func LoadProfilesFromFile(path string) (*Config, error) {
	// If file doesn't exist, return an empty config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveProfiles saves the profile configuration
func SaveProfiles(config *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".samsim-ew")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "profiles.yaml")
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Find returns the named profile, or nil when it does not exist
func (c *Config) Find(name string) *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}
