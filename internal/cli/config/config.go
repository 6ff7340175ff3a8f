package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

const ConfigFileName = "shopctl.json"

// Store represents a storefront endpoint
type Store struct {
	URL   string `json:"url"`
	Alias string `json:"alias"`
}

// Validate checks that the store URL is a usable http(s) base URL
func (s *Store) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("store URL is empty. Please edit %s and add a valid URL", ConfigFileName)
	}
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("store URL %q is not a valid http(s) URL", s.URL)
	}
	return nil
}

// Config represents the CLI configuration file
type Config struct {
	Stores []Store `json:"stores"`
}

// DefaultConfig returns a default configuration with an example store
func DefaultConfig() *Config {
	return &Config{
		Stores: []Store{
			{
				URL:   "",
				Alias: "e.g. production storefront",
			},
		},
	}
}

// FindConfigFile searches for shopctl.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find shopctl.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory", ConfigFileName, currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetStoreByAlias returns a store by its alias
func (c *Config) GetStoreByAlias(alias string) (*Store, error) {
	for _, store := range c.Stores {
		if store.Alias == alias {
			return &store, nil
		}
	}
	return nil, fmt.Errorf("store with alias '%s' not found", alias)
}

// GetDefaultStore returns the first store in the list
func (c *Config) GetDefaultStore() (*Store, error) {
	if len(c.Stores) == 0 {
		return nil, fmt.Errorf("no stores configured in %s", ConfigFileName)
	}
	return &c.Stores[0], nil
}
