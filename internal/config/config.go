// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sirseer-audit with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Organization-specific configuration
//  4. Global configuration file
//  5. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envOverrides is the environment surface, parsed as a struct so the
// variable names live in one place.
type envOverrides struct {
	APIEndpoint    string `env:"SIRSEER_AUDIT_API_ENDPOINT"`
	AppID          string `env:"GITHUB_APP_ID"`
	InstallationID int64  `env:"GITHUB_APP_INSTALLATION_ID"`
	PrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY"`
	StateDir       string `env:"SIRSEER_AUDIT_STATE_DIR"`
	LogLevel       string `env:"SIRSEER_AUDIT_LOG_LEVEL"`
}

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-audit.yaml (current directory)
//   - .sirseer-audit.yml (current directory)
//   - ~/.sirseer/audit.yaml
//   - ~/.sirseer/audit.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~) is performed on directory paths.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".sirseer-audit.yaml",
			".sirseer-audit.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "audit.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "audit.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Defaults.StateDir = expandPath(cfg.Defaults.StateDir)
	cfg.GitHub.PrivateKeyPath = expandPath(cfg.GitHub.PrivateKeyPath)

	return cfg, nil
}

// LoadConfigForOrg loads configuration and applies organization-specific
// overrides, used when one organization needs special handling (e.g. a
// smaller enrichment group for an organization with very large teams).
func LoadConfigForOrg(configPath, org string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if orgConfig, ok := cfg.Organizations[org]; ok {
		if orgConfig.PageSize > 0 {
			cfg.Defaults.PageSize = orgConfig.PageSize
		}
		if orgConfig.EnrichGroup > 0 {
			cfg.Defaults.EnrichGroup = orgConfig.EnrichGroup
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variables over the loaded file.
func applyEnvOverrides(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if overrides.APIEndpoint != "" {
		cfg.GitHub.APIEndpoint = overrides.APIEndpoint
	}
	if overrides.AppID != "" {
		cfg.GitHub.AppID = overrides.AppID
	}
	if overrides.InstallationID != 0 {
		cfg.GitHub.InstallationID = overrides.InstallationID
	}
	if overrides.PrivateKeyPath != "" {
		cfg.GitHub.PrivateKeyPath = overrides.PrivateKeyPath
	}
	if overrides.StateDir != "" {
		cfg.Defaults.StateDir = overrides.StateDir
	}
	if overrides.LogLevel != "" {
		cfg.Logging.Level = overrides.LogLevel
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks that the settings required for authentication are present.
func (c *Config) Validate() error {
	if c.GitHub.AppID == "" {
		return fmt.Errorf("github app ID is required (set github.app_id or GITHUB_APP_ID)")
	}
	if c.GitHub.InstallationID == 0 {
		return fmt.Errorf("installation ID is required (set github.installation_id or GITHUB_APP_INSTALLATION_ID)")
	}
	if c.GitHub.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is required (set github.private_key_path or GITHUB_APP_PRIVATE_KEY)")
	}
	return nil
}
