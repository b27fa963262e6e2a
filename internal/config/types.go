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

// Package config types define the configuration structures used throughout
// sirseer-audit. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for sirseer-audit.
type Config struct {
	GitHub        GitHubConfig         `yaml:"github"`
	Defaults      DefaultsConfig       `yaml:"defaults"`
	Organizations map[string]OrgConfig `yaml:"organizations"`
	Logging       LoggingConfig        `yaml:"logging"`
}

// GitHubConfig contains the App identity and API endpoint. The endpoint is
// configurable for GitHub Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint    string `yaml:"api_endpoint"`
	AppID          string `yaml:"app_id"`
	InstallationID int64  `yaml:"installation_id"`
	PrivateKeyPath string `yaml:"private_key_path"`
}

// DefaultsConfig contains default settings that apply to all export
// operations unless overridden by organization-specific settings or
// command-line flags.
type DefaultsConfig struct {
	PageSize       int    `yaml:"page_size"`
	EnrichGroup    int    `yaml:"enrich_group"`
	EnrichDelayMS  int    `yaml:"enrich_delay_ms"`
	RequestsPerSec int    `yaml:"requests_per_sec"`
	StateDir       string `yaml:"state_dir"`
}

// EnrichDelay returns the inter-group pacing delay as a duration.
func (d DefaultsConfig) EnrichDelay() time.Duration {
	return time.Duration(d.EnrichDelayMS) * time.Millisecond
}

// OrgConfig contains organization-specific overrides. Useful when one
// organization's teams or repositories are large enough to need a smaller
// enrichment group.
type OrgConfig struct {
	PageSize    int `yaml:"page_size"`
	EnrichGroup int `yaml:"enrich_group"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
		},
		Defaults: DefaultsConfig{
			PageSize:       100,
			EnrichGroup:    5,
			EnrichDelayMS:  100,
			RequestsPerSec: 10,
			StateDir:       "~/.sirseer/audit",
		},
		Organizations: make(map[string]OrgConfig),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
