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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Point HOME at an empty directory so no real user config interferes.
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with defaults: %v", err)
	}
	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("api endpoint = %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.PageSize != 100 || cfg.Defaults.EnrichGroup != 5 {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Defaults.EnrichDelay() != 100*time.Millisecond {
		t.Errorf("enrich delay = %v, want 100ms", cfg.Defaults.EnrichDelay())
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
github:
  api_endpoint: https://github.example.com/api/v3
  app_id: "4242"
  installation_id: 99
  private_key_path: /etc/sirseer/app.pem
defaults:
  page_size: 25
  enrich_group: 3
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GitHub.APIEndpoint != "https://github.example.com/api/v3" {
		t.Errorf("api endpoint = %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.AppID != "4242" || cfg.GitHub.InstallationID != 99 {
		t.Errorf("app identity not loaded: %+v", cfg.GitHub)
	}
	if cfg.Defaults.PageSize != 25 || cfg.Defaults.EnrichGroup != 3 {
		t.Errorf("defaults not overridden: %+v", cfg.Defaults)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Defaults.EnrichDelayMS != 100 {
		t.Errorf("enrich delay lost its default: %d", cfg.Defaults.EnrichDelayMS)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
github:
  app_id: "1111"
`)
	t.Setenv("GITHUB_APP_ID", "2222")
	t.Setenv("GITHUB_APP_INSTALLATION_ID", "777")
	t.Setenv("SIRSEER_AUDIT_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GitHub.AppID != "2222" {
		t.Errorf("env did not override file: app ID = %q", cfg.GitHub.AppID)
	}
	if cfg.GitHub.InstallationID != 777 {
		t.Errorf("installation ID = %d, want 777", cfg.GitHub.InstallationID)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for explicitly specified missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "github: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadConfigForOrg_AppliesOverrides(t *testing.T) {
	path := writeConfig(t, `
defaults:
  page_size: 100
  enrich_group: 5
organizations:
  big-org:
    page_size: 20
    enrich_group: 2
`)

	cfg, err := LoadConfigForOrg(path, "big-org")
	if err != nil {
		t.Fatalf("LoadConfigForOrg: %v", err)
	}
	if cfg.Defaults.PageSize != 20 || cfg.Defaults.EnrichGroup != 2 {
		t.Errorf("org overrides not applied: %+v", cfg.Defaults)
	}

	other, err := LoadConfigForOrg(path, "small-org")
	if err != nil {
		t.Fatalf("LoadConfigForOrg: %v", err)
	}
	if other.Defaults.PageSize != 100 {
		t.Errorf("unrelated org picked up overrides: %+v", other.Defaults)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty app identity should fail validation")
	}

	cfg.GitHub.AppID = "42"
	cfg.GitHub.InstallationID = 7
	cfg.GitHub.PrivateKeyPath = "/tmp/key.pem"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete config rejected: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	if got := expandPath("~/state"); got != filepath.Join(home, "state") {
		t.Errorf("expandPath(~/state) = %q", got)
	}
	if got := expandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("absolute path modified: %q", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("empty path modified: %q", got)
	}
}
