package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGlobalConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultGlobalConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadGlobalConfigOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `org: acme
timeout: 15s
output: yaml
audit:
  table: dockhub-audit
  region: eu-west-1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Org != "acme" || cfg.Output != OutputYAML {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.BaseURL != DefaultGlobalConfig().BaseURL {
		t.Fatalf("base url should keep default, got %q", cfg.BaseURL)
	}
	if !cfg.Audit.Enabled() || cfg.Audit.Region != "eu-west-1" {
		t.Fatalf("unexpected audit config: %+v", cfg.Audit)
	}
	timeout, err := cfg.RequestTimeout()
	if err != nil || timeout.Seconds() != 15 {
		t.Fatalf("timeout = %v, %v", timeout, err)
	}
}

func TestLoadGlobalConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("org: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadGlobalConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestWithEnvOverridesFile(t *testing.T) {
	env := map[string]string{
		"DH_BASE_URL": " http://127.0.0.1:8080/v2 ",
		"DH_ORG":      "other",
	}
	cfg := DefaultGlobalConfig().WithEnv(func(key string) string { return env[key] })
	if cfg.BaseURL != "http://127.0.0.1:8080/v2" || cfg.Org != "other" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GlobalConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*GlobalConfig) {}},
		{name: "relative url", mutate: func(c *GlobalConfig) { c.BaseURL = "/v2" }, wantErr: true},
		{name: "ftp url", mutate: func(c *GlobalConfig) { c.BaseURL = "ftp://hub/v2" }, wantErr: true},
		{name: "blank org", mutate: func(c *GlobalConfig) { c.Org = " " }, wantErr: true},
		{name: "bad output", mutate: func(c *GlobalConfig) { c.Output = "xml" }, wantErr: true},
		{name: "bad timeout", mutate: func(c *GlobalConfig) { c.Timeout = "soon" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *GlobalConfig) { c.Timeout = "-1s" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGlobalConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGlobalConfigPath(t *testing.T) {
	dir := t.TempDir()
	got, err := GlobalConfigPath(func(key string) string {
		if key == "DH_CONFIG_DIR" {
			return dir
		}
		return ""
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "config.yaml"); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}

	prev := userHomeDir
	userHomeDir = func() (string, error) { return "/home/op", nil }
	t.Cleanup(func() { userHomeDir = prev })

	got, err = GlobalConfigPath(func(string) string { return "" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/home/op", ".dockhub", "config.yaml"); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}
