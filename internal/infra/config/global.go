// Where: internal/infra/config/global.go
// What: Global config load and validation.
// Why: Manage ~/.dockhub/config.yaml consistently and layer env overrides on top.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sciurus/dockhub/internal/constants"
	"github.com/sciurus/dockhub/internal/envutil"
	"github.com/sciurus/dockhub/internal/meta"
	"gopkg.in/yaml.v3"
)

var (
	errBaseURLInvalid = errors.New("base_url must be an absolute http(s) URL")
	errOrgRequired    = errors.New("org is required")
	errOutputInvalid  = errors.New("output must be json or yaml")
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// GlobalConfig represents ~/.dockhub/config.yaml.
type GlobalConfig struct {
	BaseURL string      `yaml:"base_url,omitempty"`
	Org     string      `yaml:"org,omitempty"`
	Timeout string      `yaml:"timeout,omitempty"`
	Output  string      `yaml:"output,omitempty"`
	Audit   AuditConfig `yaml:"audit,omitempty"`
}

// AuditConfig selects where mutation records are written. Both sinks are
// optional; an empty table and bucket disables auditing.
type AuditConfig struct {
	Table    string `yaml:"table,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// Enabled reports whether at least one audit sink is configured.
func (a AuditConfig) Enabled() bool {
	return strings.TrimSpace(a.Table) != "" || strings.TrimSpace(a.Bucket) != ""
}

// DefaultGlobalConfig returns the built-in settings.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		BaseURL: meta.DefaultBaseURL,
		Org:     meta.DefaultOrg,
		Output:  OutputJSON,
	}
}

// LoadGlobalConfig reads path over the defaults. A missing file yields the
// defaults unchanged.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	cfg := DefaultGlobalConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return GlobalConfig{}, fmt.Errorf("read global config: %w", err)
	}

	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("decode global config: %w", err)
	}
	return cfg, nil
}

// WithEnv applies DH_BASE_URL and DH_ORG when set.
func (c GlobalConfig) WithEnv(getenv envutil.Getenv) GlobalConfig {
	if v := envutil.Trimmed(getenv, constants.EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := envutil.Trimmed(getenv, constants.EnvOrg); v != "" {
		c.Org = v
	}
	return c
}

// Validate checks the fields the client depends on.
func (c GlobalConfig) Validate() error {
	parsed, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
		return fmt.Errorf("%w: %q", errBaseURLInvalid, c.BaseURL)
	}
	if strings.TrimSpace(c.Org) == "" {
		return errOrgRequired
	}
	switch c.Output {
	case "", OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: %q", errOutputInvalid, c.Output)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses Timeout. Zero means the transport default.
func (c GlobalConfig) RequestTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", raw)
	}
	return d, nil
}
