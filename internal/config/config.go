package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the graphctl configuration loaded from environment variables
// and an optional profiles file.
type Config struct {
	BaseURL               string        `mapstructure:"base_url"`
	APIKey                string        `mapstructure:"api_key"`
	LogLevel              string        `mapstructure:"log_level"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	// ProfilesFile points at an optional profiles.yaml mapping profile names
	// to service endpoints; Profile selects one of them. A profile's values
	// override base_url/api_key from the environment.
	ProfilesFile string `mapstructure:"profiles_file"`
	Profile      string `mapstructure:"profile"`

	// Headers are extra headers sent on every request, taken from the
	// selected profile.
	Headers map[string]string `mapstructure:"-"`
}

// Profile describes one named service endpoint in profiles.yaml.
type Profile struct {
	BaseURL string            `yaml:"base_url"`
	APIKey  string            `yaml:"api_key"`
	Headers map[string]string `yaml:"headers"`
}

type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads configuration from the environment (with .env support) and
// resolves the selected profile, if any.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("base_url", "http://127.0.0.1:2024")
	v.SetDefault("api_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout_seconds", 120)
	v.SetDefault("profiles_file", "")
	v.SetDefault("profile", "")

	v.SetEnvPrefix("graphrun")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.Profile != "" {
		if err := cfg.applyProfile(); err != nil {
			return nil, err
		}
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url must not be empty")
	}
	return &cfg, nil
}

func (c *Config) applyProfile() error {
	if c.ProfilesFile == "" {
		return fmt.Errorf("profile %q selected but profiles_file is not set", c.Profile)
	}

	raw, err := os.ReadFile(c.ProfilesFile)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}
	var pf profilesFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return fmt.Errorf("parse profiles file: %w", err)
	}

	p, ok := pf.Profiles[c.Profile]
	if !ok {
		return fmt.Errorf("profile %q not found in %s", c.Profile, c.ProfilesFile)
	}
	if p.BaseURL != "" {
		c.BaseURL = p.BaseURL
	}
	if p.APIKey != "" {
		c.APIKey = p.APIKey
	}
	c.Headers = p.Headers
	return nil
}
