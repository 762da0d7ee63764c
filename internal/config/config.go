package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides (ZION_API_BASE -> api_base).
const EnvPrefix = "ZION_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ZION_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("api_base is required")
	}
	if u, err := url.Parse(c.APIBase); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base %q: must be an absolute URL", c.APIBase)
	}
	if c.StreamURL == "" {
		return fmt.Errorf("stream_url is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.MessageTTL <= 0 {
		return fmt.Errorf("message_ttl must be positive")
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("progress_interval must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative")
	}
	if c.MobileBreakpoint < 0 {
		return fmt.Errorf("mobile_breakpoint must be non-negative")
	}
	if c.SermonLimit <= 0 || c.TestimonyLimit <= 0 || c.NewsLimit <= 0 {
		return fmt.Errorf("sermon_limit, testimony_limit and news_limit must be positive")
	}
	return nil
}
