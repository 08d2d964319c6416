// Package config provides YAML configuration loading for the editor
// service.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/staging"
)

// Duration decodes Go duration strings ("15m", "1h30m") from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)

	return nil
}

// Config is the service configuration file.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	UploadEndpoint string `yaml:"upload_endpoint"`
	LookupEndpoint string `yaml:"lookup_endpoint"`

	Redis struct {
		Addr     string   `yaml:"addr"`
		CacheTTL Duration `yaml:"cache_ttl"`
	} `yaml:"redis"`

	// Uploads overrides the per-type staging policies. Types not listed
	// keep their defaults.
	Uploads map[string]staging.Policy `yaml:"uploads"`
}

// Load reads a configuration file. A missing path yields the zero config,
// so every setting falls back to its default.
func Load(filepath string) (*Config, error) {
	var config Config

	if filepath == "" {
		return &config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filepath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return &config, nil
}

// UploadPolicies merges configured overrides over the default staging
// policies.
func (c *Config) UploadPolicies() map[models.UploadType]staging.Policy {
	policies := staging.DefaultPolicies()

	for name, policy := range c.Uploads {
		uploadType := models.UploadType(name)
		if _, ok := policies[uploadType]; !ok {
			continue
		}

		policies[uploadType] = policy
	}

	return policies
}
