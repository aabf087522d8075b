package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Values set here override the environment.
type YAMLConfig struct {
	Site      SiteConfig      `yaml:"site"`
	Inference InferenceConfig `yaml:"inference"`
}

// SiteConfig overrides the page branding.
type SiteConfig struct {
	Title  string `yaml:"title,omitempty"`
	Footer string `yaml:"footer,omitempty"`
}

// InferenceConfig overrides the inference provider settings.
type InferenceConfig struct {
	Provider      string `yaml:"provider,omitempty"`
	Model         string `yaml:"model,omitempty"`
	BaseURL       string `yaml:"base_url,omitempty"`
	CredentialEnv string `yaml:"credential_env,omitempty"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply copies every non-empty value onto cfg.
func (y *YAMLConfig) Apply(cfg *Config) {
	if y == nil {
		return
	}
	setIf(&cfg.SiteTitle, y.Site.Title)
	setIf(&cfg.SiteFooter, y.Site.Footer)
	setIf(&cfg.Provider, strings.ToLower(y.Inference.Provider))
	setIf(&cfg.Model, y.Inference.Model)
	setIf(&cfg.ProviderURL, y.Inference.BaseURL)
	setIf(&cfg.CredentialEnv, y.Inference.CredentialEnv)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
