// Package config handles configuration loading for swarmie. It supports
// XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for swarmie.
type Config struct {
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	AWS       AWSConfig       `mapstructure:"aws"`
}

// DefaultsConfig holds default values for swarm runs.
type DefaultsConfig struct {
	MaxConcurrent int    `mapstructure:"max_concurrent"`
	OutputFormat  string `mapstructure:"output_format"`
	StateFile     string `mapstructure:"state_file"`
}

// AnthropicConfig holds Anthropic API settings for the direct API
// backend. UseAPI switches invocations from the claude CLI subprocess
// to the API.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	UseAPI bool   `mapstructure:"use_api"`
	Model  string `mapstructure:"model"`
}

// AWSConfig holds AWS Bedrock transport settings.
type AWSConfig struct {
	Bedrock bool   `mapstructure:"bedrock"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, SWARMIE_USE_API)
// 2. Project config (.swarmie.yaml in current directory or parent)
// 3. User config (~/.config/swarmie/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.use_api", "SWARMIE_USE_API")
	v.BindEnv("aws.region", "AWS_REGION")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.max_concurrent", 5)
	v.SetDefault("defaults.output_format", "json")
	v.SetDefault("defaults.state_file", ".swarm_state.json")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.use_api", false)
	v.SetDefault("anthropic.model", "")

	v.SetDefault("aws.bedrock", false)
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")
}

// getUserConfigDir returns the XDG config directory for swarmie.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "swarmie")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "swarmie")
	}
	return filepath.Join(home, ".config", "swarmie")
}

// findProjectConfig searches for .swarmie.yaml in the current directory
// and its parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".swarmie.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			MaxConcurrent: 5,
			OutputFormat:  "json",
			StateFile:     ".swarm_state.json",
		},
	}
}
