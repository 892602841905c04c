package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Defaults.MaxConcurrent != 5 {
		t.Errorf("MaxConcurrent = %d, want 5", cfg.Defaults.MaxConcurrent)
	}
	if cfg.Defaults.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want json", cfg.Defaults.OutputFormat)
	}
	if cfg.Defaults.StateFile != ".swarm_state.json" {
		t.Errorf("StateFile = %q, want .swarm_state.json", cfg.Defaults.StateFile)
	}
	if cfg.Anthropic.UseAPI {
		t.Error("UseAPI should default to false")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
defaults:
  max_concurrent: 3
  state_file: custom_state.json
anthropic:
  use_api: true
  model: claude-sonnet-4
aws:
  bedrock: true
  region: us-west-2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Defaults.MaxConcurrent != 3 {
		t.Errorf("MaxConcurrent = %d, want 3", cfg.Defaults.MaxConcurrent)
	}
	if cfg.Defaults.StateFile != "custom_state.json" {
		t.Errorf("StateFile = %q", cfg.Defaults.StateFile)
	}
	// Unset keys keep their defaults.
	if cfg.Defaults.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want the default", cfg.Defaults.OutputFormat)
	}
	if !cfg.Anthropic.UseAPI {
		t.Error("UseAPI not loaded")
	}
	if cfg.Anthropic.Model != "claude-sonnet-4" {
		t.Errorf("Model = %q", cfg.Anthropic.Model)
	}
	if !cfg.AWS.Bedrock || cfg.AWS.Region != "us-west-2" {
		t.Errorf("AWS config not loaded: %+v", cfg.AWS)
	}
}

func TestLoadFromPath_ExpandsAPIKeyEnvRef(t *testing.T) {
	t.Setenv("TEST_SWARMIE_KEY", "sk-ant-test-key-1234567890")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "anthropic:\n  api_key: ${TEST_SWARMIE_KEY}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-ant-test-key-1234567890" {
		t.Errorf("APIKey = %q, want the expanded env value", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPath_MissingFileErrors(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
