package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_Empty(t *testing.T) {
	cfg := &Config{}
	warnings := cfg.Validate()
	if len(warnings) != 0 {
		t.Errorf("empty config should have no warnings, got %v", warnings)
	}
}

func TestValidate_MissingAPIKeyRemoteProvider(t *testing.T) {
	cfg := &Config{
		LLM: LLMConfig{Provider: "anthropic"},
	}
	warnings := cfg.Validate()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "api_key") {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected warning about missing api_key")
	}
}

func TestValidate_LocalProviderNeedsNoKey(t *testing.T) {
	cfg := &Config{
		LLM: LLMConfig{Provider: "ollama"},
	}
	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("local provider without api_key should not warn, got %v", warnings)
	}
}

func TestValidate_InvalidTemperature(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want bool // true = should warn
	}{
		{"zero", 0, false},
		{"normal", 0.7, false},
		{"max", 2.0, false},
		{"negative", -1, true},
		{"too_high", 3.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LLM: LLMConfig{Temperature: tt.temp}}
			warnings := cfg.Validate()
			hasWarn := false
			for _, w := range warnings {
				if strings.Contains(w, "temperature") {
					hasWarn = true
				}
			}
			if hasWarn != tt.want {
				t.Errorf("temperature=%.1f: hasWarn=%v, want=%v", tt.temp, hasWarn, tt.want)
			}
		})
	}
}

func TestValidate_SampleRateRange(t *testing.T) {
	cfg := &Config{Tracing: TracingConfig{SampleRate: 1.5}}
	warnings := cfg.Validate()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "sample_rate") {
			found = true
		}
	}
	if !found {
		t.Error("expected warning about sample_rate")
	}
}

func TestResolveForAgent_NoOverride(t *testing.T) {
	base := LLMConfig{Provider: "ollama", Model: "gemma3:4b"}
	resolved := base.ResolveForAgent("analyst")
	if resolved.Provider != "ollama" || resolved.Model != "gemma3:4b" {
		t.Errorf("resolved = %+v, want base config", resolved)
	}
}

func TestResolveForAgent_PartialOverride(t *testing.T) {
	base := LLMConfig{
		Provider: "ollama",
		Model:    "gemma3:4b",
		BaseURL:  "http://localhost:11434/v1",
		Agents: map[string]LLMAgentOverride{
			"analyst": {Model: "gemma3:12b"},
		},
	}

	analyst := base.ResolveForAgent("analyst")
	if analyst.Model != "gemma3:12b" {
		t.Errorf("analyst model = %q, want override gemma3:12b", analyst.Model)
	}
	if analyst.Provider != "ollama" || analyst.BaseURL != "http://localhost:11434/v1" {
		t.Error("unset override fields should inherit from base")
	}

	creator := base.ResolveForAgent("creator")
	if creator.Model != "gemma3:4b" {
		t.Errorf("creator model = %q, want base gemma3:4b", creator.Model)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "muse.yaml")
	yaml := `
llm:
  provider: ollama
  model: gemma3:4b
  agents:
    analyst:
      model: gemma3:12b
tracing:
  service_name: muse-dev
  sample_rate: 0.5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.ResolveForAgent("analyst").Model != "gemma3:12b" {
		t.Errorf("analyst model override not applied")
	}
	if cfg.Tracing.ServiceName != "muse-dev" {
		t.Errorf("service name = %q", cfg.Tracing.ServiceName)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
