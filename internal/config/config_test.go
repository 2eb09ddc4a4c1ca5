package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Input.LookupTable != DefaultLookupTablePath {
		t.Errorf("Expected default lookup table path, got %q", cfg.Input.LookupTable)
	}
	if cfg.Input.FlowLog != DefaultFlowLogPath {
		t.Errorf("Expected default flow log path, got %q", cfg.Input.FlowLog)
	}
	if cfg.Output.TagCounts != DefaultTagOutputPath {
		t.Errorf("Expected default tag output path, got %q", cfg.Output.TagCounts)
	}
	if cfg.Output.PortProtocolCounts != DefaultPortOutputPath {
		t.Errorf("Expected default port output path, got %q", cfg.Output.PortProtocolCounts)
	}
	if len(cfg.Writers.Types) != 1 || cfg.Writers.Types[0] != "csv" {
		t.Errorf("Expected default writers [csv], got %v", cfg.Writers.Types)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadConfig(t *testing.T) {
	content := `
log_level: debug
input:
  lookup_table: /data/lookup.csv
  flow_log: /data/flow.log
writers:
  types: ["csv", "clickhouse"]
clickhouse:
  host: ch.internal
  port: 9000
  database: flows
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.Input.LookupTable != "/data/lookup.csv" {
		t.Errorf("Unexpected lookup table path: %q", cfg.Input.LookupTable)
	}
	if len(cfg.Writers.Types) != 2 || cfg.Writers.Types[1] != "clickhouse" {
		t.Errorf("Unexpected writer types: %v", cfg.Writers.Types)
	}
	if cfg.ClickHouse.Host != "ch.internal" || cfg.ClickHouse.Port != 9000 {
		t.Errorf("Unexpected clickhouse config: %+v", cfg.ClickHouse)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Output.TagCounts != DefaultTagOutputPath {
		t.Errorf("Expected default tag output path, got %q", cfg.Output.TagCounts)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("writers: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected an error for malformed YAML")
	}
}
