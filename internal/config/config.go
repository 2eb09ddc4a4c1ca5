package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default file names used when neither the config file nor the command line
// provides a path.
const (
	DefaultLookupTablePath = "lookup_table.csv"
	DefaultFlowLogPath     = "flow.log"
	DefaultTagOutputPath   = "tag_counts_output.csv"
	DefaultPortOutputPath  = "port_protocol_counts_output.csv"
)

// InputConfig holds the paths of the two input files.
type InputConfig struct {
	LookupTable string `yaml:"lookup_table"`
	FlowLog     string `yaml:"flow_log"`
}

// OutputConfig holds the paths of the two CSV report files.
type OutputConfig struct {
	TagCounts          string `yaml:"tag_counts"`
	PortProtocolCounts string `yaml:"port_protocol_counts"`
}

// WriterConfig selects which writers are built for a run.
type WriterConfig struct {
	Types []string `yaml:"types"`
}

// ClickHouseConfig holds the connection settings for the ClickHouse writer.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SMTPConfig holds the settings for the email run-summary notification.
type SMTPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	LogLevel   string           `yaml:"log_level"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Writers    WriterConfig     `yaml:"writers"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	SMTP       SMTPConfig       `yaml:"smtp"`
}

// Default returns a Config populated with the built-in defaults: CSV output
// only, info-level logging, and the conventional file names.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Input: InputConfig{
			LookupTable: DefaultLookupTablePath,
			FlowLog:     DefaultFlowLogPath,
		},
		Output: OutputConfig{
			TagCounts:          DefaultTagOutputPath,
			PortProtocolCounts: DefaultPortOutputPath,
		},
		Writers: WriterConfig{Types: []string{"csv"}},
	}
}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct. Fields absent from the file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return cfg, nil
}
