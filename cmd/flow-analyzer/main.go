package main

import (
	"errors"
	"flag"
	"os"

	"FlowTally/internal/config"
	"FlowTally/internal/engine/tagger"
	"FlowTally/internal/factory"
	"FlowTally/internal/flowlog"
	"FlowTally/internal/lookup"
	"FlowTally/internal/notification"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("main")

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to the YAML config file")
	lookupFile := flag.String("lookup-file", "", "Lookup table CSV file")
	logFile := flag.String("log-file", "", "Input flow log file")
	tagOutput := flag.String("tag-output", "", "Output file for tag counts")
	portOutput := flag.String("port-output", "", "Output file for port/protocol counts")
	logLevel := flag.String("log-level", "", "Log level (critical, error, warning, notice, info, debug)")
	flag.Parse()

	// 1. Load configuration and apply command-line overrides.
	cfg := loadConfig(*configPath)
	if *lookupFile != "" {
		cfg.Input.LookupTable = *lookupFile
	}
	if *logFile != "" {
		cfg.Input.FlowLog = *logFile
	}
	if *tagOutput != "" {
		cfg.Output.TagCounts = *tagOutput
	}
	if *portOutput != "" {
		cfg.Output.PortProtocolCounts = *portOutput
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	setupLogging(cfg.LogLevel)

	// 2. Build the writers up front so a misconfigured sink fails before
	// any processing happens.
	writers, err := factory.Create(cfg)
	if err != nil {
		log.Fatalf("Failed to create writers: %v", err)
	}

	// 3. Load the lookup table. A missing table is not fatal: the run
	// proceeds with every record counted as untagged.
	table := lookup.Load(cfg.Input.LookupTable)

	// 4. Stream the flow log through the tagger, one line at a time.
	lines := make(chan string, 1024)
	reader := flowlog.NewReader(cfg.Input.FlowLog)
	go reader.ReadLines(lines)

	report := tagger.New(table).Run(lines)
	log.Infof("processed %d lines: %d aggregated, %d skipped, %d untagged",
		report.Stats.LinesSeen, report.Stats.Aggregated, report.Stats.Skipped, report.Stats.Untagged)

	// 5. Write each output independently; one failed writer never blocks
	// the others.
	for _, writer := range writers {
		if err := writer.Write(report); err != nil {
			log.Errorf("writer failed: %v", err)
		}
	}

	// 6. Optional run-summary notification.
	if cfg.SMTP.Enabled {
		notifier := notification.NewEmailNotifier(cfg.SMTP)
		if err := notifier.SendRunSummary(report); err != nil {
			log.Errorf("failed to send run summary: %v", err)
		}
	}
}

// loadConfig reads the config file. An absent file at the default path just
// means built-in defaults; an explicitly named file that cannot be loaded
// is fatal.
func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
			return config.Default()
		}
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupLogging configures the process-wide leveled logging backend.
func setupLogging(level string) {
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05.000} %{level:.4s} [%{module}] %{message}`)
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), format)
	leveled := logging.AddModuleLevel(backend)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
}
