package tagger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"FlowTally/internal/config"
	"FlowTally/internal/factory"
	"FlowTally/internal/model"
)

func init() {
	factory.Register("csv", func(cfg *config.Config) (model.Writer, error) {
		return NewCSVWriter(cfg.Output), nil
	})
}

// CSVWriter writes the two tallies to their CSV report files. The tag file
// and the port/protocol file are written independently: a failure on one
// never prevents the attempt on the other.
type CSVWriter struct {
	tagPath  string
	portPath string
}

// NewCSVWriter creates a writer for the configured output paths.
func NewCSVWriter(cfg config.OutputConfig) *CSVWriter {
	return &CSVWriter{tagPath: cfg.TagCounts, portPath: cfg.PortProtocolCounts}
}

// Write persists both tallies, replacing any pre-existing output files.
func (w *CSVWriter) Write(report *model.Report) error {
	var errs []error

	if err := w.writeTagCounts(report.Tags); err != nil {
		log.Errorf("failed to write tag counts to '%s': %v", w.tagPath, err)
		errs = append(errs, err)
	}
	if err := w.writePortCounts(report.Ports); err != nil {
		log.Errorf("failed to write port/protocol counts to '%s': %v", w.portPath, err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (w *CSVWriter) writeTagCounts(tags *model.TagCounts) error {
	rows := [][]string{{"Tag", "Count"}}
	for _, item := range tags.Items() {
		rows = append(rows, []string{item.Tag, strconv.FormatUint(item.Count, 10)})
	}
	return writeCSVFile(w.tagPath, rows)
}

func (w *CSVWriter) writePortCounts(ports *model.PortProtocolCounts) error {
	rows := [][]string{{"Port", "Protocol", "Count"}}
	for _, item := range ports.Items() {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(item.Key.Port), 10),
			item.Key.Protocol,
			strconv.FormatUint(item.Count, 10),
		})
	}
	return writeCSVFile(w.portPath, rows)
}

// writeCSVFile removes any stale output at the target path and writes the
// rows fresh.
func writeCSVFile(filePath string, rows [][]string) error {
	if _, err := os.Stat(filePath); err == nil {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("failed to delete old output file: %w", err)
		}
		log.Infof("deleted old output file '%s'", filePath)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
