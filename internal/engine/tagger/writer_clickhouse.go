package tagger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FlowTally/internal/config"
	"FlowTally/internal/factory"
	"FlowTally/internal/model"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func init() {
	factory.Register("clickhouse", func(cfg *config.Config) (model.Writer, error) {
		return NewClickHouseWriter(cfg.ClickHouse)
	})
}

const createTagTableStatement = `
CREATE TABLE IF NOT EXISTS tag_counts (
    RunTime DateTime,
    Tag     String,
    Count   UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(RunTime)
ORDER BY (RunTime, Tag);
`

const createPortTableStatement = `
CREATE TABLE IF NOT EXISTS port_protocol_counts (
    RunTime  DateTime,
    Port     UInt16,
    Protocol String,
    Count    UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(RunTime)
ORDER BY (RunTime, Port, Protocol);
`

// ClickHouseWriter implements the model.Writer interface for ClickHouse,
// exporting both tallies of a run stamped with the run time.
type ClickHouseWriter struct {
	conn driver.Conn
}

// NewClickHouseWriter connects to ClickHouse and ensures both report tables
// exist.
func NewClickHouseWriter(cfg config.ClickHouseConfig) (model.Writer, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	for _, stmt := range []string{createTagTableStatement, createPortTableStatement} {
		if err := conn.Exec(context.Background(), stmt); err != nil {
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}
	log.Info("Successfully connected to ClickHouse and ensured tables exist.")

	return &ClickHouseWriter{conn: conn}, nil
}

func connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: false,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// Write inserts both tallies. The two tables are written independently so
// a failure on one does not block the other.
func (w *ClickHouseWriter) Write(report *model.Report) error {
	runTime := time.Now().UTC()
	var errs []error

	if err := w.writeTags(runTime, report.Tags); err != nil {
		log.Errorf("failed to write tag counts to ClickHouse: %v", err)
		errs = append(errs, err)
	}
	if err := w.writePorts(runTime, report.Ports); err != nil {
		log.Errorf("failed to write port/protocol counts to ClickHouse: %v", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (w *ClickHouseWriter) writeTags(runTime time.Time, tags *model.TagCounts) error {
	batch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO tag_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, item := range tags.Items() {
		if err := batch.Append(runTime, item.Tag, item.Count); err != nil {
			return fmt.Errorf("failed to append tag count to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}
	log.Infof("Wrote %d tag counts to ClickHouse", tags.Len())
	return nil
}

func (w *ClickHouseWriter) writePorts(runTime time.Time, ports *model.PortProtocolCounts) error {
	batch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO port_protocol_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, item := range ports.Items() {
		if err := batch.Append(runTime, item.Key.Port, item.Key.Protocol, item.Count); err != nil {
			return fmt.Errorf("failed to append port count to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}
	log.Infof("Wrote %d port/protocol counts to ClickHouse", ports.Len())
	return nil
}
