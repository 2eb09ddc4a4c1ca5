package tagger

import (
	"fmt"
	"strconv"
	"strings"

	"FlowTally/internal/lookup"
	"FlowTally/internal/model"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("tagger")

// UntaggedTag is the reserved bucket for valid records whose key has no
// lookup-table entry. It is always present in the final report.
const UntaggedTag = "untagged"

// Positional schema of a version-2 flow-log record.
const (
	fieldCount       = 14
	supportedVersion = 2

	fieldVersion  = 0
	fieldDstPort  = 5
	fieldProtocol = 7
	fieldStatus   = 13
)

// Tagger consumes flow-log lines one at a time, validates each against the
// fixed positional schema, and maintains the two running tallies. A line
// that fails any check is logged and skipped; no input defect aborts a run.
type Tagger struct {
	table    *lookup.Table
	tags     *model.TagCounts
	ports    *model.PortProtocolCounts
	untagged uint64
	stats    model.Stats
}

// New creates a Tagger that classifies records against the given table.
func New(table *lookup.Table) *Tagger {
	return &Tagger{
		table: table,
		tags:  model.NewTagCounts(),
		ports: model.NewPortProtocolCounts(),
	}
}

// Run drains the line channel, classifying every line, and returns the
// finalized report. Lines are consumed strictly in file order.
func (t *Tagger) Run(lines <-chan string) *model.Report {
	for line := range lines {
		t.processLine(line)
	}
	return t.finalize()
}

// processLine validates a single line and updates the tallies. Every
// increment corresponds to exactly one validated line; a rejected line
// contributes nothing.
func (t *Tagger) processLine(line string) {
	t.stats.LinesSeen++

	record, err := parseRecord(line)
	if err != nil {
		log.Warningf("skipping line (%v): %s", err, line)
		t.stats.Skipped++
		return
	}

	key := record.Key()
	t.ports.Add(key, 1)

	tags := t.table.Tags(key)
	if len(tags) > 0 {
		for _, tag := range tags {
			log.Debugf("tag '%s' matched for %d/%s", tag, key.Port, key.Protocol)
			t.tags.Add(tag, 1)
		}
	} else {
		log.Debugf("no tag found for %d/%s", key.Port, key.Protocol)
		t.untagged++
	}
	t.stats.Aggregated++
}

// finalize merges the untagged counter into the tag tally under the
// reserved bucket and returns the report. The bucket is always present,
// even when its count is zero. If the lookup table happened to define a
// literal "untagged" tag, the synthetic count is added to it rather than
// silently overwriting it, and the collision is reported.
func (t *Tagger) finalize() *model.Report {
	if existing, ok := t.tags.Get(UntaggedTag); ok {
		log.Warningf("lookup table defines a literal '%s' tag (%d records); merging %d unmatched records into the same bucket",
			UntaggedTag, existing, t.untagged)
	}
	t.tags.Add(UntaggedTag, t.untagged)
	t.stats.Untagged = t.untagged

	return &model.Report{
		Tags:  t.tags,
		Ports: t.ports,
		Stats: t.stats,
	}
}

// parseRecord splits a line into whitespace-separated fields and validates
// the positional schema: exactly 14 fields, format version 2, a 16-bit
// destination port, protocol number 6 (tcp) or 17 (udp), and status "OK".
func parseRecord(line string) (model.FlowRecord, error) {
	var record model.FlowRecord

	fields := strings.Fields(line)
	if len(fields) != fieldCount {
		return record, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	version, err := strconv.Atoi(fields[fieldVersion])
	if err != nil {
		return record, fmt.Errorf("non-numeric log version '%s'", fields[fieldVersion])
	}
	if version != supportedVersion {
		return record, fmt.Errorf("unsupported log version %d", version)
	}

	port, err := strconv.ParseUint(fields[fieldDstPort], 10, 16)
	if err != nil {
		return record, fmt.Errorf("invalid destination port '%s'", fields[fieldDstPort])
	}

	var protocol string
	switch fields[fieldProtocol] {
	case "6":
		protocol = "tcp"
	case "17":
		protocol = "udp"
	default:
		return record, fmt.Errorf("unsupported protocol '%s'", fields[fieldProtocol])
	}

	if fields[fieldStatus] != "OK" {
		return record, fmt.Errorf("log status not OK: '%s'", fields[fieldStatus])
	}

	record.Version = version
	record.DstPort = uint16(port)
	record.Protocol = protocol
	record.Status = fields[fieldStatus]
	return record, nil
}
