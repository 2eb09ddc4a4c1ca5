package model

// LookupKey identifies a (destination port, protocol) combination.
// Protocol is the lowercase name, "tcp" or "udp".
type LookupKey struct {
	Port     uint16
	Protocol string
}

// FlowRecord holds the fields extracted from a single flow-log line.
// It exists only for validation and key derivation and is never persisted.
type FlowRecord struct {
	Version  int
	DstPort  uint16
	Protocol string
	Status   string
}

// Key returns the lookup key derived from the record.
func (r FlowRecord) Key() LookupKey {
	return LookupKey{Port: r.DstPort, Protocol: r.Protocol}
}

// Stats summarizes one aggregation run.
type Stats struct {
	LinesSeen  uint64
	Aggregated uint64
	Skipped    uint64
	Untagged   uint64
}

// Report is the final result of a run: both tallies plus run statistics.
type Report struct {
	Tags  *TagCounts
	Ports *PortProtocolCounts
	Stats Stats
}
