package lookup

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"FlowTally/internal/model"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("lookup")

// Table maps a (port, protocol) key to the tags defined for it. A key may
// carry several tags, and the same tag may appear more than once if the
// source file repeats it. Built once by Load, read-only afterward.
type Table struct {
	entries map[model.LookupKey][]string
}

// NewTable creates an empty lookup table.
func NewTable() *Table {
	return &Table{entries: make(map[model.LookupKey][]string)}
}

// Tags returns the tags stored for a key, or nil if none exist.
func (t *Table) Tags(key model.LookupKey) []string {
	return t.entries[key]
}

// Len returns the number of distinct keys in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Add appends a tag to the key's tag list, creating the list on first use.
func (t *Table) Add(key model.LookupKey, tag string) {
	t.entries[key] = append(t.entries[key], tag)
}

// Load reads a three-column CSV (port, protocol, tag) and builds the lookup
// table. Rows that do not have exactly three fields, a digit-string port
// that fits in 16 bits, and a tcp/udp protocol are skipped. Tags are
// lowercased before storage. If the file cannot be opened the failure is
// logged and an empty table is returned, so the rest of the run proceeds
// treating every record as untagged.
func Load(filePath string) *Table {
	table := NewTable()

	file, err := os.Open(filePath)
	if err != nil {
		log.Errorf("failed to open lookup table '%s': %v", filePath, err)
		return table
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row is skipped like any other rejected row.
			log.Warningf("skipping unparseable row in '%s': %v", filePath, err)
			continue
		}

		key, tag, ok := parseRow(row)
		if !ok {
			log.Debugf("skipping invalid lookup row: %v", row)
			continue
		}
		table.Add(key, tag)
	}

	log.Infof("loaded %d lookup keys from '%s'", table.Len(), filePath)
	return table
}

// parseRow validates a single lookup row and returns the derived key and
// lowercased tag.
func parseRow(row []string) (model.LookupKey, string, bool) {
	if len(row) != 3 {
		return model.LookupKey{}, "", false
	}

	port, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 16)
	if err != nil {
		return model.LookupKey{}, "", false
	}

	protocol := strings.ToLower(strings.TrimSpace(row[1]))
	if protocol != "tcp" && protocol != "udp" {
		return model.LookupKey{}, "", false
	}

	key := model.LookupKey{Port: uint16(port), Protocol: protocol}
	return key, strings.ToLower(row[2]), true
}
