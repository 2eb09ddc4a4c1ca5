package flowlog

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("flowlog")

// Reader streams trimmed, non-blank lines from a flow-log file one at a
// time, so the file is never loaded into memory as a whole.
type Reader struct {
	filePath string
}

// NewReader creates a reader for the given file path. The file is not
// touched until ReadLines is called.
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

// ReadLines reads the file line by line and sends each trimmed non-blank
// line to the provided channel, closing it when the file is exhausted.
// A missing or unreadable file is logged and yields an empty sequence
// rather than an error; an I/O failure mid-file terminates the sequence
// early, leaving already-delivered lines valid.
func (r *Reader) ReadLines(out chan<- string) {
	defer close(out)

	file, err := os.Open(r.filePath)
	if err != nil {
		log.Errorf("failed to open flow log '%s': %v", r.filePath, err)
		return
	}
	defer file.Close()

	if err := streamLines(file, out); err != nil {
		log.Errorf("error reading flow log '%s': %v", r.filePath, err)
	}
}

// streamLines delivers trimmed non-blank lines from r until EOF or a read
// error. Lines of any length are handled; a record no delimiter ever
// terminates is still bounded by the file itself.
func streamLines(r io.Reader, out chan<- string) error {
	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if line := strings.TrimSpace(raw); line != "" {
			out <- line
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
