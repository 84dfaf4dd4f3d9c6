package varbed

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/carbocation/variantkit"
)

// Reader streams VariantRecords out of a variant BED file, one per line.
type Reader struct {
	path    string
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
	err     error
}

// Open reads a (possibly compressed) variant BED file from disk.
func Open(path string) (*Reader, error) {
	f, err := variantkit.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}

	r := NewReader(f)
	r.path = path
	r.closer = f

	return r, nil
}

// NewReader wraps an already-open stream. Close is a no-op for such readers.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &Reader{scanner: scanner}
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}

	return r.scanner.Err()
}

// Line is the 1-based number of the most recently consumed line.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next record, or nil once the input is exhausted or a line
// fails to parse. Check Err to tell the two apart.
func (r *Reader) Read() *VariantRecord {
	for r.err == nil && r.scanner.Scan() {
		r.line++

		data := r.scanner.Text()
		if strings.TrimSpace(data) == "" || strings.HasPrefix(data, "#") {
			continue
		}

		rec, err := ParseLine(data)
		if err != nil {
			r.err = &LineError{Path: r.path, Line: r.line, Err: err}
			return nil
		}

		return &rec
	}

	return nil
}

// Skip clears a line-level parse error so that reading can continue with the
// following line.
func (r *Reader) Skip() {
	if _, ok := r.err.(*LineError); ok {
		r.err = nil
	}
}

// ReadAll loads every record from path. By default the first malformed line
// aborts the read; with skipMalformed, such lines are logged and dropped.
func ReadAll(path string, skipMalformed bool) ([]VariantRecord, error) {
	rdr, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()

	return readAll(rdr, skipMalformed)
}

func readAll(rdr *Reader, skipMalformed bool) ([]VariantRecord, error) {
	out := make([]VariantRecord, 0)
	skipped := 0
	for {
		rec := rdr.Read()
		if rec != nil {
			out = append(out, *rec)
			continue
		}

		err := rdr.Err()
		if err == nil {
			break
		}

		if _, isLineErr := err.(*LineError); skipMalformed && isLineErr {
			log.Println("Skipping", err)
			skipped++
			rdr.Skip()
			continue
		}

		return nil, err
	}

	if skipped > 0 {
		log.Printf("Skipped %d malformed variant lines\n", skipped)
	}

	return out, nil
}

// ExternalIDs lists the external identifier of every record, in file order.
func ExternalIDs(records []VariantRecord) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ExternalID)
	}
	return out
}
