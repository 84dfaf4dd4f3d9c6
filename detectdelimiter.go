package variantkit

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// sniffBytes is how much of a tabular file is inspected to guess its
// delimiter.
const sniffBytes = 64 * 1024

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// NewTabularReader returns a csv.Reader for r. ClinVar and GWAS catalog
// exports are tab-delimited, so a tab in the header line wins; otherwise the
// delimiter is sniffed from the head of the stream.
func NewTabularReader(r io.Reader) *csv.Reader {
	br := bufio.NewReaderSize(r, sniffBytes)
	head, _ := br.Peek(sniffBytes)

	c := csv.NewReader(br)
	c.Comma = tabularDelimiter(head)
	c.LazyQuotes = true
	c.FieldsPerRecord = -1

	return c
}

func tabularDelimiter(head []byte) rune {
	header := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		header = head[:i]
	}
	if bytes.IndexByte(header, '\t') >= 0 {
		return '\t'
	}

	return DetermineDelimiter(bytes.NewReader(head))
}
