// Package gff3 extracts one gene's features from a GFF3 annotation and
// converts them to BED.
package gff3

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Map columns in the GFF3 file to their positions
const (
	SeqID int = iota
	Source
	Type
	Start
	End
	Score
	Strand
	Phase
	Attributes
)

type Feature struct {
	SeqID      string
	Source     string
	Type       string // E.g., gene, exon, CDS
	Start      int    // 1-based, inclusive
	End        int    // 1-based, inclusive
	Score      string
	Strand     string
	Phase      string
	Attributes string
}

// GeneKey is the attribute fragment that marks lines belonging to gene.
func GeneKey(gene string) string {
	return "gene_name=" + gene + ";"
}

// FilterGene copies every line of r that mentions gene into w and returns the
// number of lines kept.
func FilterGene(r io.Reader, gene string, w io.Writer) (int, error) {
	key := GeneKey(gene)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	kept := 0
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, key) {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return kept, err
		}
		kept++
	}

	return kept, scanner.Err()
}

func ParseFeature(line string) (Feature, error) {
	cols := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(cols) != Attributes+1 {
		return Feature{}, fmt.Errorf("expected %d GFF3 columns, found %d", Attributes+1, len(cols))
	}

	f := Feature{
		SeqID:      cols[SeqID],
		Source:     cols[Source],
		Type:       cols[Type],
		Score:      cols[Score],
		Strand:     cols[Strand],
		Phase:      cols[Phase],
		Attributes: cols[Attributes],
	}

	var err error
	if f.Start, err = strconv.Atoi(cols[Start]); err != nil {
		return Feature{}, fmt.Errorf("start: %w", err)
	}
	if f.End, err = strconv.Atoi(cols[End]); err != nil {
		return Feature{}, fmt.Errorf("end: %w", err)
	}

	return f, nil
}

// ReadFeatures parses every non-comment line of r.
func ReadFeatures(r io.Reader) ([]Feature, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	out := make([]Feature, 0)
	for i := 1; scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		f, err := ParseFeature(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		out = append(out, f)
	}

	return out, scanner.Err()
}

// WriteBED writes features of the given type as 6-column BED (name holds the
// GFF3 attributes). Coordinates are converted to BED's 0-based, half-open
// convention.
func WriteBED(w io.Writer, features []Feature, featureType string) (int, error) {
	bw := bufio.NewWriter(w)

	n := 0
	for _, f := range features {
		if f.Type != featureType {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%s\t.\t%s\n", f.SeqID, f.Start-1, f.End, f.Attributes, f.Strand); err != nil {
			return n, err
		}
		n++
	}

	return n, bw.Flush()
}
