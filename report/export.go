package report

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/variantkit"
	"github.com/carbocation/variantkit/enrich"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// Suffixes appended to the caller's prefix for each artifact.
const (
	SuffixVariantTypePlot     = "_variant_type_distribution.png"
	SuffixAlleleFrequencyPlot = "_af_distribution.png"
	SuffixReport              = "_report.txt"
	SuffixCSV                 = ".csv"
)

type Outputs struct {
	VariantTypePlot     string
	AlleleFrequencyPlot string
	Report              string
	CSV                 string
}

func OutputsFor(prefix string) Outputs {
	return Outputs{
		VariantTypePlot:     variantkit.OutputPath(prefix, SuffixVariantTypePlot),
		AlleleFrequencyPlot: variantkit.OutputPath(prefix, SuffixAlleleFrequencyPlot),
		Report:              variantkit.OutputPath(prefix, SuffixReport),
		CSV:                 variantkit.OutputPath(prefix, SuffixCSV),
	}
}

// ExportRow is the CSV layout of one merged record.
type ExportRow struct {
	Chromosome        string `csv:"chr"`
	Start             string `csv:"start"`
	Stop              string `csv:"stop"`
	AlleleFrequency   string `csv:"allele_frequency"`
	VariantType       string `csv:"variant_type"`
	ExternalID        string `csv:"dbsnp_id"`
	RemoteVariantType string `csv:"dbsnp_variant_type"`
	Significances     string `csv:"significances"`
	Origins           string `csv:"origins"`
	Diseases          string `csv:"diseases"`
}

func NullStringFormatter(n null.String) string {
	if !n.Valid {
		return ""
	}

	return n.String
}

func ExportRows(rows []enrich.MergedRecord) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow{
			Chromosome:        r.Chromosome,
			Start:             r.Start,
			Stop:              r.Stop,
			AlleleFrequency:   strconv.FormatFloat(r.AlleleFrequency, 'g', -1, 64),
			VariantType:       r.VariantType,
			ExternalID:        r.ExternalID,
			RemoteVariantType: NullStringFormatter(r.RemoteVariantType),
			Significances:     NullStringFormatter(r.Significances),
			Origins:           NullStringFormatter(r.Origins),
			Diseases:          NullStringFormatter(r.Diseases),
		})
	}
	return out
}

// WriteCSV writes a header row followed by one row per merged record.
func WriteCSV(w io.Writer, rows []enrich.MergedRecord) error {
	return gocsv.Marshal(ExportRows(rows), w)
}

// WriteFile creates path and hands a buffered writer to fn. Existing files
// are overwritten.
func WriteFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := fn(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	return f.Close()
}
