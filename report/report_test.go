package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/variantkit/dbsnp"
	"github.com/carbocation/variantkit/enrich"
	"github.com/carbocation/variantkit/varbed"
)

func sampleRows() []enrich.MergedRecord {
	variants := []varbed.VariantRecord{
		{Chromosome: "chr15", Start: "48700000", Stop: "48700001", AlleleFrequency: 0.25, VariantType: "SNP", ExternalID: "rs1"},
		{Chromosome: "chr15", Start: "48700100", Stop: "48700103", AlleleFrequency: 0.75, VariantType: "INDEL", ExternalID: "rs2"},
		{Chromosome: "chr15", Start: "48700200", Stop: "48700201", AlleleFrequency: math.NaN(), VariantType: "SNP", ExternalID: "rs3"},
	}
	remote := []dbsnp.EnrichedRecord{
		{ExternalID: "rs1", RemoteVariantType: "snv", Significances: "benign;pathogenic", Origins: "germline", Diseases: "Marfan syndrome;not provided"},
		{ExternalID: "rs2", RemoteVariantType: "delins", Significances: "pathogenic", Origins: "germline;somatic", Diseases: "Marfan syndrome"},
	}
	return enrich.Merge(variants, remote, enrich.Multiply)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sampleRows(), ";")
	if err != nil {
		t.Fatal(err)
	}

	if s.TotalVariants != 3 {
		t.Fatalf("expected 3 variants, got %d", s.TotalVariants)
	}
	if got := strings.Join(s.VariantTypes, ","); got != "SNP,INDEL" {
		t.Fatalf("variant types: %s", got)
	}
	if got := strings.Join(s.RemoteVariantTypes, ","); got != "snv,delins" {
		t.Fatalf("remote variant types: %s", got)
	}
	if got := strings.Join(s.Diseases, "|"); got != "Marfan syndrome|not provided" {
		t.Fatalf("diseases: %s", got)
	}
	if got := strings.Join(s.Significances, "|"); got != "benign|pathogenic" {
		t.Fatalf("significances: %s", got)
	}
	if got := strings.Join(s.Origins, "|"); got != "germline|somatic" {
		t.Fatalf("origins: %s", got)
	}
	if !s.AlleleFrequencyValid || s.MaxAlleleFrequency != 0.75 || s.AvgAlleleFrequency != 0.5 {
		t.Fatalf("allele frequency stats: %+v", s)
	}
}

func TestWriteSummary(t *testing.T) {
	s, err := Summarize(sampleRows(), ";")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, s); err != nil {
		t.Fatal(err)
	}

	expected := `Total variants: 3.
Variant types present: SNP, INDEL.
dbSnp variant types present: snv, delins.
Max allele frequency: 0.75.
Avg allele frequency: 0.5.
Diseases: Marfan syndrome, not provided.
Significances: benign, pathogenic.
Origins: germline, somatic.
`
	if buf.String() != expected {
		t.Fatalf("\nGot:\n%s\nExpected:\n%s", buf.String(), expected)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s, err := Summarize(nil, ";")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Total variants: 0.") || !strings.Contains(buf.String(), "Max allele frequency: NA.") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if got := strings.Join(records[0], ","); got != "chr,start,stop,allele_frequency,variant_type,dbsnp_id,dbsnp_variant_type,significances,origins,diseases" {
		t.Fatalf("unexpected header %s", got)
	}
	if records[1][5] != "rs1" || records[1][7] != "benign;pathogenic" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[3][6] != "" || records[3][9] != "" {
		t.Fatalf("unmatched row should have empty remote fields: %v", records[3])
	}
}

var pngSignature = []byte{0x89, 'P', 'N', 'G'}

func TestHistogramsArePNG(t *testing.T) {
	for name, render := range map[string]func(*bytes.Buffer) error{
		"variant type": func(b *bytes.Buffer) error { return VariantTypeHistogram(b, sampleRows()) },
		"af":           func(b *bytes.Buffer) error { return AlleleFrequencyHistogram(b, sampleRows()) },
		"empty type":   func(b *bytes.Buffer) error { return VariantTypeHistogram(b, nil) },
		"empty af":     func(b *bytes.Buffer) error { return AlleleFrequencyHistogram(b, nil) },
	} {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
			t.Fatalf("%s: output is not a PNG", name)
		}
	}
}

func TestVariantTypeCounts(t *testing.T) {
	labels, counts := VariantTypeCounts(sampleRows())
	if strings.Join(labels, ",") != "SNP,INDEL" || counts["SNP"] != 2 || counts["INDEL"] != 1 {
		t.Fatalf("unexpected counts %v %v", labels, counts)
	}
}

func TestOutputsForAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	out := OutputsFor(filepath.Join(dir, "FBN1"))
	if out.CSV != filepath.Join(dir, "FBN1.csv") || out.Report != filepath.Join(dir, "FBN1_report.txt") {
		t.Fatalf("unexpected outputs %+v", out)
	}

	if err := WriteFile(out.Report, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out.Report)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Fatalf("unexpected file contents %q", b)
	}
}
