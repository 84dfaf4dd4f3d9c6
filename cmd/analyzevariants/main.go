// analyzevariants parses a variant BED file (as produced by adjustvcf and a
// VCF-to-BED conversion), looks every variant up in dbSNP, joins the clinical
// annotations back onto the local variants, and writes:
//
//	<prefix>_variant_type_distribution.png
//	<prefix>_af_distribution.png
//	<prefix>_report.txt
//	<prefix>.csv
//
// Usage: analyzevariants [flags] <variants.bed> <output_prefix>
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/carbocation/pfx"
	"github.com/carbocation/variantkit"
	_ "github.com/carbocation/variantkit/compileinfoprint"
	"github.com/carbocation/variantkit/dbsnp"
	"github.com/carbocation/variantkit/enrich"
	"github.com/carbocation/variantkit/eutils"
	"github.com/carbocation/variantkit/report"
	"github.com/carbocation/variantkit/varbed"
)

func main() {
	cfg := dbsnp.DefaultConfig()
	euCfg := eutils.DefaultConfig()

	var duplicates string
	var skipMalformed, rawDump, preview bool
	flag.IntVar(&cfg.BatchSize, "batch", cfg.BatchSize, "Maximum number of dbSNP ids per efetch request.")
	flag.DurationVar(&cfg.InterRequestDelay, "delay", cfg.InterRequestDelay, "Wait before every request to NCBI. NCBI permits 3 requests/second at most, fewer without an API key.")
	flag.StringVar(&cfg.FieldDelimiter, "delim", cfg.FieldDelimiter, "Delimiter used to join significances, origins and diseases.")
	flag.StringVar(&euCfg.BaseURL, "eutils", euCfg.BaseURL, "Base URL of the NCBI E-utilities.")
	flag.StringVar(&euCfg.Email, "email", "", "Contact email sent to NCBI with each request.")
	flag.StringVar(&euCfg.APIKey, "api_key", "", "Optional NCBI API key.")
	flag.IntVar(&euCfg.Retry.MaxAttempts, "attempts", 1, "Attempts per request. The default (1) never retries.")
	flag.DurationVar(&euCfg.Retry.Backoff, "backoff", 5*time.Second, "With --attempts > 1, wait this long times the attempt number between attempts.")
	flag.StringVar(&duplicates, "duplicates", "multiply", "How to merge dbSNP ids that appear more than once: multiply (one row each) or first.")
	flag.BoolVar(&skipMalformed, "skip_malformed", false, "Log and skip malformed variant lines instead of aborting.")
	flag.BoolVar(&rawDump, "raw", false, "Also write every dbSNP response, as a JSON array, to <prefix>_dbsnp.json.")
	flag.BoolVar(&preview, "preview", true, "Print a terminal histogram of allele frequencies to stderr.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <variants.bed> <output_prefix>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	variantFile, outputPrefix := flag.Arg(0), flag.Arg(1)

	policy, err := enrich.ParseDuplicatePolicy(duplicates)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println("Started running at", time.Now())
	defer func() {
		log.Println("Completed at", time.Now())
	}()

	if err := run(variantFile, outputPrefix, cfg, euCfg, policy, skipMalformed, rawDump, preview); err != nil {
		log.Fatalln(err)
	}
}

func run(variantFile, outputPrefix string, cfg dbsnp.Config, euCfg eutils.Config, policy enrich.DuplicatePolicy, skipMalformed, rawDump, preview bool) error {
	variants, err := varbed.ReadAll(variantFile, skipMalformed)
	if err != nil {
		return err
	}
	log.Printf("Parsed %d variants from %s\n", len(variants), variantFile)

	client := dbsnp.NewClient(cfg, euCfg)
	payloads, err := client.FetchBatches(varbed.ExternalIDs(variants))
	if err != nil {
		return err
	}

	if rawDump {
		if err := writeRaw(variantkit.OutputPath(outputPrefix, "_dbsnp.json"), payloads); err != nil {
			return err
		}
	}

	remote, err := dbsnp.FlattenAll(payloads, client.Config())
	if err != nil {
		return err
	}

	merged := enrich.Merge(variants, remote, policy)
	log.Printf("Merged %d rows; %d without dbSNP annotation\n", len(merged), enrich.Unmatched(merged))

	if preview {
		if err := report.FprintAlleleFrequencies(os.Stderr, merged, 50); err != nil {
			log.Println("Could not print allele frequency preview:", err)
		}
	}

	return writeOutputs(report.OutputsFor(outputPrefix), merged, client.Config().FieldDelimiter)
}

// writeOutputs writes the artifacts in a fixed order. A failure leaves any
// earlier artifacts in place.
func writeOutputs(out report.Outputs, merged []enrich.MergedRecord, delim string) error {
	summary, err := report.Summarize(merged, delim)
	if err != nil {
		return pfx.Err(err)
	}

	steps := []struct {
		Path  string
		Write func(io.Writer) error
	}{
		{out.VariantTypePlot, func(w io.Writer) error { return report.VariantTypeHistogram(w, merged) }},
		{out.AlleleFrequencyPlot, func(w io.Writer) error { return report.AlleleFrequencyHistogram(w, merged) }},
		{out.Report, func(w io.Writer) error { return report.WriteSummary(w, summary) }},
		{out.CSV, func(w io.Writer) error { return report.WriteCSV(w, merged) }},
	}

	for _, step := range steps {
		if err := report.WriteFile(step.Path, step.Write); err != nil {
			return fmt.Errorf("writing %s: %w", step.Path, err)
		}
		fmt.Printf("Wrote %s.\n", step.Path)
	}

	return nil
}

func writeRaw(path string, payloads [][]byte) error {
	err := report.WriteFile(path, func(w io.Writer) error {
		repaired := make([][]byte, 0, len(payloads))
		for _, p := range payloads {
			r, err := dbsnp.RepairPayload(p)
			if err != nil {
				return err
			}
			repaired = append(repaired, r)
		}

		// One array per batch, wrapped in an outer array.
		_, err := w.Write(append(append([]byte("["), bytes.Join(repaired, []byte(","))...), ']'))
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s.\n", path)
	return nil
}
