// pathogenicvariants searches dbVar and dbSNP for variants of a gene that
// have been classified as pathogenic, to augment the variants found in a VCF.
// It writes:
//
//	<prefix><gene>_pathogenic_svs.csv   dbVar structural variants
//	<prefix><gene>_pathogenic_snps.csv  dbSNP variants, flattened
//
// Usage: pathogenicvariants [flags] <gene> <output_prefix>
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/carbocation/variantkit"
	_ "github.com/carbocation/variantkit/compileinfoprint"
	"github.com/carbocation/variantkit/dbsnp"
	"github.com/carbocation/variantkit/dbvar"
	"github.com/carbocation/variantkit/eutils"
	"github.com/carbocation/variantkit/report"
	"github.com/gocarina/gocsv"
)

func main() {
	cfg := dbsnp.DefaultConfig()
	euCfg := eutils.DefaultConfig()

	var assembly string
	flag.IntVar(&cfg.BatchSize, "batch", cfg.BatchSize, "Maximum number of dbSNP ids per efetch request.")
	flag.DurationVar(&euCfg.InterRequestDelay, "delay", euCfg.InterRequestDelay, "Wait before every request to NCBI.")
	flag.StringVar(&euCfg.BaseURL, "eutils", euCfg.BaseURL, "Base URL of the NCBI E-utilities.")
	flag.StringVar(&euCfg.Email, "email", "", "Contact email sent to NCBI with each request.")
	flag.StringVar(&euCfg.APIKey, "api_key", "", "Optional NCBI API key.")
	flag.IntVar(&euCfg.Retry.MaxAttempts, "attempts", 1, "Attempts per request. The default (1) never retries.")
	flag.DurationVar(&euCfg.Retry.Backoff, "backoff", 5*time.Second, "With --attempts > 1, wait this long times the attempt number between attempts.")
	flag.StringVar(&assembly, "assembly", dbvar.DefaultAssembly, "Assembly whose dbVar placement is reported.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <gene> <output_prefix>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	log.Println("Started running at", time.Now())
	defer func() {
		log.Println("Completed at", time.Now())
	}()

	eu := eutils.New(euCfg)
	if err := run(eu, cfg, flag.Arg(0), flag.Arg(1), assembly); err != nil {
		log.Fatalln(err)
	}
}

func run(eu *eutils.Client, cfg dbsnp.Config, gene, prefix, assembly string) error {
	term := eutils.PathogenicGeneTerm(gene)

	svIDs, err := eu.Search(dbvar.Database, term, 0)
	if err != nil {
		return err
	}
	log.Printf("dbVar reports %d pathogenic structural variants for %s\n", len(svIDs), gene)

	svs, err := dbvar.Summaries(eu, svIDs, assembly)
	if err != nil {
		return err
	}

	svOut := variantkit.OutputPath(prefix, gene+"_pathogenic_svs.csv")
	if err := report.WriteFile(svOut, func(w io.Writer) error { return gocsv.Marshal(svs, w) }); err != nil {
		return err
	}
	fmt.Printf("Wrote %s.\n", svOut)

	snpIDs, err := eu.Search(dbsnp.Database, term, 0)
	if err != nil {
		return err
	}
	log.Printf("dbSNP reports %d pathogenic variants for %s\n", len(snpIDs), gene)

	snps, err := dbsnp.NewClientFrom(cfg, eu).Lookup(snpIDs)
	if err != nil {
		return err
	}

	snpOut := variantkit.OutputPath(prefix, gene+"_pathogenic_snps.csv")
	if err := report.WriteFile(snpOut, func(w io.Writer) error { return gocsv.Marshal(snps, w) }); err != nil {
		return err
	}
	fmt.Printf("Wrote %s.\n", snpOut)

	return nil
}
