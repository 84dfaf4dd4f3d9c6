// extractgene pulls one gene's lines out of a GFF3 annotation and writes:
//
//	<prefix><gene>.gff3       the matching annotation lines
//	<prefix><gene>.bed        the gene feature as BED
//	<prefix><gene>_exons.bed  its exons as BED
//
// Usage: extractgene <annotation.gff3[.gz]> <gene> <output_prefix>
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/variantkit"
	_ "github.com/carbocation/variantkit/compileinfoprint"
	"github.com/carbocation/variantkit/gff3"
	"github.com/carbocation/variantkit/report"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <annotation.gff3[.gz]> <gene> <output_prefix>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1), flag.Arg(2)); err != nil {
		log.Fatalln(err)
	}
}

func run(annotationFile, gene, prefix string) error {
	annotationOut := variantkit.OutputPath(prefix, gene+".gff3")
	bedOut := variantkit.OutputPath(prefix, gene+".bed")
	exonsOut := variantkit.OutputPath(prefix, gene+"_exons.bed")

	in, err := variantkit.OpenMaybeCompressed(annotationFile)
	if err != nil {
		return err
	}
	defer in.Close()

	kept := 0
	if err := report.WriteFile(annotationOut, func(w io.Writer) error {
		kept, err = gff3.FilterGene(in, gene, w)
		return err
	}); err != nil {
		return err
	}
	log.Printf("Found %d annotation lines for %s\n", kept, gene)
	fmt.Printf("Wrote %s.\n", annotationOut)

	f, err := os.Open(annotationOut)
	if err != nil {
		return err
	}
	defer f.Close()

	features, err := gff3.ReadFeatures(f)
	if err != nil {
		return err
	}

	for _, v := range []struct {
		Path string
		Type string
	}{
		{bedOut, "gene"},
		{exonsOut, "exon"},
	} {
		if err := report.WriteFile(v.Path, func(w io.Writer) error {
			_, err := gff3.WriteBED(w, features, v.Type)
			return err
		}); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.\n", v.Path)
	}

	return nil
}
