// gwasfilter keeps the GWAS Catalog associations that report a given gene.
// It writes the filtered catalog with all of its columns, and a simplified
// copy (condition, chr, start, dbsnp_id, variant_type).
//
// Usage: gwasfilter <gwas_catalog.tsv> <gene> <output.csv> <simplified_output.csv>
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/variantkit"
	_ "github.com/carbocation/variantkit/compileinfoprint"
	"github.com/carbocation/variantkit/gwas"
	"github.com/carbocation/variantkit/report"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <gwas_catalog.tsv> <gene> <output.csv> <simplified_output.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(1)
	}
	inFile, gene, outFile, simplifiedFile := flag.Arg(0), flag.Arg(1), flag.Arg(2), flag.Arg(3)

	f, err := variantkit.OpenMaybeCompressed(inFile)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	table, err := gwas.FilterByGene(variantkit.NewTabularReader(f), gene)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Kept %d associations reporting %s\n", len(table.Rows), gene)

	if err := report.WriteFile(variantkit.ExpandHome(outFile), func(w io.Writer) error {
		return table.WriteCSV(w)
	}); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("Wrote %s.\n", outFile)

	if err := report.WriteFile(variantkit.ExpandHome(simplifiedFile), func(w io.Writer) error {
		return table.WriteSimplifiedCSV(w)
	}); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("Wrote %s.\n", simplifiedFile)
}
