// clinvarconditions reads a ClinVar tabular search export and writes, for
// every condition it mentions, the dbSNP ids reported for that condition:
//
//	condition,rs1;rs2
//
// Usage: clinvarconditions <clinvar_result.txt> <output.csv>
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/variantkit"
	"github.com/carbocation/variantkit/clinvar"
	_ "github.com/carbocation/variantkit/compileinfoprint"
	"github.com/carbocation/variantkit/report"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <clinvar_result.txt> <output.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inFile, outFile := flag.Arg(0), flag.Arg(1)

	f, err := variantkit.OpenMaybeCompressed(inFile)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	conds, err := clinvar.ConditionsToSNPs(variantkit.NewTabularReader(f))
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Found %d conditions\n", len(conds.Names()))

	if err := report.WriteFile(variantkit.ExpandHome(outFile), func(w io.Writer) error {
		return clinvar.WriteConditions(w, conds)
	}); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("Wrote %s.\n", outFile)
}
